package types

// ProfileSuggestion proposes promoting a value observed during a fill pass
// into the profile. Suggestions are surfaced for external review; the engine
// never writes them back without an explicit accept call.
type ProfileSuggestion struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// FillReport summarizes one fill pass. It is returned to the caller and not
// persisted by the engine.
type FillReport struct {
	PassID      string              `json:"pass_id"`
	Filled      int                 `json:"filled"`
	Total       int                 `json:"total"`
	Errors      []string            `json:"errors"`
	Suggestions []ProfileSuggestion `json:"suggestedProfileUpdates"`

	// Message carries user-facing guidance, e.g. when fields were detected
	// but nothing could be filled.
	Message string `json:"message,omitempty"`
}
