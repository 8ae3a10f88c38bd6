// Package filler writes resolved values into elements, emits input/change
// notifications, and aggregates fill statistics and learned suggestions.
package filler

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jonathan/formfill-agent/internal/classify"
	"github.com/jonathan/formfill-agent/internal/dom"
	"github.com/jonathan/formfill-agent/internal/resolver"
	"github.com/jonathan/formfill-agent/internal/types"
)

// noFillGuidance is reported when fields were detected but nothing could be
// filled; the pass is still a success.
const noFillGuidance = "No fields could be filled. Add more details to your profile or enable generative answers."

// WriteError is a per-field write failure. It is collected into the pass's
// error list and never aborts the pass.
type WriteError struct {
	Label string
	Cause error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("Error filling %s: %v", e.Label, e.Cause)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Executor performs the write phase of a fill pass.
type Executor struct {
	sink dom.EventSink
	log  zerolog.Logger
}

// New creates an executor dispatching notifications into sink.
func New(sink dom.EventSink, log zerolog.Logger) *Executor {
	if sink == nil {
		sink = dom.DiscardSink{}
	}
	return &Executor{sink: sink, log: log}
}

// Run writes each resolved value into its field in document order and builds
// the pass report. profile and sensitive are the pass-start snapshots used to
// filter learned suggestions.
func (e *Executor) Run(fields []types.FormField, results []resolver.Result, profile *types.Profile, sensitive map[string]struct{}) *types.FillReport {
	report := &types.FillReport{
		PassID: uuid.NewString(),
		Total:  len(fields),
		Errors: []string{},
	}

	for i, field := range fields {
		res := results[i]
		if res.Err != nil {
			report.Errors = append(report.Errors, (&WriteError{Label: fieldLabel(field), Cause: res.Err}).Error())
			continue
		}
		if res.Value == "" {
			continue
		}

		if err := e.fill(field, res.Value); err != nil {
			report.Errors = append(report.Errors, (&WriteError{Label: fieldLabel(field), Cause: err}).Error())
			continue
		}

		report.Filled++
		e.log.Debug().Str("label", field.Label).Str("kind", string(field.Kind)).Msg("filled field")

		if suggestion, ok := suggest(field, res.Value, profile, sensitive); ok {
			report.Suggestions = append(report.Suggestions, suggestion)
		}
	}

	if report.Total > 0 && report.Filled == 0 {
		report.Message = noFillGuidance
	}
	return report
}

// fill writes one value according to the element kind, then dispatches input
// and change notifications so host-page logic observes the update.
func (e *Executor) fill(field types.FormField, value string) error {
	if field.Element == nil {
		return fmt.Errorf("field has no element handle")
	}

	if field.Kind == types.KindSelect {
		if err := selectBestOption(field.Element, value); err != nil {
			return err
		}
	} else if err := field.Element.SetText(value); err != nil {
		return err
	}

	if el, ok := dom.FromHandle(field.Element); ok {
		e.sink.Dispatch(el, "input")
		e.sink.Dispatch(el, "change")
	}
	return nil
}

// selectBestOption picks the first option whose value or visible text
// contains the target as a case-insensitive substring. No match leaves the
// field unfilled.
func selectBestOption(el types.ElementHandle, value string) error {
	target := strings.ToLower(value)
	for _, opt := range el.Options() {
		if strings.Contains(strings.ToLower(opt.Value), target) ||
			strings.Contains(strings.ToLower(opt.Text), target) {
			return el.SelectOption(opt.Value)
		}
	}
	return fmt.Errorf("no option matching %q", value)
}

// suggest proposes a profile update for a filled field when a category can be
// inferred from its label, the profile lacks that category, and the user has
// not marked it sensitive.
func suggest(field types.FormField, value string, profile *types.Profile, sensitive map[string]struct{}) (types.ProfileSuggestion, bool) {
	key, ok := classify.InferCategory(field.Label)
	if !ok {
		return types.ProfileSuggestion{}, false
	}
	if profile.Has(key) {
		return types.ProfileSuggestion{}, false
	}
	if _, excluded := sensitive[key]; excluded {
		return types.ProfileSuggestion{}, false
	}
	return types.ProfileSuggestion{Key: key, Label: field.Label, Value: value}, true
}

// fieldLabel returns the best human descriptor for error messages.
func fieldLabel(field types.FormField) string {
	if field.Label != "" {
		return field.Label
	}
	if field.Name != "" {
		return field.Name
	}
	return string(field.Kind) + " field"
}
