package llm

// DefaultModel is used when no model is configured. Field answering is a
// light extraction task, so the flash tier is the default.
const DefaultModel = "gemini-2.5-flash"

// DefaultTemperature keeps answers deterministic across passes.
const DefaultTemperature float32 = 0.1

// Config holds the model configuration for the client.
type Config struct {
	Model       string
	Temperature float32
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
	}
}
