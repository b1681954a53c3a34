package config

const (
	ModelGPT35Turbo       = "gpt-3.5-turbo"
	ModelGPT4             = "gpt-4"
	ModelGPT4TurboPreview = "gpt-4-turbo-preview"

	DefaultModel = ModelGPT35Turbo

	MinTemperature     = 0.0
	MaxTemperature     = 1.5
	DefaultTemperature = 0.7

	MinFrequencyPenalty     = -2.0
	MaxFrequencyPenalty     = 2.0
	DefaultFrequencyPenalty = 0.0

	MinPresencePenalty     = -2.0
	MaxPresencePenalty     = 2.0
	DefaultPresencePenalty = 0.0

	MinTopP     = 0.0
	MaxTopP     = 1.0
	DefaultTopP = 1.0

	ToolsAndSystemPromptLengthTokens = 1000
	OutputTokenLimit                 = 4096
)

// ModelChoices keeps the order the UIs list them in.
var ModelChoices = []string{ModelGPT35Turbo, ModelGPT4, ModelGPT4TurboPreview}

var contextWindowSizeByModel = map[string]int{
	ModelGPT35Turbo:       16385,
	ModelGPT4:             8192,
	ModelGPT4TurboPreview: 128000,
}

func IsSupportedModel(model string) bool {
	_, ok := contextWindowSizeByModel[model]
	return ok
}

// ContextWindowSize returns 0 for unknown models.
func ContextWindowSize(model string) int {
	return contextWindowSizeByModel[model]
}
