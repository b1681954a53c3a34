package cli

import (
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/domain/chatModel"
	"github.com/akolanti/SDKAssistant/internal/tui"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	Long: `Starts a terminal chat with a fresh conversation. Tool calls are shown as hints
above the streamed answer. Type quit or press esc to leave, ctrl+c cancels a running turn.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := modelConfigFromFlags(cmd.Flags())
		if err != nil {
			return err
		}
		a, err := newContainer(cmd).NewAgent(cfg)
		if err != nil {
			return err
		}
		return tui.Run(cmd.Context(), a)
	},
}

func init() {
	addModelFlags(chatCmd.Flags())
	rootCmd.AddCommand(chatCmd)
}

func addModelFlags(flags *pflag.FlagSet) {
	flags.String("model", config.DefaultModel, "chat model, one of gpt-3.5-turbo, gpt-4, gpt-4-turbo-preview")
	flags.Float64("temperature", config.DefaultTemperature, "sampling temperature, 0 to 1.5")
	flags.Float64("frequency-penalty", config.DefaultFrequencyPenalty, "frequency penalty, -2 to 2")
	flags.Float64("presence-penalty", config.DefaultPresencePenalty, "presence penalty, -2 to 2")
	flags.Float64("top-p", config.DefaultTopP, "nucleus sampling, 0 to 1")
}

// modelConfigFromFlags applies the same bounds as the HTTP API.
func modelConfigFromFlags(flags *pflag.FlagSet) (chatModel.ModelConfig, error) {
	var cfg chatModel.ModelConfig
	var err error
	if cfg.Model, err = flags.GetString("model"); err != nil {
		return cfg, err
	}
	if cfg.Temperature, err = flags.GetFloat64("temperature"); err != nil {
		return cfg, err
	}
	if cfg.FrequencyPenalty, err = flags.GetFloat64("frequency-penalty"); err != nil {
		return cfg, err
	}
	if cfg.PresencePenalty, err = flags.GetFloat64("presence-penalty"); err != nil {
		return cfg, err
	}
	if cfg.TopP, err = flags.GetFloat64("top-p"); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
