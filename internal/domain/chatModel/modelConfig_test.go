package chatModel

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ModelConfig)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *ModelConfig) {}},
		{name: "upper bounds are inclusive", mutate: func(c *ModelConfig) {
			c.Temperature, c.FrequencyPenalty, c.PresencePenalty, c.TopP = 1.5, 2, 2, 1
		}},
		{name: "lower bounds are inclusive", mutate: func(c *ModelConfig) {
			c.Temperature, c.FrequencyPenalty, c.PresencePenalty, c.TopP = 0, -2, -2, 0
		}},
		{name: "unknown model", mutate: func(c *ModelConfig) { c.Model = "gpt-5" }, wantErr: "Model must be one of"},
		{name: "empty model", mutate: func(c *ModelConfig) { c.Model = "" }, wantErr: "Model must be one of"},
		{name: "temperature too high", mutate: func(c *ModelConfig) { c.Temperature = 1.51 }, wantErr: "Temperature must be between"},
		{name: "negative temperature", mutate: func(c *ModelConfig) { c.Temperature = -0.1 }, wantErr: "Temperature must be between"},
		{name: "frequency penalty", mutate: func(c *ModelConfig) { c.FrequencyPenalty = -2.5 }, wantErr: "Frequency penalty"},
		{name: "presence penalty", mutate: func(c *ModelConfig) { c.PresencePenalty = 3 }, wantErr: "Presence penalty"},
		{name: "top p", mutate: func(c *ModelConfig) { c.TopP = 1.01 }, wantErr: "Top-p must be between"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultModelConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, ErrInvalidInput))
		})
	}
}
