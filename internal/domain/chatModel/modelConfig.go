package chatModel

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/go-playground/validator/v10"
)

var ErrInvalidInput = errors.New("invalid input")

// ValidationError is an input problem found before any model call. Its message is safe to show to clients.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func NewValidationError(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ModelConfig holds the sampling settings of one conversation.
type ModelConfig struct {
	Model            string  `json:"model" validate:"required,oneof=gpt-3.5-turbo gpt-4 gpt-4-turbo-preview"`
	Temperature      float64 `json:"temperature" validate:"gte=0,lte=1.5"`
	FrequencyPenalty float64 `json:"frequency_penalty" validate:"gte=-2,lte=2"`
	PresencePenalty  float64 `json:"presence_penalty" validate:"gte=-2,lte=2"`
	TopP             float64 `json:"top_p" validate:"gte=0,lte=1"`
}

func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Model:            config.DefaultModel,
		Temperature:      config.DefaultTemperature,
		FrequencyPenalty: config.DefaultFrequencyPenalty,
		PresencePenalty:  config.DefaultPresencePenalty,
		TopP:             config.DefaultTopP,
	}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// Validate reports the first out of range setting. Values are never clamped.
func (c ModelConfig) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return NewValidationError("invalid model configuration: %v", err)
	}
	return NewValidationError("%s", describeFieldError(fieldErrors[0]))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Field() {
	case "model":
		return fmt.Sprintf("Model must be one of %v", config.ModelChoices)
	case "temperature":
		return fmt.Sprintf("Temperature must be between %v and %v", config.MinTemperature, config.MaxTemperature)
	case "frequency_penalty":
		return fmt.Sprintf("Frequency penalty must be between %v and %v", config.MinFrequencyPenalty, config.MaxFrequencyPenalty)
	case "presence_penalty":
		return fmt.Sprintf("Presence penalty must be between %v and %v", config.MinPresencePenalty, config.MaxPresencePenalty)
	case "top_p":
		return fmt.Sprintf("Top-p must be between %v and %v", config.MinTopP, config.MaxTopP)
	}
	return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
}
