package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/akolanti/SDKAssistant/internal/adapter"
	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"github.com/go-playground/validator/v10"
)

var (
	logRH        *logger_i.Logger
	logOnce      sync.Once
	validate     *validator.Validate
	validateOnce sync.Once
)

func handlerLogger() *logger_i.Logger {
	logOnce.Do(func() {
		logRH = logger_i.NewLogger("RequestHandler")
	})
	return logRH
}

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			return name
		})
	})
	return validate
}

func writeJsonResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		handlerLogger().Error("Error encoding response", "error", err)
	}
}

// WriteErrorResponse answers with {"detail": message}.
func WriteErrorResponse(w http.ResponseWriter, httpCode int, message string) {
	writeJsonResponse(w, httpCode, adapter.ToErrorResponse(message))
}

// decodeJSON rejects unknown fields and trailing data. An empty body leaves v untouched
// when allowEmpty is set.
func decodeJSON(r *http.Request, v any, allowEmpty bool) error {
	defer func(Body io.ReadCloser) {
		if err := Body.Close(); err != nil {
			handlerLogger().Error("Couldn't close the request body", "error", err)
		}
	}(r.Body)

	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, config.MaxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		if allowEmpty && errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	if decoder.More() {
		return errors.New("invalid request body: unexpected data after the JSON object")
	}
	return nil
}

// validateRequest reports the first failed field by its json name.
func validateRequest(v any) error {
	err := getValidator().Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		return fmt.Errorf("%s is %s", fieldErrors[0].Field(), fieldErrors[0].Tag())
	}
	return err
}

func traceId(ctx context.Context) string {
	trace, _ := ctx.Value(config.TRACE_ID_KEY).(string)
	return trace
}

func validateContext(ctx context.Context) bool {
	if ctx.Err() != nil {
		handlerLogger().WithTrace(ctx).Warn("context error", "error", ctx.Err())
		return false
	}
	return true
}

func getTargetDirectory() (string, string) {
	root, err := os.Getwd()
	if err != nil {
		return "", "Storage Error"
	}

	targetDir := filepath.Join(root, "temporary_data")
	if err := os.MkdirAll(targetDir, 0750); err != nil {
		return "", "Storage Error"
	}
	return targetDir, ""
}
