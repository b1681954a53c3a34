package googleEmbedding

import (
	"errors"
	"testing"

	"github.com/akolanti/SDKAssistant/pkg/logger_i"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestDoRetry(t *testing.T) {
	log := logger_i.NewLogger("test")
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"rate limited", status.Error(codes.ResourceExhausted, "quota"), true},
		{"unavailable", status.Error(codes.Unavailable, "down"), false},
		{"plain error", errors.New("boom"), false},
	}
	for _, tt := range tests {
		if got := doRetry(tt.err, log); got != tt.want {
			t.Errorf("%s: doRetry = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestGetContent(t *testing.T) {
	contents := getContent([]string{"a", "b"})
	if len(contents) != 2 {
		t.Fatalf("expected 2 contents, got %d", len(contents))
	}
	if contents[1].Parts[0].Text != "b" {
		t.Errorf("order not kept: %q", contents[1].Parts[0].Text)
	}

	batch := getInlinedBatchRequests([]string{"x"})
	if *batch.Config.OutputDimensionality != dimension {
		t.Errorf("dimension not set")
	}
}
