package codeInterpreter

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/akolanti/SDKAssistant/internal/config"
	"github.com/akolanti/SDKAssistant/internal/customHttpClient"
	"github.com/akolanti/SDKAssistant/internal/tools"
	"github.com/akolanti/SDKAssistant/pkg/logger_i"
)

const description = "Evaluates python code in a sandbox environment. The environment resets on every execution. " +
	"You must send the whole script every time and print your outputs. Script should be pure python code that can be evaluated. " +
	"It should be in python format NOT markdown. The code should NOT be wrapped in backticks. " +
	"All python packages including requests, matplotlib, scipy, numpy, pandas, etc are available. " +
	"If you have any files outputted write them to \"output/\" relative to the execution path. " +
	"Output can only be read from the directory, stdout, and stdin. " +
	"Do not use things like plot.show() as it will not work instead write them out `output/` and a link to the file will be returned. " +
	"print() any output and results so you can capture the output."

type request struct {
	FileContents  string   `json:"fileContents"`
	InputFiles    []string `json:"inputFiles"`
	OutputDir     string   `json:"outputDir"`
	OutputAsLinks bool     `json:"outputAsLinks"`
}

type response struct {
	Stdout    string   `json:"stdoutBasesixtyfour"`
	Stderr    string   `json:"stderrBasesixtyfour"`
	FileLinks []string `json:"fileLinks"`
	ExitCode  int      `json:"exitCode"`
}

// Result is what the model gets back, serialized as JSON.
type Result struct {
	Stdout    string   `json:"stdout"`
	Stderr    string   `json:"stderr"`
	FileLinks []string `json:"fileLinks"`
	ExitCode  int      `json:"exitCode"`
}

// Interpreter runs scripts on the Bearly sandbox. Each call is stateless.
type Interpreter struct {
	apiKey string
	url    string
	client *http.Client
	logger *logger_i.Logger
}

func New(apiKey string) *Interpreter {
	return &Interpreter{
		apiKey: apiKey,
		url:    config.BearlyInterpreterURL,
		client: customHttpClient.WithTimeout(config.CodeInterpreterTimeout),
		logger: logger_i.NewLogger("Code Interpreter"),
	}
}

// WithURL points the interpreter at another endpoint.
func (i *Interpreter) WithURL(url string) *Interpreter {
	i.url = url
	return i
}

func (i *Interpreter) Name() tools.ToolName { return tools.CodeInterpreter }

func (i *Interpreter) Description() string { return description }

func (i *Interpreter) Argument() tools.Argument {
	return tools.Argument{Name: "python_code", Description: "The pure python script to be evaluated. The contents will be in main.py. It should not be in markdown format."}
}

func (i *Interpreter) Invoke(ctx context.Context, code string) (string, error) {
	result, err := i.Run(ctx, code)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (i *Interpreter) Run(ctx context.Context, code string) (Result, error) {
	if i.apiKey == "" {
		return Result{}, errors.New("code interpreter API key is not configured")
	}

	body, err := json.Marshal(request{
		FileContents:  base64.StdEncoding.EncodeToString([]byte(StripMarkdownCode(code))),
		InputFiles:    []string{},
		OutputDir:     "output/",
		OutputAsLinks: true,
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, i.url, bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Authorization", i.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := i.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("calling code interpreter: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		i.logger.WithTrace(ctx).Error("Code interpreter returned an error", "status", resp.StatusCode, "body", string(msg))
		return Result{}, fmt.Errorf("code interpreter returned status %d", resp.StatusCode)
	}

	var decoded response
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return Result{}, fmt.Errorf("decoding code interpreter response: %w", err)
	}

	stdout, err := decodeOutput(decoded.Stdout)
	if err != nil {
		return Result{}, err
	}
	stderr, err := decodeOutput(decoded.Stderr)
	if err != nil {
		return Result{}, err
	}
	links := decoded.FileLinks
	if links == nil {
		links = []string{}
	}
	return Result{Stdout: stdout, Stderr: stderr, FileLinks: links, ExitCode: decoded.ExitCode}, nil
}

func decodeOutput(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding interpreter output: %w", err)
	}
	return string(raw), nil
}

// StripMarkdownCode removes a surrounding ``` fence, with or without a language tag.
func StripMarkdownCode(code string) string {
	trimmed := strings.TrimSpace(code)
	if !strings.HasPrefix(trimmed, "```") || !strings.HasSuffix(trimmed, "```") || len(trimmed) < 6 {
		return code
	}
	inner := strings.TrimSuffix(trimmed[3:], "```")
	if newline := strings.IndexByte(inner, '\n'); newline >= 0 {
		first := strings.TrimSpace(inner[:newline])
		if !strings.ContainsAny(first, " ()=") {
			inner = inner[newline+1:]
		}
	}
	return strings.Trim(inner, "\n")
}
