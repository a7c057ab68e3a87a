package inference

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tidwall/gjson"
)

// Anthropic calls the Messages API with a base64 PDF document block followed
// by a text instruction. Each Complete issues exactly one request.
type Anthropic struct {
	cfg    Config
	apiKey string
	http   *http.Client
	client anthropic.Client
	logger *slog.Logger
}

func NewAnthropic(cfg *Config, logger *slog.Logger) *Anthropic {
	hc := &http.Client{Timeout: cfg.TimeoutDuration()}
	return &Anthropic{
		cfg:    *cfg,
		apiKey: cfg.APIKey,
		http:   hc,
		client: anthropic.NewClient(
			option.WithBaseURL(cfg.BaseURL),
			option.WithHTTPClient(hc),
			option.WithMaxRetries(0),
			option.WithHeader("anthropic-version", cfg.APIVersion),
		),
		logger: logger.With("system", "inference"),
	}
}

// WithKey returns a client that authenticates with key instead of the
// configured one. The receiver is unchanged.
func (a *Anthropic) WithKey(key string) *Anthropic {
	c := *a
	c.apiKey = strings.TrimSpace(key)
	return &c
}

func (a *Anthropic) HasKey() bool {
	return a.apiKey != ""
}

func (a *Anthropic) Close() {
	a.http.CloseIdleConnections()
}

func (a *Anthropic) Complete(ctx context.Context, req Request) (string, error) {
	if a.apiKey == "" {
		return "", ErrNoAPIKey
	}

	model := req.Model
	if model == "" {
		model = a.cfg.ClassifyModel
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = a.cfg.MaxTokens
	}

	msg, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewDocumentBlock(anthropic.Base64PDFSourceParam{Data: req.Document}),
				anthropic.NewTextBlock(req.Instruction),
			),
		},
	}, option.WithAPIKey(a.apiKey))
	if err != nil {
		return "", statusError(err)
	}

	if msg.StopReason == anthropic.StopReasonMaxTokens {
		a.logger.WarnContext(ctx, "response truncated at max_tokens", "model", model, "max_tokens", maxTokens)
	}

	for _, block := range msg.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}

// statusError converts a provider error reply into a *StatusError; transport
// and decode failures pass through unchanged.
func statusError(err error) error {
	var apiErr *anthropic.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	raw := apiErr.RawJSON()
	se := &StatusError{StatusCode: apiErr.StatusCode, Message: raw}
	if msg := gjson.Get(raw, "error.message"); msg.Exists() {
		se.Type = gjson.Get(raw, "error.type").String()
		se.Message = msg.String()
	}
	return se
}
