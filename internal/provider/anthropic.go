package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicAdapter speaks the Anthropic messages wire shape.
type anthropicAdapter struct{}

func (a *anthropicAdapter) client(cfg Config, apiKey string) anthropic.Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return anthropic.NewClient(opts...)
}

func (a *anthropicAdapter) complete(ctx context.Context, cfg Config, apiKey, model, prompt string, maxTokens int) (string, error) {
	client := a.client(cfg, apiKey)
	if maxTokens <= 0 {
		maxTokens = generationMaxTokens
	}

	msg, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		var apierr *anthropic.Error
		if errors.As(err, &apierr) {
			return "", gatewayErr(KindProtocol, apierr.StatusCode, "%s", apierr.Error())
		}
		return "", gatewayErr(KindTransport, 0, "%s", err.Error())
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", gatewayErr(KindProtocol, 0, "%s returned no text content", cfg.ID)
	}
	return sb.String(), nil
}

func (a *anthropicAdapter) generateText(ctx context.Context, cfg Config, apiKey, model, prompt string, maxTokens int) (string, error) {
	return a.complete(ctx, cfg, apiKey, model, prompt, maxTokens)
}

func (a *anthropicAdapter) evaluateStructured(ctx context.Context, cfg Config, apiKey, model, question, answer string) (Judgment, error) {
	// Anthropic has no JSON response-format option; the prompt demands a
	// bare JSON object and the parser falls back to free text.
	text, err := a.complete(ctx, cfg, apiKey, model, evaluationPrompt(question, answer), generationMaxTokens)
	if err != nil {
		return Judgment{}, err
	}
	return parseJudgment(text), nil
}
