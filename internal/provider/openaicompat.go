package provider

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// openAICompatAdapter speaks the chat-completions wire shape shared by
// openai, perplexity, grok, and together_ai; the provider config supplies
// the base URL.
type openAICompatAdapter struct{}

func (a *openAICompatAdapter) client(cfg Config, apiKey string) openai.Client {
	return openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(cfg.BaseURL),
	)
}

func (a *openAICompatAdapter) generateText(ctx context.Context, cfg Config, apiKey, model, prompt string, maxTokens int) (string, error) {
	client := a.client(cfg, apiKey)
	if maxTokens <= 0 {
		maxTokens = generationMaxTokens
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		MaxTokens: openai.Int(int64(maxTokens)),
	})
	if err != nil {
		return "", classifyOpenAIErr(err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", gatewayErr(KindProtocol, 0, "%s returned no choices", cfg.ID)
	}
	return resp.Choices[0].Message.Content, nil
}

func (a *openAICompatAdapter) evaluateStructured(ctx context.Context, cfg Config, apiKey, model, question, answer string) (Judgment, error) {
	client := a.client(cfg, apiKey)

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(evaluatorSystemPrompt),
			openai.UserMessage(evaluationPrompt(question, answer)),
		},
	}
	if cfg.StructuredOutput {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil && cfg.StructuredOutput && isStructuredOutputRejection(err) {
		// Single documented retry: resubmit without the response-format
		// option. Any further failure is handled like every other error.
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{}
		resp, err = client.Chat.Completions.New(ctx, params)
	}
	if err != nil {
		return Judgment{}, classifyOpenAIErr(err)
	}
	if len(resp.Choices) == 0 {
		return Judgment{}, gatewayErr(KindProtocol, 0, "%s returned no choices", cfg.ID)
	}
	return parseJudgment(resp.Choices[0].Message.Content), nil
}

// isStructuredOutputRejection detects a provider refusing the
// response_format option, which OpenAI-compatible hosts commonly do with a
// 400 or 422.
func isStructuredOutputRejection(err error) bool {
	var apierr *openai.Error
	if !errors.As(err, &apierr) {
		return false
	}
	if apierr.StatusCode != 400 && apierr.StatusCode != 422 {
		return false
	}
	return strings.Contains(strings.ToLower(apierr.Error()), "response_format")
}

func classifyOpenAIErr(err error) *GatewayError {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		return gatewayErr(KindProtocol, apierr.StatusCode, "%s", apierr.Error())
	}
	return gatewayErr(KindTransport, 0, "%s", err.Error())
}
