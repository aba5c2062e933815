package provider

import (
	"context"
	"errors"

	"google.golang.org/genai"
)

// googleAdapter speaks the Gemini generateContent wire shape through the
// genai SDK. Clients are cheap to construct and keyed per session, so one is
// built per call rather than cached.
type googleAdapter struct{}

func (a *googleAdapter) complete(ctx context.Context, cfg Config, apiKey, model, prompt string, maxTokens int) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", gatewayErr(KindTransport, 0, "create gemini client: %s", err.Error())
	}
	if maxTokens <= 0 {
		maxTokens = generationMaxTokens
	}

	result, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	})
	if err != nil {
		var apierr genai.APIError
		if errors.As(err, &apierr) {
			return "", gatewayErr(KindProtocol, apierr.Code, "%s", apierr.Message)
		}
		return "", gatewayErr(KindTransport, 0, "%s", err.Error())
	}

	text := result.Text()
	if text == "" {
		return "", gatewayErr(KindProtocol, 0, "%s returned no candidates", cfg.ID)
	}
	return text, nil
}

func (a *googleAdapter) generateText(ctx context.Context, cfg Config, apiKey, model, prompt string, maxTokens int) (string, error) {
	return a.complete(ctx, cfg, apiKey, model, prompt, maxTokens)
}

func (a *googleAdapter) evaluateStructured(ctx context.Context, cfg Config, apiKey, model, question, answer string) (Judgment, error) {
	text, err := a.complete(ctx, cfg, apiKey, model, evaluationPrompt(question, answer), generationMaxTokens)
	if err != nil {
		return Judgment{}, err
	}
	return parseJudgment(text), nil
}
