// Package provider is the uniform gateway over the upstream text-generation
// providers. It knows nothing about interview semantics: each adapter exposes
// the same two capabilities (generate text, evaluate an answer into a
// structured judgment) over its provider family's wire shape, and the
// registry dispatches by provider identifier so callers never branch on
// provider identity.
package provider

import (
	"context"
	"fmt"
	"strings"

	"intervai/internal/privacy"
)

// ErrorKind classifies a gateway failure so the orchestrator can decide
// between silent degradation and surfacing.
type ErrorKind int

const (
	// KindTransport covers network failures and timeouts.
	KindTransport ErrorKind = iota
	// KindProtocol covers non-success statuses and unusable payloads.
	KindProtocol
	// KindRejected marks a provider refusing the structured-output request
	// option; the adapter retries once without it before reporting this.
	KindRejected
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindProtocol:
		return "protocol"
	case KindRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// GatewayError is the typed failure of an upstream call. Message is already
// masked and safe to log.
type GatewayError struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("upstream %s error (status %d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("upstream %s error: %s", e.Kind, e.Message)
}

func gatewayErr(kind ErrorKind, status int, format string, args ...any) *GatewayError {
	return &GatewayError{
		Kind:    kind,
		Status:  status,
		Message: privacy.MaskSecret(fmt.Sprintf(format, args...)),
	}
}

// Judgment is a structured answer evaluation on the provider's native 0-100
// scale; normalization to the canonical scale happens in the engine.
type Judgment struct {
	Score       float64
	Verdict     string
	Feedback    string
	ModelAnswer string
}

// Gateway is the engine-facing contract over all providers.
type Gateway interface {
	GenerateText(ctx context.Context, providerID, apiKey, model, prompt string, maxTokens int) (string, error)
	EvaluateStructured(ctx context.Context, providerID, apiKey, model, question, answer string) (Judgment, error)
}

// Family identifies a wire-shape family; one adapter exists per family.
type Family string

const (
	FamilyOpenAI    Family = "openai"
	FamilyAnthropic Family = "anthropic"
	FamilyGoogle    Family = "google"
)

// Config describes one upstream provider.
type Config struct {
	ID           string
	Family       Family
	BaseURL      string
	DefaultModel string
	// StructuredOutput marks providers known to accept the JSON
	// response-format option. OpenAI-compatible hosts that merely imitate
	// the API tend to reject it.
	StructuredOutput bool
}

// defaultConfigs lists the supported providers with their endpoints and
// default models.
var defaultConfigs = []Config{
	{ID: "openai", Family: FamilyOpenAI, BaseURL: "https://api.openai.com/v1", DefaultModel: "gpt-3.5-turbo", StructuredOutput: true},
	{ID: "anthropic", Family: FamilyAnthropic, BaseURL: "https://api.anthropic.com/v1", DefaultModel: "claude-3-opus-20240229"},
	{ID: "google", Family: FamilyGoogle, DefaultModel: "gemini-pro"},
	{ID: "perplexity", Family: FamilyOpenAI, BaseURL: "https://api.perplexity.ai", DefaultModel: "sonar-pro"},
	{ID: "grok", Family: FamilyOpenAI, BaseURL: "https://api.groq.com/openai/v1", DefaultModel: "grok-4"},
	{ID: "together_ai", Family: FamilyOpenAI, BaseURL: "https://api.together.xyz/v1", DefaultModel: "meta-llama/Meta-Llama-3.1-8B-Instruct-Turbo"},
}

// adapter is one wire-shape implementation.
type adapter interface {
	generateText(ctx context.Context, cfg Config, apiKey, model, prompt string, maxTokens int) (string, error)
	evaluateStructured(ctx context.Context, cfg Config, apiKey, model, question, answer string) (Judgment, error)
}

// Registry implements Gateway by dispatching to the family adapters.
type Registry struct {
	configs  map[string]Config
	adapters map[Family]adapter
}

// NewRegistry builds the gateway with the default provider table. Base URLs
// can be overridden (keyed by provider id), which tests and self-hosted
// gateways use.
func NewRegistry(baseURLOverrides map[string]string) *Registry {
	configs := make(map[string]Config, len(defaultConfigs))
	for _, cfg := range defaultConfigs {
		if u, ok := baseURLOverrides[cfg.ID]; ok && u != "" {
			cfg.BaseURL = u
		}
		configs[cfg.ID] = cfg
	}
	return &Registry{
		configs: configs,
		adapters: map[Family]adapter{
			FamilyOpenAI:    &openAICompatAdapter{},
			FamilyAnthropic: &anthropicAdapter{},
			FamilyGoogle:    &googleAdapter{},
		},
	}
}

// Known reports whether the provider identifier is supported.
func (r *Registry) Known(providerID string) bool {
	_, ok := r.configs[providerID]
	return ok
}

// DefaultModel returns the provider's default model, falling back to the
// openai default for unknown providers.
func (r *Registry) DefaultModel(providerID string) string {
	if cfg, ok := r.configs[providerID]; ok {
		return cfg.DefaultModel
	}
	return r.configs["openai"].DefaultModel
}

func (r *Registry) resolve(providerID string) (Config, adapter, error) {
	cfg, ok := r.configs[providerID]
	if !ok {
		return Config{}, nil, gatewayErr(KindProtocol, 0, "unsupported provider %q", providerID)
	}
	ad, ok := r.adapters[cfg.Family]
	if !ok {
		return Config{}, nil, gatewayErr(KindProtocol, 0, "no adapter for family %q", cfg.Family)
	}
	return cfg, ad, nil
}

// GenerateText implements Gateway.
func (r *Registry) GenerateText(ctx context.Context, providerID, apiKey, model, prompt string, maxTokens int) (string, error) {
	cfg, ad, err := r.resolve(providerID)
	if err != nil {
		return "", err
	}
	if model == "" {
		model = cfg.DefaultModel
	}
	return ad.generateText(ctx, cfg, apiKey, model, prompt, maxTokens)
}

// EvaluateStructured implements Gateway.
func (r *Registry) EvaluateStructured(ctx context.Context, providerID, apiKey, model, question, answer string) (Judgment, error) {
	cfg, ad, err := r.resolve(providerID)
	if err != nil {
		return Judgment{}, err
	}
	if model == "" {
		model = cfg.DefaultModel
	}
	return ad.evaluateStructured(ctx, cfg, apiKey, model, question, answer)
}

// InferFromKey guesses a provider family from an API key's lexical prefix.
// Offline/demo tokens and unrecognized shapes return "unknown" so they never
// trip the mismatch validation.
func InferFromKey(apiKey string) string {
	if apiKey == "" || IsOfflineKey(apiKey) {
		return "unknown"
	}
	switch {
	case strings.HasPrefix(apiKey, "sk-"):
		return "openai"
	case strings.HasPrefix(apiKey, "pplx-"):
		return "perplexity"
	case strings.HasPrefix(apiKey, "gsk_"):
		return "grok"
	}
	return "unknown"
}

// IsOfflineKey recognizes the explicit offline/demo tokens that route a
// session to local generation only.
func IsOfflineKey(apiKey string) bool {
	low := strings.ToLower(apiKey)
	return low == "demo" || low == "test" ||
		strings.HasPrefix(low, "sk-test") || strings.HasPrefix(low, "demo-")
}
