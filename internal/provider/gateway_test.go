package provider

import "testing"

func TestInferFromKey(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{"empty", "", "unknown"},
		{"openai prefix", "sk-abc123", "openai"},
		{"perplexity prefix", "pplx-abc123", "perplexity"},
		{"grok prefix", "gsk_abc123", "grok"},
		{"sk prefix always infers openai", "sk-ant-api03-xyz", "openai"},
		{"demo token bypasses inference", "demo", "unknown"},
		{"sk-test bypasses inference", "sk-test-123", "unknown"},
		{"unrecognized shape", "xyz987", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InferFromKey(tt.key); got != tt.want {
				t.Errorf("InferFromKey(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestIsOfflineKey(t *testing.T) {
	offline := []string{"demo", "DEMO", "test", "sk-test", "sk-test-abc", "demo-123"}
	for _, key := range offline {
		if !IsOfflineKey(key) {
			t.Errorf("IsOfflineKey(%q) = false, want true", key)
		}
	}
	live := []string{"", "sk-live-abc", "pplx-123", "testing-oops"}
	for _, key := range live {
		if IsOfflineKey(key) {
			t.Errorf("IsOfflineKey(%q) = true, want false", key)
		}
	}
}

func TestRegistryKnownAndDefaults(t *testing.T) {
	r := NewRegistry(nil)

	for _, id := range []string{"openai", "anthropic", "google", "perplexity", "grok", "together_ai"} {
		if !r.Known(id) {
			t.Errorf("Known(%q) = false", id)
		}
	}
	if r.Known("llama-farm") {
		t.Error("Known should reject unsupported providers")
	}

	if got := r.DefaultModel("anthropic"); got != "claude-3-opus-20240229" {
		t.Errorf("DefaultModel(anthropic) = %q", got)
	}
	// Unknown providers fall back to the openai default.
	if got := r.DefaultModel("llama-farm"); got != "gpt-3.5-turbo" {
		t.Errorf("DefaultModel fallback = %q", got)
	}
}

func TestRegistryBaseURLOverride(t *testing.T) {
	r := NewRegistry(map[string]string{"openai": "http://localhost:9999/v1"})
	if got := r.configs["openai"].BaseURL; got != "http://localhost:9999/v1" {
		t.Errorf("override not applied, got %q", got)
	}
	if got := r.configs["perplexity"].BaseURL; got != "https://api.perplexity.ai" {
		t.Errorf("unrelated provider changed, got %q", got)
	}
}

func TestGatewayErrorMasksSecrets(t *testing.T) {
	err := gatewayErr(KindProtocol, 401, "invalid key sk-abcdef1234567890 supplied")
	if got := err.Error(); got == "" || containsToken(got) {
		t.Errorf("error should be masked, got %q", got)
	}
}

func containsToken(s string) bool {
	run := 0
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			run++
			if run >= 10 {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}
