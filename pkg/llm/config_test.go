package llm

import "testing"

func TestNewProviderSelection(t *testing.T) {
	cases := []struct {
		provider string
		wantErr  bool
	}{
		{"openai", false},
		{"Anthropic", false},
		{"OLLAMA", false},
		{"bedrock", true},
		{"", true},
	}

	for _, tc := range cases {
		_, err := NewProvider(Config{Provider: tc.provider, Model: "m"})
		if tc.wantErr && err == nil {
			t.Fatalf("provider %q: expected error", tc.provider)
		}
		if !tc.wantErr && err != nil {
			t.Fatalf("provider %q: unexpected error %v", tc.provider, err)
		}
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "")
	cfg := LoadConfig()
	if cfg.Provider != "openai" {
		t.Fatalf("expected openai default, got %q", cfg.Provider)
	}
}
