package llm

import "testing"

func TestNewProvider(t *testing.T) {
	// Empty provider disables the feature without error
	p, err := NewProvider(Config{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if p != nil {
		t.Error("Expected nil provider for empty name")
	}

	cases := []struct {
		provider string
		name     string
	}{
		{"openai", "openai"},
		{"anthropic", "anthropic"},
		{"claude", "anthropic"},
		{"ollama", "ollama"},
		{"OLLAMA", "ollama"}, // Case-insensitive
	}
	for _, c := range cases {
		p, err := NewProvider(Config{Provider: c.provider, APIKey: "test-key"})
		if err != nil {
			t.Errorf("Provider %s: unexpected error %v", c.provider, err)
			continue
		}
		if p == nil || p.Name() != c.name {
			t.Errorf("Provider %s: expected %s, got %v", c.provider, c.name, p)
		}
	}

	if _, err := NewProvider(Config{Provider: "mystery"}); err == nil {
		t.Error("Expected error for unknown provider")
	}
}
