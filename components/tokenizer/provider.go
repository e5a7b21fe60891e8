package tokenizer

import "strings"

type Provider = string

const (
	ProviderOpenAI      Provider = "OpenAI"
	ProviderAzure       Provider = "Azure"
	ProviderAnthropic   Provider = "Anthropic"
	ProviderCohere      Provider = "Cohere"
	ProviderGemini      Provider = "Gemini"
	ProviderVoyageAI    Provider = "VoyageAI"
	ProviderHuggingFace Provider = "HuggingFace"
)

// DefaultEncoding is the generic encoding used when no provider specific tokenizer resolves
const DefaultEncoding = "cl100k_base"

// Context identifies the active model/provider configuration a tokenizer is
// selected for. The zero value resolves to the generic fallback.
type Context struct {
	// Provider is the model vendor, e.g. "OpenAI"
	Provider Provider `json:"provider,omitempty" yaml:"provider,omitempty"`
	// Model is the model name, e.g. "gpt-4o"
	Model string `json:"model,omitempty" yaml:"model,omitempty"`
	// Encoding forces a named encoding, overriding provider and model
	Encoding string `json:"encoding,omitempty" yaml:"encoding,omitempty"`
}

func (c Context) String() string {
	var sb strings.Builder
	sb.WriteString(c.Provider)
	if c.Model != "" {
		sb.WriteByte('/')
		sb.WriteString(c.Model)
	}
	if c.Encoding != "" {
		sb.WriteByte('#')
		sb.WriteString(c.Encoding)
	}
	return sb.String()
}

func providerKey(p Provider) string {
	return strings.ToLower(strings.TrimSpace(p))
}
