package agents

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"go.uber.org/zap"

	"github.com/bububa/tokenkit/components"
	"github.com/bububa/tokenkit/components/tokenizer"
	"github.com/bububa/tokenkit/components/trimmer"
)

var (
	// ErrNoClient is returned when a Generator has no LLM client
	ErrNoClient = errors.New("no llm client configured")
	// ErrNotBoolean is returned by GenerateBool when the reply is not a yes/no answer
	ErrNotBoolean = errors.New("reply is not a boolean")
)

// Generator sends prompts to a language model after fitting them into a token budget.
// When a memory is attached the whole conversation transcript is sent, trimmed from
// the front so the newest turns survive.
type Generator struct {
	Config
	usage components.LLMUsage
	mtx   sync.Mutex
}

// NewGenerator initializes the Generator
func NewGenerator(options ...Option) *Generator {
	ret := new(Generator)
	for _, opt := range options {
		opt(&ret.Config)
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	if ret.trimmer == nil {
		ret.trimmer = trimmer.New(trimmer.WithLogger(ret.logger))
	}
	if ret.maxPromptTokens <= 0 {
		ret.maxPromptTokens = DefaultMaxPromptTokens
	}
	return ret
}

// Usage returns the token usage reported by the model across all calls
func (g *Generator) Usage() components.LLMUsage {
	g.mtx.Lock()
	defer g.mtx.Unlock()
	return g.usage
}

// GenerateText trims the prompt to the configured budget and returns the model reply.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	const op = "agents.GenerateText"
	if strings.TrimSpace(prompt) == "" {
		return "", tokenizer.InvalidArgument(op, "prompt must not be empty")
	}
	if g.client == nil {
		return "", ErrNoClient
	}
	input := prompt
	var turnID string
	if g.memory != nil {
		turnID = g.memory.NewTurn().TurnID()
		g.memory.NewMessage(components.UserRole, prompt)
		input = g.memory.Transcript()
	}
	tcx := g.TokenizerContext()
	system, budget, err := g.system(ctx, tcx)
	if err != nil {
		g.dropTurn(turnID)
		return "", err
	}
	trimmed, err := g.trimmer.Trim(ctx, input, budget, tcx)
	if err != nil {
		g.dropTurn(turnID)
		return "", fmt.Errorf("trim prompt: %w", err)
	}
	if len(trimmed) < len(input) {
		g.logger.Debug("prompt trimmed",
			zap.String("generator", g.name),
			zap.Stringer("tokenizer_context", tcx),
			zap.Int("max_prompt_tokens", g.maxPromptTokens),
			zap.Int("original_bytes", len(input)),
			zap.Int("trimmed_bytes", len(trimmed)),
		)
	}
	resp := new(components.LLMResponse)
	reply, err := g.client.Generate(ctx, system+trimmed, resp)
	if err != nil {
		g.dropTurn(turnID)
		return "", fmt.Errorf("generate text: %w", err)
	}
	g.mtx.Lock()
	g.usage.Merge(resp.Usage)
	g.mtx.Unlock()
	if g.memory != nil {
		g.memory.NewMessage(components.AssistantRole, reply)
	}
	return reply, nil
}

// dropTurn removes the messages of a failed turn so the next call does not resend them
func (g *Generator) dropTurn(turnID string) {
	if g.memory == nil || turnID == "" {
		return
	}
	if err := g.memory.DeleteTurn(turnID); err != nil {
		g.logger.Warn("drop failed turn", zap.String("generator", g.name), zap.String("turn_id", turnID), zap.Error(err))
	}
}

// system renders the system prompt and returns the token budget left for the prompt
func (g *Generator) system(ctx context.Context, tcx tokenizer.Context) (string, int, error) {
	const op = "agents.GenerateText"
	if g.systemPrompt == nil {
		return "", g.maxPromptTokens, nil
	}
	system, err := g.systemPrompt.GenerateFor(ctx, tcx)
	if err != nil {
		return "", 0, fmt.Errorf("system prompt: %w", err)
	}
	if system == "" {
		return "", g.maxPromptTokens, nil
	}
	system += "\n\n"
	n, err := g.trimmer.Count(ctx, system, tcx)
	if err != nil {
		return "", 0, err
	}
	budget := g.maxPromptTokens - n
	if budget <= 0 {
		return "", 0, tokenizer.InvalidArgument(op, "system prompt exceeds maxPromptTokens")
	}
	return system, budget, nil
}

// GenerateBool asks the model a yes/no question. The first word of the reply decides.
func (g *Generator) GenerateBool(ctx context.Context, prompt string) (bool, error) {
	reply, err := g.GenerateText(ctx, prompt)
	if err != nil {
		return false, err
	}
	return ParseBool(reply)
}

// ParseBool reads yes/no/true/false from the first word of reply, ignoring case and punctuation
func ParseBool(reply string) (bool, error) {
	fields := strings.Fields(reply)
	if len(fields) == 0 {
		return false, fmt.Errorf("%w: empty", ErrNotBoolean)
	}
	word := strings.ToLower(strings.TrimFunc(fields[0], func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	switch word {
	case "yes", "true":
		return true, nil
	case "no", "false":
		return false, nil
	}
	return false, fmt.Errorf("%w: %q", ErrNotBoolean, fields[0])
}
