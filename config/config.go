package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/bububa/tokenkit/components/splitter"
	"github.com/bububa/tokenkit/components/tokenizer"
	"github.com/bububa/tokenkit/components/trimmer"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "TOKENKIT_"

// DefaultMaxTokens is the trimming budget used when none is configured
const DefaultMaxTokens = 4096

// Settings is the runtime configuration of the tokenkit tools.
type Settings struct {
	// Provider of the active model, e.g. openai, anthropic
	Provider string `yaml:"provider"`
	// Model name, used to pick the tokenizer
	Model string `yaml:"model"`
	// Encoding forces a tokenizer encoding, e.g. cl100k_base or characters
	Encoding string `yaml:"encoding"`
	// MaxTokens budget for trimming
	MaxTokens int `yaml:"max_tokens" validate:"gt=0"`
	// ChunkSize tokens per chunk
	ChunkSize int `yaml:"chunk_size" validate:"gt=0"`
	// Bleed tokens shared by consecutive chunks
	Bleed int `yaml:"bleed" validate:"gte=0,ltfield=ChunkSize"`
	// Strategy of trimming, tail or head
	Strategy string `yaml:"strategy" validate:"strategy"`
	// LogLevel of the zap logger
	LogLevel string `yaml:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// Default returns the settings used when nothing is configured
func Default() *Settings {
	return &Settings{
		MaxTokens: DefaultMaxTokens,
		ChunkSize: splitter.DefaultChunkSize,
		Bleed:     splitter.DefaultBleed,
		Strategy:  trimmer.KeepTail.String(),
		LogLevel:  "info",
	}
}

// Load reads the YAML file at path over the defaults, then applies the .env file
// and TOKENKIT_* environment overrides, then validates. path may be empty.
func Load(path string, envFiles ...string) (*Settings, error) {
	s := Default()
	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(buf, s); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := LoadEnv(envFiles...); err != nil {
		return nil, err
	}
	if err := s.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadEnv loads .env style files into the process environment without overriding
// variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// ApplyEnv overrides settings with TOKENKIT_* environment variables
func (s *Settings) ApplyEnv() error {
	strs := map[string]*string{
		"PROVIDER":  &s.Provider,
		"MODEL":     &s.Model,
		"ENCODING":  &s.Encoding,
		"STRATEGY":  &s.Strategy,
		"LOG_LEVEL": &s.LogLevel,
	}
	for key, dist := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dist = v
		}
	}
	ints := map[string]*int{
		"MAX_TOKENS": &s.MaxTokens,
		"CHUNK_SIZE": &s.ChunkSize,
		"BLEED":      &s.Bleed,
	}
	for key, dist := range ints {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("env %s%s: %w", EnvPrefix, key, err)
		}
		*dist = n
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("strategy", validStrategy)
	return v
}

// validStrategy validates if a given string names a trimming strategy.
func validStrategy(fl validator.FieldLevel) bool {
	_, ok := trimmer.ParseStrategy(fl.Field().String())
	return ok
}

// Validate checks the settings ranges
func (s *Settings) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// TokenizerContext builds the tokenizer-context of the configured model
func (s Settings) TokenizerContext() tokenizer.Context {
	return tokenizer.Context{
		Provider: tokenizer.Provider(s.Provider),
		Model:    s.Model,
		Encoding: s.Encoding,
	}
}

// TrimStrategy returns the parsed trimming strategy
func (s Settings) TrimStrategy() trimmer.Strategy {
	strategy, _ := trimmer.ParseStrategy(s.Strategy)
	return strategy
}
