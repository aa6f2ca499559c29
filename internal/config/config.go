// Package config loads ariadne's runtime configuration: LLM transport
// settings from the environment and search-loop parameters from an
// optional YAML file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LLMConfig configures the GenAI-backed LLM transport.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
	Debug   bool
}

// LoadLLMConfig reads LLM settings from the environment, following a
// fallback chain for each field: ARIADNE_-prefixed var, then the bare var,
// then a default.
func LoadLLMConfig() LLMConfig {
	cfg := LLMConfig{
		APIKey:  firstNonEmpty(os.Getenv("ARIADNE_API_KEY"), os.Getenv("API_KEY")),
		BaseURL: firstNonEmpty(os.Getenv("ARIADNE_BASE_URL"), os.Getenv("BASE_URL")),
		Model:   firstNonEmpty(os.Getenv("ARIADNE_MODEL"), os.Getenv("MODEL"), "gemini-2.0-flash"),
		Timeout: 30 * time.Second,
		Debug:   parseBool(firstNonEmpty(os.Getenv("ARIADNE_DEBUG"), os.Getenv("DEBUG"))),
	}
	if raw := firstNonEmpty(os.Getenv("ARIADNE_TIMEOUT"), os.Getenv("TIMEOUT")); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			cfg.Timeout = time.Duration(secs) * time.Second
		}
	}
	return cfg
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return b
}

// SearchConfig drives one MCTS run: iteration budget, expansion fan-out,
// the UCB1 exploration constant, the softmax temperature, and the seed for
// every stochastic decision in the search.
type SearchConfig struct {
	Iterations      int     `yaml:"iterations"`
	ExpansionBudget int     `yaml:"expansion_budget"`
	ExplorationC    float64 `yaml:"exploration_c"`
	Tau             float64 `yaml:"tau"`
	Seed            int64   `yaml:"seed"`
	QuickscreenN    int     `yaml:"quickscreen_n"`

	QuickscreenTimeoutSecs float64 `yaml:"quickscreen_timeout_seconds"`
	DeepevalTimeoutSecs    float64 `yaml:"deepeval_timeout_seconds"`

	QuickscreenTimeout time.Duration `yaml:"-"`
	DeepevalTimeout    time.Duration `yaml:"-"`
}

// DefaultSearchConfig returns the search parameters used when no config
// file overrides them.
func DefaultSearchConfig() SearchConfig {
	cfg := SearchConfig{
		Iterations:             50,
		ExpansionBudget:        3,
		ExplorationC:           1.41421356,
		Tau:                    1.0,
		Seed:                   0,
		QuickscreenN:           3,
		QuickscreenTimeoutSecs: 0.2,
		DeepevalTimeoutSecs:    1.0,
	}
	cfg.resolveTimeouts()
	return cfg
}

func (c *SearchConfig) resolveTimeouts() {
	c.QuickscreenTimeout = time.Duration(c.QuickscreenTimeoutSecs * float64(time.Second))
	c.DeepevalTimeout = time.Duration(c.DeepevalTimeoutSecs * float64(time.Second))
}

// LoadSearchConfig reads a YAML SearchConfig from path, applying defaults
// for any zero-valued field left unset by the file.
func LoadSearchConfig(path string) (SearchConfig, error) {
	cfg := DefaultSearchConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.resolveTimeouts()
	return cfg, nil
}
