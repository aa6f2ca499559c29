// Package llmclient defines the LLM transport interface agents call
// through, plus a google.golang.org/genai-backed implementation and an
// in-memory stub for tests.
package llmclient

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"github.com/minnanWei/ARIADNE/internal/config"
	"github.com/minnanWei/ARIADNE/internal/logging"
	"github.com/minnanWei/ARIADNE/internal/usage"
)

// Client is the minimal interface agents use to call an LLM. A malformed or
// empty completion is surfaced as an error; callers degrade to their
// deterministic fallback rather than propagating it to the search loop.
type Client interface {
	Complete(ctx context.Context, agentName, prompt string) (string, error)
}

// GenAIClient calls a Gemini model through google.golang.org/genai.
type GenAIClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	tracker *usage.Tracker
}

// NewGenAIClient constructs a GenAIClient from cfg. APIKey is required.
func NewGenAIClient(ctx context.Context, cfg config.LLMConfig, tracker *usage.Tracker) (*GenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llmclient: API key is required")
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-2.0-flash"
	}

	clientCfg := &genai.ClientConfig{APIKey: cfg.APIKey}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("llmclient: create genai client: %w", err)
	}

	return &GenAIClient{client: client, model: model, timeout: cfg.Timeout, tracker: tracker}, nil
}

// Complete sends prompt to the configured model and returns its text
// completion. An empty or error response is returned as an error so the
// calling agent can fall back to its deterministic synthesizer.
func (c *GenAIClient) Complete(ctx context.Context, agentName, prompt string) (string, error) {
	log := logging.Get(logging.CategoryLLM)
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}
	result, err := c.client.Models.GenerateContent(callCtx, c.model, contents, nil)
	elapsed := time.Since(start)

	if err != nil {
		log.Error("agent=%s model=%s call failed after %v: %v", agentName, c.model, elapsed, err)
		return "", fmt.Errorf("llmclient: generate content: %w", err)
	}

	text := result.Text()
	if text == "" {
		log.Error("agent=%s model=%s returned empty completion", agentName, c.model)
		return "", fmt.Errorf("llmclient: empty completion from model %s", c.model)
	}

	if c.tracker != nil && result.UsageMetadata != nil {
		c.tracker.Track(agentName, int(result.UsageMetadata.PromptTokenCount), int(result.UsageMetadata.CandidatesTokenCount))
	}
	log.Debug("agent=%s model=%s completed in %v", agentName, c.model, elapsed)
	return text, nil
}

// StubClient is a deterministic, in-memory Client for tests: it returns a
// fixed response per agent name (falling back to Default), optionally
// failing, and records every call for assertions.
type StubClient struct {
	Responses map[string]string
	Default   string
	Fail      bool
	Calls     []StubCall
}

// StubCall records one Complete invocation.
type StubCall struct {
	AgentName string
	Prompt    string
}

// Complete returns the configured canned response for agentName.
func (c *StubClient) Complete(_ context.Context, agentName, prompt string) (string, error) {
	c.Calls = append(c.Calls, StubCall{AgentName: agentName, Prompt: prompt})
	if c.Fail {
		return "", fmt.Errorf("llmclient: stub configured to fail")
	}
	if resp, ok := c.Responses[agentName]; ok {
		if resp == "" {
			return "", fmt.Errorf("llmclient: empty completion from stub")
		}
		return resp, nil
	}
	if c.Default == "" {
		return "", fmt.Errorf("llmclient: empty completion from stub")
	}
	return c.Default, nil
}
