package agent

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"

	"github.com/minnanWei/ARIADNE/internal/board"
	"github.com/minnanWei/ARIADNE/internal/llmclient"
)

// Agent is anything the Coordinator enumerates actions from during one
// MCTS expansion.
type Agent interface {
	Name() string
	ResetIteration()
}

// cacheKeyPayload is serialized to produce the per-call cache key.
type cacheKeyPayload struct {
	Agent      string        `json:"agent"`
	Code       string        `json:"code"`
	Blackboard board.Summary `json:"blackboard"`
}

// Base implements the shared LLM-calling machinery every specialist agent
// embeds: a per-iteration call budget and a response cache keyed on
// sha256(agent name, code, blackboard summary).
type Base struct {
	AgentName            string
	Temperature          float64
	MaxTokens            int
	MaxCallsPerIteration int
	UseCache             bool
	LLM                  llmclient.Client

	mu                 sync.Mutex
	cache              map[string]string
	callsThisIteration int
}

// NewBase constructs a Base with its defaults: temperature 0.2, max tokens
// 1024, one LLM call per MCTS iteration, cache enabled.
func NewBase(name string, llm llmclient.Client) Base {
	return Base{
		AgentName:            name,
		Temperature:          0.2,
		MaxTokens:            1024,
		MaxCallsPerIteration: 1,
		UseCache:             true,
		LLM:                  llm,
		cache:                make(map[string]string),
	}
}

// Name returns the agent's identifier.
func (b *Base) Name() string { return b.AgentName }

// ResetIteration clears the per-iteration call counter; called by the
// Coordinator once per MCTS iteration.
func (b *Base) ResetIteration() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.callsThisIteration = 0
}

// CallLLM enforces the per-iteration call budget and response cache, then
// delegates to LLM.Complete. Returns "" if the budget is exhausted or the
// transport errors, letting the caller fall back to its deterministic
// synthesizer.
func (b *Base) CallLLM(ctx context.Context, prompt, code string, bb *board.Blackboard) string {
	b.mu.Lock()
	if b.callsThisIteration >= b.MaxCallsPerIteration {
		b.mu.Unlock()
		return ""
	}
	key := b.cacheKey(code, bb)
	if b.UseCache {
		if cached, ok := b.cache[key]; ok {
			b.mu.Unlock()
			return cached
		}
	}
	b.mu.Unlock()

	response, err := b.LLM.Complete(ctx, b.AgentName, prompt)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.callsThisIteration++
	if err != nil {
		return ""
	}
	if b.UseCache {
		b.cache[key] = response
	}
	return response
}

func (b *Base) cacheKey(code string, bb *board.Blackboard) string {
	payload := cacheKeyPayload{Agent: b.AgentName, Code: code, Blackboard: bb.ToSummary()}
	data, err := json.Marshal(payload)
	if err != nil {
		data = []byte(b.AgentName + code)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// extractCode strips a fenced markdown code block if present; an already
// unfenced string comes back trimmed.
func extractCode(text string) string {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return ""
	}
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.Trim(cleaned, "`")
		if idx := strings.Index(cleaned, "\n"); idx >= 0 {
			cleaned = cleaned[idx+1:]
		}
		if idx := strings.Index(cleaned, "```"); idx >= 0 {
			cleaned = cleaned[:idx]
		}
	}
	return strings.TrimSpace(cleaned)
}
