package graph

import (
	"fmt"
	"sync"
	"time"
)

// ModelPricing defines input and output token costs for a chat model, in
// USD per 1M tokens.
type ModelPricing struct {
	InputPer1M  float64
	OutputPer1M float64
}

// defaultModelPricing covers the three chat backends wired under
// graph/model/{openai,anthropic,google} (see SPEC_FULL.md's DOMAIN STACK).
// Prices are in USD per 1M tokens and are necessarily a snapshot — override
// via SetCustomPricing for a deployment with different negotiated rates.
var defaultModelPricing = map[string]ModelPricing{
	"gpt-4o":                 {InputPer1M: 2.50, OutputPer1M: 10.00},
	"gpt-4o-2024-08-06":      {InputPer1M: 2.50, OutputPer1M: 10.00},
	"gpt-4o-mini":            {InputPer1M: 0.15, OutputPer1M: 0.60},
	"gpt-4-turbo":            {InputPer1M: 10.00, OutputPer1M: 30.00},
	"gpt-4-turbo-2024-04-09": {InputPer1M: 10.00, OutputPer1M: 30.00},
	"gpt-3.5-turbo":          {InputPer1M: 0.50, OutputPer1M: 1.50},

	"claude-3-5-sonnet-20241022": {InputPer1M: 3.00, OutputPer1M: 15.00},
	"claude-3.5-sonnet":          {InputPer1M: 3.00, OutputPer1M: 15.00},
	"claude-3-opus-20240229":     {InputPer1M: 15.00, OutputPer1M: 75.00},
	"claude-3-opus":              {InputPer1M: 15.00, OutputPer1M: 75.00},
	"claude-3-sonnet-20240229":   {InputPer1M: 3.00, OutputPer1M: 15.00},
	"claude-3-sonnet":            {InputPer1M: 3.00, OutputPer1M: 15.00},
	"claude-3-haiku-20240307":    {InputPer1M: 0.25, OutputPer1M: 1.25},
	"claude-3-haiku":             {InputPer1M: 0.25, OutputPer1M: 1.25},

	"gemini-1.5-pro":       {InputPer1M: 1.25, OutputPer1M: 5.00},
	"gemini-1.5-pro-001":   {InputPer1M: 1.25, OutputPer1M: 5.00},
	"gemini-1.5-flash":     {InputPer1M: 0.075, OutputPer1M: 0.30},
	"gemini-1.5-flash-001": {InputPer1M: 0.075, OutputPer1M: 0.30},
}

// LLMCall records a single chat-model invocation attributed to the node
// that triggered it, for the run's cost ledger.
type LLMCall struct {
	Model        string
	InputTokens  int
	OutputTokens int
	CostUSD      float64
	Timestamp    time.Time
	NodeID       string
}

// CostTracker accumulates LLM spend for a single pipeline run, attributing
// cost to both model and node. A Runner attaches one via WithCostTracker;
// the run's OnTurnFunc (see MakeOnTurn) feeds it from each AgentTurn's
// token usage.
//
// If Budget is set (SetBudget), RecordLLMCall still records the call and
// updates totals — it never drops data — but returns ErrCostBudgetExceeded
// once cumulative spend crosses the cap, so a caller can route the
// pipeline to a failure/fallback path instead of running further nodes.
type CostTracker struct {
	RunID    string
	Currency string

	Pricing map[string]ModelPricing
	Calls   []LLMCall

	TotalCost float64
	// Budget caps TotalCost; zero means unbounded.
	Budget float64

	ModelCosts map[string]float64
	NodeCosts  map[string]float64

	InputTokens  int64
	OutputTokens int64

	CreatedAt time.Time

	mu      sync.RWMutex
	enabled bool
}

// NewCostTracker creates a cost tracker seeded with defaultModelPricing for
// runID, accruing spend in currency.
func NewCostTracker(runID, currency string) *CostTracker {
	return &CostTracker{
		RunID:      runID,
		Currency:   currency,
		Pricing:    defaultModelPricing,
		Calls:      make([]LLMCall, 0, 16),
		ModelCosts: make(map[string]float64),
		NodeCosts:  make(map[string]float64),
		CreatedAt:  time.Now(),
		enabled:    true,
	}
}

// SetBudget caps the tracker's cumulative cost. A zero or negative budget
// disables the cap.
func (ct *CostTracker) SetBudget(budget float64) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.Budget = budget
}

// RecordLLMCall records a chat-model invocation and returns
// ErrCostBudgetExceeded if doing so pushed cumulative cost past Budget.
// A model missing from Pricing is recorded at zero cost rather than
// rejected, since an unpriced call still consumed real tokens worth
// tracking.
func (ct *CostTracker) RecordLLMCall(model string, inputTokens, outputTokens int, nodeID string) error {
	if !ct.enabled {
		return nil
	}

	ct.mu.Lock()
	defer ct.mu.Unlock()

	pricing, ok := ct.Pricing[model]
	if !ok {
		pricing = ModelPricing{}
	}

	inputCost := (float64(inputTokens) / 1_000_000.0) * pricing.InputPer1M
	outputCost := (float64(outputTokens) / 1_000_000.0) * pricing.OutputPer1M
	totalCost := inputCost + outputCost

	ct.Calls = append(ct.Calls, LLMCall{
		Model:        model,
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		CostUSD:      totalCost,
		Timestamp:    time.Now(),
		NodeID:       nodeID,
	})

	ct.TotalCost += totalCost
	ct.ModelCosts[model] += totalCost
	if nodeID != "" {
		ct.NodeCosts[nodeID] += totalCost
	}
	ct.InputTokens += int64(inputTokens)
	ct.OutputTokens += int64(outputTokens)

	if ct.Budget > 0 && ct.TotalCost > ct.Budget {
		return ErrCostBudgetExceeded
	}
	return nil
}

// GetTotalCost returns the cumulative cost recorded so far.
func (ct *CostTracker) GetTotalCost() float64 {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.TotalCost
}

// GetCostByModel returns a copy of the per-model cost breakdown.
func (ct *CostTracker) GetCostByModel() map[string]float64 {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	costs := make(map[string]float64, len(ct.ModelCosts))
	for model, cost := range ct.ModelCosts {
		costs[model] = cost
	}
	return costs
}

// GetCostByNode returns a copy of the per-node cost breakdown, useful for
// finding which node in a pipeline is driving spend.
func (ct *CostTracker) GetCostByNode() map[string]float64 {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	costs := make(map[string]float64, len(ct.NodeCosts))
	for nodeID, cost := range ct.NodeCosts {
		costs[nodeID] = cost
	}
	return costs
}

// GetCallHistory returns a copy of every recorded call, in order.
func (ct *CostTracker) GetCallHistory() []LLMCall {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	calls := make([]LLMCall, len(ct.Calls))
	copy(calls, ct.Calls)
	return calls
}

// GetTokenUsage returns total input and output token counts across all
// recorded calls.
func (ct *CostTracker) GetTokenUsage() (inputTokens, outputTokens int64) {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return ct.InputTokens, ct.OutputTokens
}

// SetCustomPricing overrides (or adds) pricing for a model.
func (ct *CostTracker) SetCustomPricing(model string, inputPer1M, outputPer1M float64) {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	if ct.Pricing == nil {
		ct.Pricing = make(map[string]ModelPricing)
	}
	ct.Pricing[model] = ModelPricing{InputPer1M: inputPer1M, OutputPer1M: outputPer1M}
}

// Disable stops further cost accrual without losing what has been recorded.
func (ct *CostTracker) Disable() {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.enabled = false
}

// Enable re-enables cost tracking after Disable.
func (ct *CostTracker) Enable() {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.enabled = true
}

// Reset clears recorded calls and cumulative totals, preserving pricing and
// budget configuration.
func (ct *CostTracker) Reset() {
	ct.mu.Lock()
	defer ct.mu.Unlock()
	ct.Calls = make([]LLMCall, 0, 16)
	ct.TotalCost = 0
	ct.ModelCosts = make(map[string]float64)
	ct.NodeCosts = make(map[string]float64)
	ct.InputTokens = 0
	ct.OutputTokens = 0
}

// String returns a human-readable summary for debug output.
func (ct *CostTracker) String() string {
	ct.mu.RLock()
	defer ct.mu.RUnlock()
	return fmt.Sprintf(
		"CostTracker{RunID: %s, Calls: %d, TotalCost: $%.4f %s, Budget: $%.4f, InputTokens: %d, OutputTokens: %d}",
		ct.RunID, len(ct.Calls), ct.TotalCost, ct.Currency, ct.Budget, ct.InputTokens, ct.OutputTokens,
	)
}
