package graph

import (
	"fmt"
	"strings"
)

// EvaluateCondition evaluates an edge guard expression against (outcome,
// context). Supported grammar (spec.md §4.2, §9):
//
//	outcome=success | fail | retry | partial_success
//	<context-key>=<value>
//	clause && clause && ...
//
// Evaluation is total: malformed or unknown expressions evaluate to false,
// never panic. ConditionParses reports whether an expression is well-formed
// for validation-time diagnostics.
func EvaluateCondition(expr string, outcome Outcome, ctx *Context) bool {
	clauses := splitClauses(expr)
	if len(clauses) == 0 {
		return false
	}
	for _, clause := range clauses {
		if !evaluateClause(clause, outcome, ctx) {
			return false
		}
	}
	return true
}

// ConditionParses reports whether expr is composed entirely of clauses
// EvaluateCondition understands. It does not evaluate truth, only syntax.
func ConditionParses(expr string) bool {
	clauses := splitClauses(expr)
	if len(clauses) == 0 {
		return false
	}
	for _, clause := range clauses {
		if !clauseParses(clause) {
			return false
		}
	}
	return true
}

func splitClauses(expr string) []string {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil
	}
	parts := strings.Split(expr, "&&")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func splitClauseKV(clause string) (key, value string, ok bool) {
	idx := strings.Index(clause, "=")
	if idx < 0 {
		return "", "", false
	}
	return strings.TrimSpace(clause[:idx]), strings.TrimSpace(clause[idx+1:]), true
}

func clauseParses(clause string) bool {
	key, value, ok := splitClauseKV(clause)
	if !ok || key == "" {
		return false
	}
	if key == "outcome" {
		switch strings.ToLower(value) {
		case "success", "fail", "retry", "partial_success":
			return true
		default:
			return false
		}
	}
	return value != "" || true // any non-empty key=value context clause parses
}

func evaluateClause(clause string, outcome Outcome, ctx *Context) bool {
	key, value, ok := splitClauseKV(clause)
	if !ok || key == "" {
		return false
	}
	if key == "outcome" {
		return matchesOutcome(value, outcome.Status)
	}
	return stringifyContextValue(ctx.Get(key)) == value
}

func matchesOutcome(value string, status OutcomeStatus) bool {
	switch strings.ToLower(value) {
	case "success":
		return status == StatusSuccess
	case "fail":
		return status == StatusFail
	case "retry":
		return status == StatusRetry
	case "partial_success":
		return status == StatusPartialSuccess
	default:
		return false
	}
}

func stringifyContextValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
