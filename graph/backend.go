package graph

import "context"

// Backend runs one codergen turn for a node: given a prompt and the
// current Context, it drives an LLM (and whatever tools it chooses to
// call) to either a terminal Outcome or a best-effort text result that the
// calling handler turns into an Outcome itself.
//
// Run must invoke onTurn, if non-nil, exactly once per completed
// conversational turn with the backend — even backends that only ever take
// one turn per Run call.
type Backend interface {
	Run(ctx context.Context, node Node, prompt string, pctx *Context, onTurn OnTurnFunc) (BackendResult, error)
}

// ConversationalBackend extends Backend for multi-turn interactive
// handlers: SendMessage continues an existing conversation instead of
// starting a fresh one, and ResetConversation discards accumulated state;
// InteractiveHandler calls it at the start of every node visit.
type ConversationalBackend interface {
	Backend
	SendMessage(ctx context.Context, node Node, message string, pctx *Context, onTurn OnTurnFunc) (BackendResult, error)
	ResetConversation()
}

// BackendResult is what a Backend hands back to its caller. Exactly one of
// Text or Outcome is meaningful: a backend that can fully determine
// success/failure sets Outcome; one that can only produce text leaves
// Outcome nil and lets the calling handler interpret Text.
type BackendResult struct {
	Text    string
	Outcome *Outcome
}
