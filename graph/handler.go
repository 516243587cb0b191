package graph

import (
	"context"
	"fmt"

	"github.com/EndlessCommerce/orchestra-sub001/graph/interview"
	"github.com/EndlessCommerce/orchestra-sub001/ui"
)

// NodeHandler executes one node and produces the Outcome that drives edge
// selection or failure routing.
type NodeHandler interface {
	Handle(ctx context.Context, node Node, pctx *Context, g *PipelineGraph) Outcome
}

// NodeHandlerFunc adapts a plain function to NodeHandler.
type NodeHandlerFunc func(ctx context.Context, node Node, pctx *Context, g *PipelineGraph) Outcome

// Handle calls f.
func (f NodeHandlerFunc) Handle(ctx context.Context, node Node, pctx *Context, g *PipelineGraph) Outcome {
	return f(ctx, node, pctx, g)
}

// Registry maps canonical node shapes to the handler responsible for them.
// A shape with no registered handler is a configuration error: Runner.Run
// returns an InvariantViolation when traversal reaches a node of that shape.
type Registry struct {
	handlers map[string]NodeHandler
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: map[string]NodeHandler{}}
}

// Register associates shape (canonical or alias — it is normalized via
// CanonicalShape) with a handler, replacing any prior registration.
func (r *Registry) Register(shape string, handler NodeHandler) {
	r.handlers[CanonicalShape(shape)] = handler
}

// Lookup returns the handler registered for node.Shape, if any.
func (r *Registry) Lookup(node Node) (NodeHandler, bool) {
	h, ok := r.handlers[CanonicalShape(node.Shape)]
	return h, ok
}

// NewDefaultRegistry wires start/exit/conditional passthrough handlers and
// a CodergenDispatcher for action nodes, matching the handler set
// original_source/handlers ships: a node's shape alone picks its handler,
// and "box" nodes additionally branch on the node's agent.mode attribute.
func NewDefaultRegistry(standard, interactive NodeHandler) *Registry {
	r := NewRegistry()
	r.Register(ShapeStart, NodeHandlerFunc(handleStart))
	r.Register(ShapeExit, NodeHandlerFunc(handleExit))
	r.Register(ShapeConditional, NodeHandlerFunc(handleConditional))
	r.Register(ShapeAction, NewCodergenDispatcher(standard, interactive))
	return r
}

func handleStart(context.Context, Node, *Context, *PipelineGraph) Outcome {
	return Success()
}

func handleExit(context.Context, Node, *Context, *PipelineGraph) Outcome {
	return Success()
}

func handleConditional(context.Context, Node, *Context, *PipelineGraph) Outcome {
	return Success()
}

// CodergenDispatcher routes "box" nodes to a standard (single-shot) or
// interactive (approval-looped) handler based on the node's "agent.mode"
// attribute.
type CodergenDispatcher struct {
	standard    NodeHandler
	interactive NodeHandler
}

// NewCodergenDispatcher wires the two codergen handler variants.
func NewCodergenDispatcher(standard, interactive NodeHandler) *CodergenDispatcher {
	return &CodergenDispatcher{standard: standard, interactive: interactive}
}

// Handle dispatches to interactive when node.Attr("agent.mode") == "interactive",
// else to standard.
func (d *CodergenDispatcher) Handle(ctx context.Context, node Node, pctx *Context, g *PipelineGraph) Outcome {
	if node.Attr("agent.mode") == "interactive" && d.interactive != nil {
		return d.interactive.Handle(ctx, node, pctx, g)
	}
	return d.standard.Handle(ctx, node, pctx, g)
}

// PromptComposer overrides a node's literal prompt text — for example by
// rendering an agent-specific template — before it is sent to a backend.
// It returns ok=false to signal "use the node's prompt as-is".
type PromptComposer func(node Node, pctx *Context) (prompt string, ok bool)

// ComposeNodePrompt applies an optional PromptComposer, falling back to the
// node's literal Prompt when composer is nil or declines to override.
func ComposeNodePrompt(node Node, pctx *Context, composer PromptComposer) string {
	if composer == nil {
		return node.Prompt
	}
	if composed, ok := composer(node, pctx); ok {
		return composed
	}
	return node.Prompt
}

// SimulationCodergenHandler is a deterministic stand-in CodergenHandler for
// tests and dry runs — it never calls a real Backend.
type SimulationCodergenHandler struct{}

// Handle always succeeds with a canned response recorded in context.
func (SimulationCodergenHandler) Handle(_ context.Context, node Node, _ *Context, _ *PipelineGraph) Outcome {
	response := fmt.Sprintf("[Simulated] Response for stage: %s", node.ID)
	o := Success()
	o.Notes = response
	o.ContextUpdates = map[string]any{"last_response": response}
	return o
}

// CodergenHandler drives a single Backend.Run call per visit and turns its
// BackendResult into an Outcome.
type CodergenHandler struct {
	backend  Backend
	composer PromptComposer
	onTurn   OnTurnFunc
}

// NewCodergenHandler wires a Backend, an optional prompt composer, and an
// optional turn-telemetry sink.
func NewCodergenHandler(backend Backend, composer PromptComposer, onTurn OnTurnFunc) *CodergenHandler {
	return &CodergenHandler{backend: backend, composer: composer, onTurn: onTurn}
}

// Handle composes the prompt, runs the backend once, and maps the result
// to an Outcome: a backend-produced Outcome passes through verbatim; a
// text-only result is wrapped as a SUCCESS outcome carrying the text in
// Notes and in context under "last_response".
func (h *CodergenHandler) Handle(ctx context.Context, node Node, pctx *Context, g *PipelineGraph) Outcome {
	prompt := ComposeNodePrompt(node, pctx, h.composer)

	spinner := ui.Start(fmt.Sprintf("Running %s...", node.ID))
	result, err := h.backend.Run(ctx, node, prompt, pctx, h.onTurn)
	spinner.Stop()

	if err != nil {
		return Fail(SanitizeError(err.Error()))
	}
	if result.Outcome != nil {
		return *result.Outcome
	}
	o := Success()
	o.Notes = result.Text
	o.ContextUpdates = map[string]any{"last_response": result.Text}
	return o
}

// InteractiveHandler drives a multi-turn approval loop against a
// ConversationalBackend, consulting an interview.Interviewer after every
// turn that does not already terminate the node. See SPEC_FULL.md's open
// question decision for the exact question sequence.
type InteractiveHandler struct {
	backend     ConversationalBackend
	interviewer interview.Interviewer
	composer    PromptComposer
	onTurn      OnTurnFunc
}

// NewInteractiveHandler wires a ConversationalBackend and the Interviewer
// that gates each additional turn.
func NewInteractiveHandler(backend ConversationalBackend, interviewer interview.Interviewer, composer PromptComposer, onTurn OnTurnFunc) *InteractiveHandler {
	return &InteractiveHandler{backend: backend, interviewer: interviewer, composer: composer, onTurn: onTurn}
}

// Handle runs an initial turn, then asks a CONFIRMATION question after each
// non-terminal turn: YES ends the loop SUCCESS, NO sends a follow-up turn
// built from a FREEFORM answer, and TIMEOUT/SKIPPED end the loop FAIL. The
// loop is capped by the node's max_retries attribute (reused here as a turn
// budget, per SPEC_FULL.md).
func (h *InteractiveHandler) Handle(ctx context.Context, node Node, pctx *Context, g *PipelineGraph) Outcome {
	h.backend.ResetConversation()
	prompt := ComposeNodePrompt(node, pctx, h.composer)

	result, err := h.backend.Run(ctx, node, prompt, pctx, h.onTurn)
	if err != nil {
		return Fail(SanitizeError(err.Error()))
	}

	maxTurns := NodeMaxRetries(node) + 1
	for turn := 1; turn < maxTurns; turn++ {
		if result.Outcome != nil && terminal(result.Outcome.Status) {
			break
		}

		answer := h.interviewer.Ask(interview.Question{
			Text: fmt.Sprintf("Accept result for %s?", node.ID),
			Type: interview.TypeConfirmation,
		})

		switch answer.Value {
		case string(interview.ValueYes):
			return h.finalize(result, StatusSuccess)
		case string(interview.ValueTimeout), string(interview.ValueSkipped):
			return h.finalize(result, StatusFail)
		default:
			followUp := h.interviewer.Ask(interview.Question{
				Text: "What should change?",
				Type: interview.TypeFreeform,
			})
			result, err = h.backend.SendMessage(ctx, node, followUp.Text, pctx, h.onTurn)
			if err != nil {
				return Fail(SanitizeError(err.Error()))
			}
		}
	}

	return h.finalize(result, StatusSuccess)
}

func (h *InteractiveHandler) finalize(result BackendResult, fallback OutcomeStatus) Outcome {
	if result.Outcome != nil {
		return *result.Outcome
	}
	o := Outcome{Status: fallback, Notes: result.Text}
	o.ContextUpdates = map[string]any{"last_response": result.Text}
	return o
}

func terminal(status OutcomeStatus) bool {
	return status == StatusSuccess || status == StatusFail
}
