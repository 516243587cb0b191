package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EndlessCommerce/orchestra-sub001/graph/interview"
)

type stubBackend struct {
	result BackendResult
	err    error
}

func (s *stubBackend) Run(ctx context.Context, node Node, prompt string, pctx *Context, onTurn OnTurnFunc) (BackendResult, error) {
	if onTurn != nil {
		onTurn(AgentTurn{TurnNumber: 1, Model: "stub"})
	}
	return s.result, s.err
}

type stubConversationalBackend struct {
	stubBackend
	responses []BackendResult
	reset     bool
}

func (s *stubConversationalBackend) SendMessage(ctx context.Context, node Node, message string, pctx *Context, onTurn OnTurnFunc) (BackendResult, error) {
	if len(s.responses) == 0 {
		return BackendResult{}, errors.New("no more responses")
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next, nil
}

func (s *stubConversationalBackend) ResetConversation() { s.reset = true }

func TestCodergenHandler_WrapsTextAsSuccess(t *testing.T) {
	h := NewCodergenHandler(&stubBackend{result: BackendResult{Text: "done"}}, nil, nil)
	outcome := h.Handle(context.Background(), Node{ID: "n1"}, NewContext(), nil)
	assert.Equal(t, StatusSuccess, outcome.Status)
	assert.Equal(t, "done", outcome.ContextUpdates["last_response"])
}

func TestCodergenHandler_BackendErrorSanitizedAsFail(t *testing.T) {
	h := NewCodergenHandler(&stubBackend{err: errors.New("token sk-secret123 rejected")}, nil, nil)
	outcome := h.Handle(context.Background(), Node{ID: "n1"}, NewContext(), nil)
	assert.Equal(t, StatusFail, outcome.Status)
	assert.NotContains(t, outcome.FailureReason, "sk-secret123")
}

func TestCodergenHandler_PassesThroughBackendOutcome(t *testing.T) {
	backendOutcome := Fail("domain-specific failure")
	h := NewCodergenHandler(&stubBackend{result: BackendResult{Outcome: &backendOutcome}}, nil, nil)
	outcome := h.Handle(context.Background(), Node{ID: "n1"}, NewContext(), nil)
	assert.Equal(t, StatusFail, outcome.Status)
	assert.Equal(t, "domain-specific failure", outcome.FailureReason)
}

func TestCodergenDispatcher_RoutesOnAgentMode(t *testing.T) {
	standard := NodeHandlerFunc(func(context.Context, Node, *Context, *PipelineGraph) Outcome {
		o := Success()
		o.Notes = "standard"
		return o
	})
	interactive := NodeHandlerFunc(func(context.Context, Node, *Context, *PipelineGraph) Outcome {
		o := Success()
		o.Notes = "interactive"
		return o
	})
	d := NewCodergenDispatcher(standard, interactive)

	plain := d.Handle(context.Background(), Node{ID: "a"}, NewContext(), nil)
	assert.Equal(t, "standard", plain.Notes)

	interactiveNode := Node{ID: "b", Attributes: map[string]string{"agent.mode": "interactive"}}
	result := d.Handle(context.Background(), interactiveNode, NewContext(), nil)
	assert.Equal(t, "interactive", result.Notes)
}

func TestInteractiveHandler_YesEndsLoopSuccess(t *testing.T) {
	backend := &stubConversationalBackend{stubBackend: stubBackend{result: BackendResult{Text: "draft"}}}
	interviewer := interview.NewQueueInterviewer([]interview.Answer{{Value: string(interview.ValueYes)}})
	h := NewInteractiveHandler(backend, interviewer, nil, nil)

	node := Node{ID: "n1", Attributes: map[string]string{"max_retries": "2"}}
	outcome := h.Handle(context.Background(), node, NewContext(), nil)

	require.True(t, backend.reset)
	assert.Equal(t, StatusSuccess, outcome.Status)
}

func TestInteractiveHandler_NoSendsFollowUpThenYes(t *testing.T) {
	backend := &stubConversationalBackend{
		stubBackend: stubBackend{result: BackendResult{Text: "draft"}},
		responses:   []BackendResult{{Text: "revised"}},
	}
	interviewer := interview.NewQueueInterviewer([]interview.Answer{
		{Value: string(interview.ValueNo)},
		{Value: "please fix X", Text: "please fix X"},
		{Value: string(interview.ValueYes)},
	})
	h := NewInteractiveHandler(backend, interviewer, nil, nil)

	node := Node{ID: "n1", Attributes: map[string]string{"max_retries": "2"}}
	outcome := h.Handle(context.Background(), node, NewContext(), nil)

	assert.Equal(t, StatusSuccess, outcome.Status)
	assert.Equal(t, "revised", outcome.ContextUpdates["last_response"])
}

func TestInteractiveHandler_TimeoutEndsLoopFail(t *testing.T) {
	backend := &stubConversationalBackend{stubBackend: stubBackend{result: BackendResult{Text: "draft"}}}
	interviewer := interview.NewQueueInterviewer([]interview.Answer{{Value: string(interview.ValueTimeout)}})
	h := NewInteractiveHandler(backend, interviewer, nil, nil)

	node := Node{ID: "n1", Attributes: map[string]string{"max_retries": "2"}}
	outcome := h.Handle(context.Background(), node, NewContext(), nil)

	assert.Equal(t, StatusFail, outcome.Status)
}
