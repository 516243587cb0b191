package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/EndlessCommerce/orchestra-sub001/graph/emit"
)

func TestDispatcher_DeliversInRegistrationOrder(t *testing.T) {
	var order []string
	d := NewDispatcher("run-1", emit.NewNullEmitter())
	d.Subscribe(ObserverFunc(func(e PipelineEvent) { order = append(order, "first:"+string(e.Type)) }))
	d.Subscribe(ObserverFunc(func(e PipelineEvent) { order = append(order, "second:"+string(e.Type)) }))

	d.Dispatch(PipelineEvent{Type: EventNodeEntered, NodeID: "A"})

	assert.Equal(t, []string{"first:node_entered", "second:node_entered"}, order)
}

func TestDispatcher_FillsRunIDWhenAbsent(t *testing.T) {
	var seen PipelineEvent
	d := NewDispatcher("run-42", emit.NewNullEmitter())
	d.Subscribe(ObserverFunc(func(e PipelineEvent) { seen = e }))
	d.Dispatch(PipelineEvent{Type: EventPipelineStarted})
	assert.Equal(t, "run-42", seen.RunID)
}
