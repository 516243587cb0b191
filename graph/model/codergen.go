package model

import (
	"context"
	"fmt"
	"strings"

	"github.com/EndlessCommerce/orchestra-sub001/graph"
	"github.com/EndlessCommerce/orchestra-sub001/graph/tool"
)

// maxToolTurns bounds how many tool-call/tool-result round trips a single
// Run or SendMessage call will drive before giving up with an error and an
// empty result.
const maxToolTurns = 8

// ChatBackend adapts any ChatModel plus a tool registry into graph.Backend
// and graph.ConversationalBackend. It is shared across providers: Anthropic,
// OpenAI, and Google all implement ChatModel, so none needs its own
// tool-calling loop or conversation-history bookkeeping.
type ChatBackend struct {
	chat     ChatModel
	provider string
	modelID  string
	tools    []tool.Tool
	specs    []ToolSpec

	history []Message
}

// NewChatBackend wires a ChatModel and a set of tools into a ChatBackend.
// provider and modelID are telemetry labels only (e.g. "anthropic",
// "claude-3-opus-20240229"); they are attached to every AgentTurn produced.
func NewChatBackend(chat ChatModel, provider, modelID string, tools []tool.Tool) *ChatBackend {
	specs := make([]ToolSpec, 0, len(tools))
	for _, t := range tools {
		specs = append(specs, ToolSpec{Name: t.Name()})
	}
	return &ChatBackend{chat: chat, provider: provider, modelID: modelID, tools: tools, specs: specs}
}

// Run drives a single-shot conversation seeded from the node's prompt: it
// sends the prompt, executes any requested tool calls, and feeds results
// back until the model answers with text or maxToolTurns is exhausted.
func (b *ChatBackend) Run(ctx context.Context, node graph.Node, prompt string, pctx *graph.Context, onTurn graph.OnTurnFunc) (graph.BackendResult, error) {
	b.history = []Message{{Role: RoleUser, Content: prompt}}
	return b.converse(ctx, node, onTurn)
}

// SendMessage appends message to the running conversation and resumes the
// tool-calling loop. Callers must call Run first to seed the conversation.
func (b *ChatBackend) SendMessage(ctx context.Context, node graph.Node, message string, pctx *graph.Context, onTurn graph.OnTurnFunc) (graph.BackendResult, error) {
	b.history = append(b.history, Message{Role: RoleUser, Content: message})
	return b.converse(ctx, node, onTurn)
}

// ResetConversation discards accumulated history, starting the next Run
// from a clean slate.
func (b *ChatBackend) ResetConversation() {
	b.history = nil
}

func (b *ChatBackend) converse(ctx context.Context, node graph.Node, onTurn graph.OnTurnFunc) (graph.BackendResult, error) {
	writes := graph.NewWriteTracker()

	for turn := 1; turn <= maxToolTurns; turn++ {
		out, err := b.chat.Chat(ctx, b.history, b.specs)
		if err != nil {
			return graph.BackendResult{}, fmt.Errorf("%s chat failed: %w", b.provider, err)
		}

		if len(out.ToolCalls) == 0 {
			b.history = append(b.history, Message{Role: RoleAssistant, Content: out.Text})
			if onTurn != nil {
				onTurn(b.buildTurn(turn, out, writes.Flush()))
			}
			return graph.BackendResult{Text: out.Text}, nil
		}

		results := b.runTools(ctx, out.ToolCalls, writes)
		b.history = append(b.history, Message{Role: RoleAssistant, Content: out.Text})
		b.history = append(b.history, Message{Role: RoleUser, Content: results})

		if onTurn != nil {
			onTurn(b.buildTurn(turn, out, writes.Flush()))
		}
	}

	return graph.BackendResult{}, fmt.Errorf("%s exceeded %d tool-call turns without a final answer", b.provider, maxToolTurns)
}

func (b *ChatBackend) runTools(ctx context.Context, calls []ToolCall, writes *graph.WriteTracker) string {
	var sb strings.Builder
	for _, call := range calls {
		t := b.findTool(call.Name)
		if t == nil {
			fmt.Fprintf(&sb, "tool %q is not registered\n", call.Name)
			continue
		}
		result, err := t.Call(ctx, call.Input)
		if err != nil {
			fmt.Fprintf(&sb, "tool %q failed: %s\n", call.Name, graph.SanitizeError(err.Error()))
			continue
		}
		if output, ok := result["output"]; ok {
			writes.RecordResult(output)
		}
		fmt.Fprintf(&sb, "tool %q result: %v\n", call.Name, result)
	}
	return sb.String()
}

func (b *ChatBackend) findTool(name string) tool.Tool {
	for _, t := range b.tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}

func (b *ChatBackend) buildTurn(turnNumber int, out ChatOut, filesWritten []string) graph.AgentTurn {
	toolCalls := make([]map[string]any, 0, len(out.ToolCalls))
	for _, call := range out.ToolCalls {
		toolCalls = append(toolCalls, map[string]any{"name": call.Name, "input": call.Input})
	}
	messages := make([]map[string]any, 0, len(b.history))
	for _, m := range b.history {
		messages = append(messages, map[string]any{"role": m.Role, "content": m.Content})
	}
	return graph.AgentTurn{
		TurnNumber:   turnNumber,
		Model:        b.modelID,
		Provider:     b.provider,
		Messages:     messages,
		ToolCalls:    toolCalls,
		FilesWritten: filesWritten,
	}
}

var (
	_ graph.Backend               = (*ChatBackend)(nil)
	_ graph.ConversationalBackend = (*ChatBackend)(nil)
)
