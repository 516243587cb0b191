package prompts

import (
	"bytes"
	"text/template"

	"github.com/EndlessCommerce/orchestra-sub001/config"
	"github.com/EndlessCommerce/orchestra-sub001/graph"
)

// NewAgentComposer builds a graph.PromptComposer that overrides a node's
// literal prompt with its configured agent's PromptTemplate, rendered
// against the run context snapshot. Nodes with no "agent" attribute, or
// whose agent has no template, fall through to the node's own prompt.
func NewAgentComposer(cfg config.OrchestraConfig) graph.PromptComposer {
	return func(node graph.Node, pctx *graph.Context) (string, bool) {
		agentName := node.Attr("agent")
		if agentName == "" {
			return "", false
		}
		agent := cfg.AgentByName(agentName)
		if agent == nil || agent.PromptTemplate == "" {
			return "", false
		}

		tmpl, err := template.New(agentName).Parse(agent.PromptTemplate)
		if err != nil {
			return "", false
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, pctx.Snapshot()); err != nil {
			return "", false
		}
		return buf.String(), true
	}
}
