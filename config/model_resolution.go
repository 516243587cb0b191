package config

import "github.com/EndlessCommerce/orchestra-sub001/graph"

// ResolveNodeModel picks the model string and provider name a box node's
// handler should invoke, following the cascade: explicit node attribute →
// agent config → graph-level default → provider default, then resolving
// any alias to a concrete model string.
func ResolveNodeModel(node graph.Node, agentConfig *AgentConfig, g *graph.PipelineGraph, providers ProvidersConfig) (model, provider string) {
	model = node.Attr("llm_model")
	provider = node.Attr("llm_provider")

	if model == "" && agentConfig != nil {
		model = agentConfig.Model
	}
	if provider == "" && agentConfig != nil {
		provider = agentConfig.Provider
	}

	if model == "" && g != nil {
		model = g.GraphAttributes["llm_model"]
	}
	if provider == "" && g != nil {
		provider = g.GraphAttributes["llm_provider"]
	}

	provider = resolveProvider(provider, providers)
	model = resolveModel(model, provider, providers)

	return model, provider
}

// resolveProvider falls back to the configured default provider when name
// is unset.
func resolveProvider(name string, providers ProvidersConfig) string {
	if name != "" {
		return name
	}
	return providers.DefaultProvider
}

// resolveModel expands a model alias (e.g. "fast", "reasoning") to its
// concrete model string for provider. A name that is not an alias is
// returned unchanged; an empty name falls back to that provider's default
// model. For an unknown provider name is returned as-is.
func resolveModel(name, provider string, providers ProvidersConfig) string {
	def, ok := providers.Providers[provider]
	if !ok {
		return name
	}
	if resolved, ok := def.Aliases[name]; ok {
		return resolved
	}
	if name == "" {
		return def.DefaultModel
	}
	return name
}
