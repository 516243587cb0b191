// Package config loads the agent/provider settings and YAML file-discovery
// cascade surrounding the pipeline engine — configuration file loading is
// named an external collaborator in spec.md §1, specified here as ambient
// glue following the teacher's and the pack's conventions.
package config

// AgentConfig is the per-agent section of an orchestra config file: the
// model/provider an agent node should use absent a more specific override,
// plus an optional prompt template beyond the core $goal expansion.
type AgentConfig struct {
	Name           string `yaml:"name"`
	Model          string `yaml:"model"`
	Provider       string `yaml:"provider"`
	PromptTemplate string `yaml:"prompt_template"`
}

// ProviderDefault is one provider's default model and alias table.
type ProviderDefault struct {
	DefaultModel string            `yaml:"default_model"`
	Aliases      map[string]string `yaml:"aliases"`
}

// ProvidersConfig holds the default provider name and per-provider model
// defaults/aliases.
type ProvidersConfig struct {
	DefaultProvider string                     `yaml:"default_provider"`
	Providers       map[string]ProviderDefault `yaml:"providers"`
}

// OrchestraConfig is the top-level shape of an orchestra.yaml config file.
type OrchestraConfig struct {
	Agents    []AgentConfig   `yaml:"agents"`
	Providers ProvidersConfig `yaml:"providers"`
}

// AgentByName returns the AgentConfig with the given name, or nil if none
// matches.
func (c OrchestraConfig) AgentByName(name string) *AgentConfig {
	for i := range c.Agents {
		if c.Agents[i].Name == name {
			return &c.Agents[i]
		}
	}
	return nil
}
