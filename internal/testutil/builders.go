package testutil

import (
	"github.com/brendan.keane/notion-blog/internal/config"
)

// ConfigBuilder provides a fluent interface for building test configurations
type ConfigBuilder struct {
	config *config.Config
}

// NewConfigBuilder creates a builder with a valid function configuration
func NewConfigBuilder() *ConfigBuilder {
	cfg := config.NewConfig()
	cfg.Notion.Secret = "secret_test"
	cfg.Notion.DatabaseID = "db-test"
	cfg.Logger.Level = "debug"
	return &ConfigBuilder{config: cfg}
}

// WithNotionBaseURL points the Notion client at a fake server
func (b *ConfigBuilder) WithNotionBaseURL(url string) *ConfigBuilder {
	b.config.Notion.BaseURL = url
	return b
}

// WithEndpoint sets the deployed function endpoint
func (b *ConfigBuilder) WithEndpoint(endpoint string) *ConfigBuilder {
	b.config.Client.Endpoint = endpoint
	return b
}

// WithOutput sets the CLI output format
func (b *ConfigBuilder) WithOutput(format string) *ConfigBuilder {
	b.config.Client.Output = format
	return b
}

// WithAllowedOrigins sets the dev server CORS origins
func (b *ConfigBuilder) WithAllowedOrigins(origins ...string) *ConfigBuilder {
	b.config.Serve.AllowedOrigins = origins
	return b
}

// Build returns the configuration
func (b *ConfigBuilder) Build() *config.Config {
	return b.config
}

// FunctionConfig returns a valid function config pointed at baseURL
func FunctionConfig(baseURL string) *config.Config {
	return NewConfigBuilder().WithNotionBaseURL(baseURL).Build()
}
