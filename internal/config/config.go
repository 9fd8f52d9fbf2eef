package config

import (
	"context"
	"net/url"
	"os"
	"strings"

	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/logger"
	"github.com/spf13/pflag"
)

const (
	DefaultNotionBaseURL = "https://api.notion.com/v1"
	DefaultServeAddr     = ":8888"
	DefaultFunctionPath  = "/.netlify/functions/notion-blog"
	DefaultSigV4Service  = "lambda"
)

// Config holds all application configuration
type Config struct {
	Notion NotionConfig
	Logger LoggerConfig
	Serve  ServeConfig
	Client ClientConfig
	MCP    MCPConfig
}

// NotionConfig holds the upstream database settings
type NotionConfig struct {
	Secret     string
	DatabaseID string
	BaseURL    string
}

// LoggerConfig holds logging settings
type LoggerConfig struct {
	Level      string
	Pretty     bool
	WithCaller bool
}

// ServeConfig holds the local dev server settings
type ServeConfig struct {
	Addr           string
	FunctionPath   string
	AllowedOrigins []string
}

// ClientConfig holds settings for calling a deployed function
type ClientConfig struct {
	Endpoint     string // https://... or lambda://function-name
	SigV4Enabled bool
	SigV4Service string
	Output       string
	Verbose      bool
}

// MCPConfig holds MCP-specific configuration
type MCPConfig struct {
	Description string
}

// contextKey is a custom type for context keys
type contextKey string

// configKey is the context key for storing config
const configKey contextKey = "config"

// WithConfig adds config to context
func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from context
func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(configKey).(*Config)
	return cfg, ok
}

// NewConfig creates a Config with default values
func NewConfig() *Config {
	return &Config{
		Notion: NotionConfig{
			BaseURL: DefaultNotionBaseURL,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Pretty: false,
		},
		Serve: ServeConfig{
			Addr:           DefaultServeAddr,
			FunctionPath:   DefaultFunctionPath,
			AllowedOrigins: []string{"*"},
		},
		Client: ClientConfig{
			SigV4Service: DefaultSigV4Service,
			Output:       "table",
		},
	}
}

// LoadFromEnv creates a Config from the process environment. It is called
// once at process start; nothing reads the environment afterwards.
func LoadFromEnv() *Config {
	cfg := NewConfig()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	c.Notion.Secret = os.Getenv("NOTION_SECRET")
	c.Notion.DatabaseID = os.Getenv("NOTION_DATABASE_ID")
	if base := os.Getenv("NOTION_API_BASE"); base != "" {
		c.Notion.BaseURL = strings.TrimSuffix(base, "/")
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Logger.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		c.Logger.Pretty = strings.EqualFold(format, "pretty")
	}

	if endpoint := os.Getenv("BLOG_ENDPOINT"); endpoint != "" {
		c.Client.Endpoint = endpoint
	}
	if addr := os.Getenv("BLOG_ADDR"); addr != "" {
		c.Serve.Addr = addr
	}
	if origins := os.Getenv("BLOG_ALLOWED_ORIGINS"); origins != "" {
		c.Serve.AllowedOrigins = splitList(origins)
	}
	if desc := os.Getenv("BLOG_MCP_DESCRIPTION"); desc != "" {
		c.MCP.Description = desc
	}
}

// LoadFromFlags creates a Config from the environment, then applies any
// flags that were explicitly set on the command line.
func LoadFromFlags(flags *pflag.FlagSet) (*Config, error) {
	cfg := LoadFromEnv()

	var err error

	if flags.Changed("endpoint") {
		if cfg.Client.Endpoint, err = flags.GetString("endpoint"); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get endpoint flag")
		}
	}

	if cfg.Client.SigV4Enabled, err = flags.GetBool("sig-v4"); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get sig-v4 flag")
	}

	if flags.Changed("sig-v4-service") {
		if cfg.Client.SigV4Service, err = flags.GetString("sig-v4-service"); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get sig-v4-service flag")
		}
	}

	if cfg.Client.Verbose, err = flags.GetBool("verbose"); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get verbose flag")
	}

	debug, err := flags.GetBool("debug")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get debug flag")
	}

	cfg.Logger.Pretty = true
	switch {
	case debug:
		cfg.Logger.Level = "debug"
		cfg.Logger.WithCaller = true
	case cfg.Client.Verbose:
		cfg.Logger.Level = "info"
	default:
		cfg.Logger.Level = "warn"
	}

	// Command-local flags; absent on commands that do not define them
	if f := flags.Lookup("output"); f != nil && f.Changed {
		cfg.Client.Output = strings.ToLower(f.Value.String())
	}
	if f := flags.Lookup("addr"); f != nil && f.Changed {
		cfg.Serve.Addr = f.Value.String()
	}
	if f := flags.Lookup("allow-origin"); f != nil && f.Changed {
		if cfg.Serve.AllowedOrigins, err = flags.GetStringSlice("allow-origin"); err != nil {
			return nil, errors.Wrap(err, errors.ErrorTypeConfig, "failed to get allow-origin flag")
		}
	}
	if f := flags.Lookup("mcp-desc"); f != nil && f.Changed {
		cfg.MCP.Description = f.Value.String()
	}

	return cfg, nil
}

// LoggerSettings converts the logging section into logger.Config
func (c *Config) LoggerSettings() *logger.Config {
	lc := logger.DefaultConfig()
	lc.Level = c.Logger.Level
	lc.WithCaller = c.Logger.WithCaller
	if c.Logger.Pretty {
		lc.Format = "pretty"
	}
	return lc
}

// Validate ensures the function configuration is usable
func (c *Config) Validate() error {
	if c.Notion.Secret == "" {
		return errors.New(errors.ErrorTypeConfig, "NOTION_SECRET is required").
			WithContext("config_type", "notion").
			WithContext("suggestion", "set NOTION_SECRET to the integration token")
	}

	if c.Notion.DatabaseID == "" {
		return errors.New(errors.ErrorTypeConfig, "NOTION_DATABASE_ID is required").
			WithContext("config_type", "notion").
			WithContext("suggestion", "set NOTION_DATABASE_ID to the blog database ID")
	}

	parsed, err := url.Parse(c.Notion.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New(errors.ErrorTypeConfig, "invalid Notion API base URL").
			WithContext("config_type", "notion").
			WithContext("base_url", c.Notion.BaseURL)
	}

	return nil
}

// ValidateClient ensures the remote client configuration is usable
func (c *Config) ValidateClient() error {
	if c.Client.Endpoint == "" {
		return errors.New(errors.ErrorTypeConfig, "function endpoint is required").
			WithContext("config_type", "client").
			WithContext("suggestion", "use --endpoint or set BLOG_ENDPOINT")
	}

	parsed, err := url.Parse(c.Client.Endpoint)
	if err != nil {
		return errors.Wrap(err, errors.ErrorTypeValidation, "invalid endpoint").
			WithContext("field", "endpoint")
	}

	switch parsed.Scheme {
	case "http", "https", "lambda":
	default:
		return errors.New(errors.ErrorTypeValidation, "endpoint must be an http, https or lambda URL").
			WithContext("field", "endpoint").
			WithContext("endpoint", c.Client.Endpoint)
	}

	if parsed.Host == "" {
		return errors.New(errors.ErrorTypeValidation, "endpoint is missing a host").
			WithContext("field", "endpoint").
			WithContext("endpoint", c.Client.Endpoint)
	}

	switch c.Client.Output {
	case "", "table", "detail", "json", "yaml":
	default:
		return errors.New(errors.ErrorTypeValidation, "unsupported output format").
			WithContext("field", "output").
			WithContext("valid_formats", []string{"table", "detail", "json", "yaml"})
	}

	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
