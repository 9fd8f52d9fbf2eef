package main

import (
	"fmt"
	"os"

	"github.com/brendan.keane/notion-blog/internal/cli"
	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", errors.UserMessage(err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "blogctl",
		Short: "Run and query the Notion blog function",
		Long: `blogctl serves the Notion blog function locally and reads posts from a
deployed copy of it, over HTTP or by invoking the Lambda directly.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringP("endpoint", "e", "", "Function endpoint (http(s):// URL or lambda://function-name)")
	flags.Bool("sig-v4", false, "Sign requests with AWS SigV4")
	flags.String("sig-v4-service", config.DefaultSigV4Service, "AWS service name for SigV4 signing")
	flags.BoolP("verbose", "v", false, "Verbose logging")
	flags.Bool("debug", false, "Debug logging")

	completer := cli.NewCompleter()

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the function over HTTP",
		Long: `Serve the function at the Netlify function path, with /health and
/openapi.yaml alongside it. Reads NOTION_SECRET and NOTION_DATABASE_ID from
the environment or a .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewServeHandler(commandLogger(cmd)).Execute(cmd, args)
		},
	}
	serveCmd.Flags().String("addr", config.DefaultServeAddr, "Listen address")
	serveCmd.Flags().StringSlice("allow-origin", nil, "Allowed CORS origin (can be used multiple times)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List published posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewListHandler(commandLogger(cmd)).Execute(cmd, args)
		},
	}
	listCmd.Flags().StringP("category", "c", "", "Only list posts in this category")
	listCmd.Flags().StringP("output", "o", cli.FormatTable, "Output format (table, json, yaml)")
	listCmd.RegisterFlagCompletionFunc("category", completer.Categories)
	listCmd.RegisterFlagCompletionFunc("output", formatCompletion(cli.FormatTable, cli.FormatJSON, cli.FormatYAML))

	getCmd := &cobra.Command{
		Use:               "get <slug>",
		Short:             "Show one published post",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completer.Slugs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewGetHandler(commandLogger(cmd)).Execute(cmd, args)
		},
	}
	getCmd.Flags().StringP("output", "o", cli.FormatDetail, "Output format (detail, json, yaml)")
	getCmd.RegisterFlagCompletionFunc("output", formatCompletion(cli.FormatDetail, cli.FormatJSON, cli.FormatYAML))

	docsCmd := &cobra.Command{
		Use:   "docs",
		Short: "Show the function's API description",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewDocsHandler(commandLogger(cmd)).Execute(cmd, args)
		},
	}
	docsCmd.Flags().Bool("raw", false, "Print the OpenAPI YAML instead of rendering it")

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the blog as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.NewMCPHandler(commandLogger(cmd)).Execute(cmd, args)
		},
	}
	mcpCmd.Flags().String("mcp-desc", "", "Instructions sent to MCP clients")

	rootCmd.AddCommand(serveCmd, listCmd, getCmd, docsCmd, mcpCmd, generateCompletionCmd())
	return rootCmd
}

// setup loads .env and configuration once per invocation and carries the
// configured logger and config on the command context
func setup(cmd *cobra.Command, args []string) error {
	if err := cli.LoadDotEnv(); err != nil {
		return err
	}

	cfg, err := config.LoadFromFlags(cmd.Flags())
	if err != nil {
		return err
	}

	log := logger.InitLogger(cfg.LoggerSettings())
	ctx := config.WithConfig(cmd.Context(), cfg)
	cmd.SetContext(log.WithContext(ctx))
	return nil
}

func commandLogger(cmd *cobra.Command) zerolog.Logger {
	return *zerolog.Ctx(cmd.Context())
}

func formatCompletion(formats ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return formats, cobra.ShellCompDirectiveNoFileComp
	}
}

func generateCompletionCmd() *cobra.Command {
	completionCmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate completion script",
		Long: `To load completions:

Bash:

  # Load for current session:
  $ source <(blogctl completion bash)

  # Load for all sessions (add to ~/.bashrc):
  $ echo 'source <(blogctl completion bash)' >> ~/.bashrc

Zsh:

  # Load for current session:
  $ source <(blogctl completion zsh)

  # Load for all sessions (add to ~/.zshrc):
  $ echo 'source <(blogctl completion zsh)' >> ~/.zshrc

Fish:

  $ blogctl completion fish > ~/.config/fish/completions/blogctl.fish

PowerShell:

  PS> blogctl completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		PersistentPreRunE:     func(cmd *cobra.Command, args []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}

	return completionCmd
}
