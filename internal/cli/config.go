package cli

import (
	"os"

	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// loadConfig returns the configuration placed on the command context by
// the root command, falling back to reading the flags directly.
func loadConfig(cmd *cobra.Command, logger zerolog.Logger) (*config.Config, error) {
	if cfg, ok := config.FromContext(cmd.Context()); ok {
		return cfg, nil
	}

	cfg, err := config.LoadFromFlags(cmd.Flags())
	if err != nil {
		logger.Error().Err(err).Msg("failed to load configuration")
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv reads environment files into the process environment.
// Without arguments it reads .env from the working directory; a missing
// file is not an error. Variables already set are left alone.
func LoadDotEnv(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, errors.ErrorTypeConfig, "failed to load environment file")
	}
	return nil
}
