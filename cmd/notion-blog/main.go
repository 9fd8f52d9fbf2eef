// Command notion-blog is the function entry point: it answers API Gateway
// proxy events with posts read from the configured Notion database.
package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/brendan.keane/notion-blog/internal/config"
	"github.com/brendan.keane/notion-blog/internal/errors"
	"github.com/brendan.keane/notion-blog/internal/handler"
	"github.com/brendan.keane/notion-blog/internal/logger"
	"github.com/brendan.keane/notion-blog/internal/notion"
)

func main() {
	cfg := config.LoadFromEnv()
	log := logger.InitLogger(cfg.LoggerSettings())

	if err := cfg.Validate(); err != nil {
		errors.PresentError(err)
	}

	client := notion.NewClient(log, cfg.Notion)
	h := handler.New(log, cfg, client)

	log.Debug().Str("database_id", cfg.Notion.DatabaseID).Msg("function ready")
	lambda.Start(h.Handle)
}
