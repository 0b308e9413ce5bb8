// Package main runs the balance assistant: the Telegram poller plus the
// operational HTTP server.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/infinity-otc/balancebot/internal/httpserver"
	"github.com/infinity-otc/balancebot/internal/ledgerservice"
	"github.com/infinity-otc/balancebot/internal/middleware"
	"github.com/infinity-otc/balancebot/internal/reconcile"
	"github.com/infinity-otc/balancebot/internal/router"
	"github.com/infinity-otc/balancebot/internal/telegram"
	"github.com/infinity-otc/balancebot/internal/userprefixrepo"
	"github.com/infinity-otc/balancebot/internal/vision"
	"github.com/infinity-otc/balancebot/pkg/configpkg"
	"github.com/infinity-otc/balancebot/pkg/dbpkg"

	_ "github.com/lib/pq"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	db, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to database")
	}

	registry := userprefixrepo.NewRepoPGS(db)
	balances := ledgerservice.New()
	engine, err := reconcile.NewFromConfig(config)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid tolerance configuration")
	}

	visionClient := vision.NewOpenAIClient(config.VisionBaseURL, config.VisionAPIKey, config.VisionModel, config.ExtractionTimeout)
	extractor := vision.NewExtractor(visionClient)

	tgClient := telegram.NewClient(config.TelegramBotToken)

	bot := router.New(config, balances, extractor, registry, tgClient, tgClient, engine, logger)
	poller := telegram.NewPoller(tgClient, bot, logger)

	server, err := httpserver.New(db, balances, registry, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	go func() {
		if err := server.Engine.Run(config.ServerAddress); err != nil {
			logger.Fatal().Err(err).Msg("cannot start server")
		}
	}()

	logger.Info().Msg("BALANCE BOT HAS STARTED")

	if err := poller.Run(logger.WithContext(context.Background())); err != nil {
		logger.Fatal().Err(err).Msg("poller stopped")
	}
}
