package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	goshape "github.com/reoring/goshape"
	"github.com/reoring/goshape/i18n"
	"github.com/reoring/goshape/internal/config"
	"github.com/reoring/goshape/internal/logging"
	"github.com/reoring/goshape/internal/metrics"
	"github.com/reoring/goshape/internal/server"
	"github.com/reoring/goshape/internal/shapes"
	"github.com/reoring/goshape/internal/store"
	"github.com/reoring/goshape/shapefile"
)

func main() {
	configPath := flag.String("config", os.Getenv("GOSHAPE_CONFIG"), "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := logging.Init(logging.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		TimeFormat: logging.DefaultConfig().TimeFormat,
	})
	i18n.SetLanguage(cfg.Validation.Language)

	items := store.Tutorial()
	if cfg.Data.ItemsFile != "" {
		if items, err = store.LoadYAML(cfg.Data.ItemsFile); err != nil {
			logger.Fatal().Err(err).Msg("failed to load items")
		}
	}

	set := shapes.Tutorial()
	var extra []shapes.Source
	if cfg.Shapes.File != "" {
		reg, err := shapefile.LoadFile(cfg.Shapes.File)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load shapes")
		}
		extra = append(extra, reg)
	}

	opt := cfg.ParseOpt()
	srv := server.New(cfg.Server.Address, cfg.Server.Mode, server.Deps{
		Mapper:  goshape.NewMapper(opt),
		Shapes:  set,
		Catalog: shapes.NewCatalog(set, extra...),
		Store:   items,
		Metrics: metrics.New(),
		Logger:  logging.WithComponent("http"),
		Opt:     opt,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
	logger.Info().Msg("bye")
}
