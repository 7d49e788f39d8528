package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocab/internal/config"
	"github.com/robalobadob/vocab/internal/daily"
	"github.com/robalobadob/vocab/internal/httpserver"
	"github.com/robalobadob/vocab/internal/store"
	"github.com/robalobadob/vocab/internal/words"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := config.NewCommand(&config.Config{}, run)
	if err := cmd.ExecuteContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	setupLogging(cfg)

	vocab, err := loadVocab(cfg.Vocab)
	if err != nil {
		return err
	}
	if cfg.SuccessAtCount > vocab.Len() {
		log.Warn().Int("successAtCount", cfg.SuccessAtCount).Int("words", vocab.Len()).
			Msg("success count exceeds vocabulary; clamping")
	}
	log.Info().Int("words", vocab.Len()).Str("source", cfg.Vocab).Msg("vocabulary loaded")

	var results *daily.Store
	if cfg.DB != "" {
		db, err := daily.OpenDB(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close()
		results = daily.NewStore(db)
	}

	sessions := store.NewMemoryStore(cfg.SessionTTL)
	go sessions.Run(ctx, time.Minute)

	srv := httpserver.New(httpserver.Config{
		Vocab:         vocab,
		Store:         sessions,
		Results:       results,
		SuccessAt:     cfg.SuccessAtCount,
		Seed:          cfg.SeedValue(),
		DailySalt:     cfg.DailySalt,
		Secret:        cfg.SecretKey,
		ClientOrigin:  cfg.ClientOrigin,
		SecureCookies: cfg.SecureCookies,
	})
	log.Info().Str("addr", cfg.Addr()).Str("version", config.ReleaseVersion).Msg("starting vocab server")
	return srv.Start(ctx, cfg.Addr())
}

func setupLogging(cfg *config.Config) {
	if cfg.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		return
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
}

func loadVocab(path string) (*words.Vocab, error) {
	if path == "" {
		return words.Default()
	}
	return words.LoadFile(path)
}
