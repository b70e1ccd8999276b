package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/weberbot/weber/internal/config"
	"github.com/weberbot/weber/internal/dispatch"
	"github.com/weberbot/weber/internal/fulfillment"
	"github.com/weberbot/weber/internal/logging"
	"github.com/weberbot/weber/internal/messenger"
	"github.com/weberbot/weber/internal/nlu"
	"github.com/weberbot/weber/internal/router"
	"github.com/weberbot/weber/internal/search"
	"github.com/weberbot/weber/internal/server"
	"github.com/weberbot/weber/internal/weather"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the webhook bridge",
	Long:  `Starts the HTTP server that receives Messenger webhook events and fulfillment queries and replies through the Send API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}

		log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer log.Sync()

		timeout := time.Duration(cfg.RequestTimeout) * time.Second

		// Outbound clients.
		sendClient := messenger.NewClient(cfg.GraphAPIURL, cfg.PageAccessToken, timeout)
		searchClient := search.New(cfg.Search.BaseURL, cfg.Search.Token, timeout)
		weatherClient := weather.New(cfg.Weather.BaseURL, cfg.Weather.APIKey, timeout)
		nluClient := nlu.New(cfg.NLU.BaseURL, cfg.NLU.Token, timeout)

		// Delivery pool.
		pool := dispatch.NewPool(sendClient,
			cfg.Dispatch.Workers, cfg.Dispatch.QueueSize, cfg.Dispatch.MaxAttempts,
			log.Named("dispatch"))
		pool.Start()

		// Routing.
		rt := router.New(searchClient, weatherClient, nluClient, cfg.Bot.HelpStyle,
			log.Named("router"))
		bot := router.NewBot(rt, pool, log.Named("bot"))

		// HTTP surface.
		srv := server.New(server.Config{
			ListenAddr: cfg.ListenAddr,
			AllowAll:   cfg.AllowAllOrigins,
		}, log.Named("server"))

		r := srv.Router()
		messenger.RegisterRoutes(r, messenger.NewWebhookHandler(cfg.VerifyToken, bot, log.Named("webhook")))
		fulfillment.RegisterRoutes(r, fulfillment.NewHandler(rt, log.Named("fulfillment")))

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			log.Info("shutting down")

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Warn("server shutdown", zap.Error(err))
			}
			if err := pool.Shutdown(shutdownCtx); err != nil {
				log.Warn("dispatch pool shutdown", zap.Error(err))
			}
		}()

		log.Info("weber starting", zap.String("version", Version))
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
