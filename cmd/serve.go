package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	config "teamops.com/teamops/internal/configs"
	httpapi "teamops.com/teamops/internal/http"
	"teamops.com/teamops/internal/presence"
	repository "teamops.com/teamops/internal/repositories"
	"teamops.com/teamops/internal/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts the team operations HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(); err != nil {
			lgr.Printf("[INFO] .env file not found, using environment variables")
		}

		cfg := config.Load()
		setupLogger(cfg.Debug)

		db := config.New(cfg.DatabaseDSN)
		taskRepo := repository.NewTaskRepository(db)
		userRepo := repository.NewUserRepository(db)

		redisClient := config.NewRedisClient(cfg.RedisAddr)
		defer redisClient.Close()
		tracker := presence.NewTracker(redisClient, time.Duration(cfg.PresenceTTLSeconds)*time.Second)

		lifecycle := services.NewLifecycleService(taskRepo, userRepo)
		votes := services.NewVoteService(taskRepo)
		leaderboard := services.NewLeaderboardService(taskRepo, userRepo)

		e := echo.New()
		e.HideBanner = true

		handler := httpapi.NewHandler(lifecycle, votes, leaderboard, userRepo, tracker)
		httpapi.Register(e, handler, userRepo, tracker, cfg.RateLimit)

		go func() {
			lgr.Printf("[INFO] HTTP server listening on %s", cfg.AppURL)
			if err := e.Start(cfg.AppURL); err != nil {
				lgr.Printf("[INFO] server stopped: %v", err)
			}
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		ctx, cancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second,
		)
		defer cancel()

		_ = e.Shutdown(ctx)

		lgr.Printf("[INFO] HTTP server shut down gracefully")
		return nil
	},
}

func setupLogger(debug bool) {
	opts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if debug {
		opts = append(opts, lgr.Debug, lgr.CallerFile, lgr.CallerFunc)
	}
	lgr.Setup(opts...)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
