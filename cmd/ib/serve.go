package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/issueboard/internal/cache"
	"github.com/alfredjeanlab/issueboard/internal/config"
	"github.com/alfredjeanlab/issueboard/internal/events"
	"github.com/alfredjeanlab/issueboard/internal/server"
	"github.com/alfredjeanlab/issueboard/internal/store/postgres"
	issuesync "github.com/alfredjeanlab/issueboard/internal/sync"
)

// syncDestinations builds the export targets enabled in cfg. A destination
// that fails to initialise is logged and skipped.
func syncDestinations(ctx context.Context, cfg *config.Config, logger *slog.Logger) []issuesync.Destination {
	var dests []issuesync.Destination
	if cfg.SyncS3Bucket != "" {
		d, err := issuesync.NewS3Destination(ctx, issuesync.S3Options{
			Bucket:   cfg.SyncS3Bucket,
			Key:      cfg.SyncS3Key,
			Region:   cfg.SyncS3Region,
			Endpoint: cfg.SyncS3Endpoint,
		})
		if err != nil {
			logger.Error("failed to create S3 sync destination", "err", err)
		} else {
			dests = append(dests, d)
			logger.Info("sync S3 destination enabled", "bucket", cfg.SyncS3Bucket, "key", cfg.SyncS3Key)
		}
	}
	if cfg.SyncGitRepo != "" {
		dests = append(dests, issuesync.NewGitDestination(cfg.SyncGitRepo, cfg.SyncGitFile, cfg.SyncGitBranch))
		logger.Info("sync git destination enabled", "repo", cfg.SyncGitRepo, "file", cfg.SyncGitFile)
	}
	return dests
}

var serveCmd = &cobra.Command{
	Use:               "serve",
	Short:             "Start the issue server",
	GroupID:           "system",
	Args:              cobra.NoArgs,
	PersistentPreRunE: skipClient,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		slog.SetDefault(logger)
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error("error closing store", "err", err)
			}
		}()

		var publisher events.Publisher = events.NoopPublisher{}
		if cfg.NATSURL != "" {
			pub, err := events.NewNATSPublisher(cfg.NATSURL)
			if err != nil {
				return err
			}
			publisher = pub
			logger.Info("events enabled", "nats_url", cfg.NATSURL)
		} else {
			logger.Info("events disabled (ISSUEBOARD_NATS_URL not set)")
		}
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("error closing publisher", "err", err)
			}
		}()

		var summaryCache cache.Cache = cache.NoopCache{}
		if cfg.RedisURL != "" {
			rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, "issueboard", cfg.SummaryTTL)
			if err != nil {
				logger.Warn("summary cache disabled", "err", err)
			} else {
				summaryCache = rc
				logger.Info("summary cache enabled", "ttl", cfg.SummaryTTL)
			}
		}
		defer summaryCache.Close()

		issueServer := server.NewIssueServer(store, publisher, summaryCache)

		var grpcStop func()
		if cfg.GRPCAddr != "" {
			grpcServer, healthServer := server.NewGRPCServer(cfg.AuthToken)
			lis, err := net.Listen("tcp", cfg.GRPCAddr)
			if err != nil {
				return err
			}
			go func() {
				logger.Info("gRPC server listening", "addr", cfg.GRPCAddr)
				if err := grpcServer.Serve(lis); err != nil {
					logger.Error("gRPC server error", "err", err)
				}
			}()
			grpcStop = func() {
				healthServer.Shutdown()
				grpcServer.GracefulStop()
				logger.Info("gRPC server stopped")
			}
		}

		httpServer := &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           issueServer.NewHTTPHandler(cfg.AuthToken),
			ReadHeaderTimeout: 10 * time.Second,
		}
		httpErr := make(chan error, 1)
		go func() {
			logger.Info("HTTP server listening", "addr", cfg.HTTPAddr)
			if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				httpErr <- err
			}
		}()

		var scheduler *issuesync.Scheduler
		if cfg.SyncInterval > 0 {
			if dests := syncDestinations(ctx, cfg, logger); len(dests) > 0 {
				scheduler = issuesync.NewScheduler(store, dests, cfg.SyncInterval, logger)
				scheduler.Start()
				logger.Info("sync scheduler started", "interval", cfg.SyncInterval)
			}
		}

		logger.Info("issueboard server started",
			"grpc_addr", cfg.GRPCAddr,
			"http_addr", cfg.HTTPAddr,
			"auth", cfg.AuthToken != "",
		)

		var runErr error
		select {
		case <-ctx.Done():
			logger.Info("received signal, shutting down")
		case runErr = <-httpErr:
			logger.Error("HTTP server error", "err", runErr)
		}

		if scheduler != nil {
			scheduler.Stop()
			logger.Info("sync scheduler stopped")
		}
		if grpcStop != nil {
			grpcStop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "err", err)
		}
		logger.Info("HTTP server stopped")

		logger.Info("shutdown complete")
		return runErr
	},
}
