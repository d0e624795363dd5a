// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string        // ISSUEBOARD_DATABASE_URL (required)
	HTTPAddr    string        // ISSUEBOARD_HTTP_ADDR (default ":8080")
	GRPCAddr    string        // ISSUEBOARD_GRPC_ADDR (default ":9090"; empty = disabled)
	NATSURL     string        // ISSUEBOARD_NATS_URL (optional, empty = no events)
	RedisURL    string        // ISSUEBOARD_REDIS_URL (optional, empty = no summary cache)
	SummaryTTL  time.Duration // ISSUEBOARD_SUMMARY_TTL (default 30s)
	AuthToken   string        // ISSUEBOARD_AUTH_TOKEN (optional, empty = auth disabled)

	// Export settings
	SyncInterval   time.Duration // ISSUEBOARD_SYNC_INTERVAL (default 3m; 0 = disabled)
	SyncS3Bucket   string        // ISSUEBOARD_SYNC_S3_BUCKET (enables S3 when set)
	SyncS3Endpoint string        // ISSUEBOARD_SYNC_S3_ENDPOINT (custom endpoint for MinIO)
	SyncS3Region   string        // ISSUEBOARD_SYNC_S3_REGION (default "us-east-1")
	SyncS3Key      string        // ISSUEBOARD_SYNC_S3_KEY (default "issueboard/issues.jsonl")
	SyncGitRepo    string        // ISSUEBOARD_SYNC_GIT_REPO (enables git when set; path to clone)
	SyncGitFile    string        // ISSUEBOARD_SYNC_GIT_FILE (default "issues.jsonl")
	SyncGitBranch  string        // ISSUEBOARD_SYNC_GIT_BRANCH (default "main")
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:    os.Getenv("ISSUEBOARD_DATABASE_URL"),
		HTTPAddr:       envOrDefault("ISSUEBOARD_HTTP_ADDR", ":8080"),
		GRPCAddr:       envOrDefault("ISSUEBOARD_GRPC_ADDR", ":9090"),
		NATSURL:        os.Getenv("ISSUEBOARD_NATS_URL"),
		RedisURL:       os.Getenv("ISSUEBOARD_REDIS_URL"),
		AuthToken:      os.Getenv("ISSUEBOARD_AUTH_TOKEN"),
		SyncS3Bucket:   os.Getenv("ISSUEBOARD_SYNC_S3_BUCKET"),
		SyncS3Endpoint: os.Getenv("ISSUEBOARD_SYNC_S3_ENDPOINT"),
		SyncS3Region:   envOrDefault("ISSUEBOARD_SYNC_S3_REGION", "us-east-1"),
		SyncS3Key:      envOrDefault("ISSUEBOARD_SYNC_S3_KEY", "issueboard/issues.jsonl"),
		SyncGitRepo:    os.Getenv("ISSUEBOARD_SYNC_GIT_REPO"),
		SyncGitFile:    envOrDefault("ISSUEBOARD_SYNC_GIT_FILE", "issues.jsonl"),
		SyncGitBranch:  envOrDefault("ISSUEBOARD_SYNC_GIT_BRANCH", "main"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("ISSUEBOARD_DATABASE_URL is required")
	}

	var err error
	if c.SummaryTTL, err = durationEnv("ISSUEBOARD_SUMMARY_TTL", "30s"); err != nil {
		return nil, err
	}
	if c.SyncInterval, err = durationEnv("ISSUEBOARD_SYNC_INTERVAL", "3m"); err != nil {
		return nil, err
	}
	return c, nil
}

func durationEnv(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
