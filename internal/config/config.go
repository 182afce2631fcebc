package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	DatabaseURL string // PROCMAP_DATABASE_URL (required)
	HTTPAddr    string // PROCMAP_HTTP_ADDR (default ":8080")
	NATSURL     string // PROCMAP_NATS_URL (optional, empty = no events)
	AuthToken   string // PROCMAP_AUTH_TOKEN (optional, empty = auth disabled)

	// Snapshot settings
	SnapshotInterval   time.Duration // PROCMAP_SNAPSHOT_INTERVAL (default 0 = disabled)
	SnapshotS3Bucket   string        // PROCMAP_SNAPSHOT_S3_BUCKET (enables S3 when set)
	SnapshotS3Endpoint string        // PROCMAP_SNAPSHOT_S3_ENDPOINT (custom endpoint for MinIO)
	SnapshotS3Region   string        // PROCMAP_SNAPSHOT_S3_REGION (default "us-east-1")
	SnapshotS3Key      string        // PROCMAP_SNAPSHOT_S3_KEY (default "procmap/snapshot.jsonl")
	SnapshotFile       string        // PROCMAP_SNAPSHOT_FILE (enables local file when set)
}

func Load() (*Config, error) {
	c := &Config{
		DatabaseURL:        os.Getenv("PROCMAP_DATABASE_URL"),
		HTTPAddr:           envOrDefault("PROCMAP_HTTP_ADDR", ":8080"),
		NATSURL:            os.Getenv("PROCMAP_NATS_URL"),
		AuthToken:          os.Getenv("PROCMAP_AUTH_TOKEN"),
		SnapshotS3Bucket:   os.Getenv("PROCMAP_SNAPSHOT_S3_BUCKET"),
		SnapshotS3Endpoint: os.Getenv("PROCMAP_SNAPSHOT_S3_ENDPOINT"),
		SnapshotS3Region:   envOrDefault("PROCMAP_SNAPSHOT_S3_REGION", "us-east-1"),
		SnapshotS3Key:      envOrDefault("PROCMAP_SNAPSHOT_S3_KEY", "procmap/snapshot.jsonl"),
		SnapshotFile:       os.Getenv("PROCMAP_SNAPSHOT_FILE"),
	}
	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("PROCMAP_DATABASE_URL is required")
	}

	if intervalStr := os.Getenv("PROCMAP_SNAPSHOT_INTERVAL"); intervalStr != "" {
		d, err := time.ParseDuration(intervalStr)
		if err != nil {
			return nil, fmt.Errorf("PROCMAP_SNAPSHOT_INTERVAL: %w", err)
		}
		c.SnapshotInterval = d
	}

	return c, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
