package config

import (
	"flag"
	"os"
	"testing"
)

// resetFlagSet creates a fresh FlagSet before each NewConfig call, so the
// same flags are not registered twice across tests.
func resetFlagSet(t *testing.T) {
	t.Helper()
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flag.CommandLine.SetOutput(os.Stderr)
}

func TestNewConfig_DefaultsWhenEnvEmpty(t *testing.T) {
	t.Setenv("BASE_URL", "")
	t.Setenv("MONGODB_URI", "")
	t.Setenv("MONGODB_DB", "")
	t.Setenv("S3_ENDPOINT", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("PRESIGN_TTL_SECONDS", "")
	t.Setenv("VEG_DAYS", "")
	t.Setenv("FLOWERING_DAYS", "")
	t.Setenv("WATERING_INTERVAL_DAYS", "")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8080" {
		t.Fatalf("BaseURL default expected 'localhost:8080', got %q", cfg.BaseURL)
	}
	if cfg.MongoURI != "mongodb://localhost:27017" {
		t.Fatalf("MongoURI default expected local mongo, got %q", cfg.MongoURI)
	}
	if cfg.MongoDB != "growtracker" {
		t.Fatalf("MongoDB default expected 'growtracker', got %q", cfg.MongoDB)
	}
	if cfg.S3Endpoint != "localhost:9000" || cfg.S3Bucket != "growtracker" {
		t.Fatalf("S3 defaults wrong: endpoint=%q bucket=%q", cfg.S3Endpoint, cfg.S3Bucket)
	}
	if cfg.PresignTTLSeconds != 3600 {
		t.Fatalf("PresignTTLSeconds default expected 3600, got %d", cfg.PresignTTLSeconds)
	}
	if cfg.VegDays != 28 || cfg.FloweringDays != 63 || cfg.WateringIntervalDays != 3 {
		t.Fatalf("grow-cycle defaults wrong: %d/%d/%d", cfg.VegDays, cfg.FloweringDays, cfg.WateringIntervalDays)
	}
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BASE_URL", "0.0.0.0:3000")
	t.Setenv("MONGODB_URI", "mongodb://user:pass@db:27017")
	t.Setenv("MONGODB_DB", "grow_test")
	t.Setenv("S3_ENDPOINT", "minio:9000")
	t.Setenv("S3_BUCKET", "photos")
	t.Setenv("S3_USE_SSL", "true")
	t.Setenv("FLOWERING_DAYS", "56")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "0.0.0.0:3000" {
		t.Fatalf("BaseURL expected from env, got %q", cfg.BaseURL)
	}
	if cfg.MongoURI != "mongodb://user:pass@db:27017" || cfg.MongoDB != "grow_test" {
		t.Fatalf("mongo settings not taken from env: %q %q", cfg.MongoURI, cfg.MongoDB)
	}
	if cfg.S3Endpoint != "minio:9000" || cfg.S3Bucket != "photos" || !cfg.S3UseSSL {
		t.Fatalf("s3 settings not taken from env")
	}
	if cfg.FloweringDays != 56 {
		t.Fatalf("FloweringDays expected 56, got %d", cfg.FloweringDays)
	}
}

func TestNewConfig_InvalidBaseURLFallback(t *testing.T) {
	// a BASE_URL with a scheme must fall back to the default
	t.Setenv("BASE_URL", "http://bad:8080")

	resetFlagSet(t)
	cfg := NewConfig()

	if cfg.BaseURL != "localhost:8080" {
		t.Fatalf("invalid BASE_URL must fall back to 'localhost:8080', got %q", cfg.BaseURL)
	}
}
