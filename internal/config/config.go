package config

import (
	"flag"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP server
	BaseURL string `env:"BASE_URL"`

	// Document store
	MongoURI string `env:"MONGODB_URI"`
	MongoDB  string `env:"MONGODB_DB"`

	// Blob store
	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	S3Bucket    string `env:"S3_BUCKET"`
	S3UseSSL    bool   `env:"S3_USE_SSL"`

	// Presigned URL lifetime
	PresignTTLSeconds int `env:"PRESIGN_TTL_SECONDS"`

	// Upload size limit
	UploadMaxMB int `env:"UPLOAD_MAX_MB"`

	// Grow-cycle heuristics for harvest estimation and the watering
	// schedule
	VegDays              int `env:"VEG_DAYS"`
	FloweringDays        int `env:"FLOWERING_DAYS"`
	WateringIntervalDays int `env:"WATERING_INTERVAL_DAYS"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags apply only when the env vars are not set
	flag.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "listen address (host:port)")
	flag.StringVar(&cfg.MongoURI, "d", cfg.MongoURI, "MongoDB connection URI")
	flag.StringVar(&cfg.MongoDB, "db", cfg.MongoDB, "MongoDB database name")
	flag.StringVar(&cfg.S3Endpoint, "s3-endpoint", cfg.S3Endpoint, "S3/MinIO endpoint (host:port)")
	flag.StringVar(&cfg.S3AccessKey, "s3-access-key", cfg.S3AccessKey, "S3 access key")
	flag.StringVar(&cfg.S3SecretKey, "s3-secret-key", cfg.S3SecretKey, "S3 secret key")
	flag.StringVar(&cfg.S3Bucket, "s3-bucket", cfg.S3Bucket, "S3 bucket name")
	flag.BoolVar(&cfg.S3UseSSL, "s3-ssl", cfg.S3UseSSL, "use TLS when talking to S3")
	flag.IntVar(&cfg.PresignTTLSeconds, "presign-ttl", cfg.PresignTTLSeconds, "presigned URL lifetime in seconds")
	flag.IntVar(&cfg.UploadMaxMB, "upload-max-mb", cfg.UploadMaxMB, "maximum upload size in MB")
	flag.IntVar(&cfg.VegDays, "veg-days", cfg.VegDays, "assumed vegetative phase length in days")
	flag.IntVar(&cfg.FloweringDays, "flowering-days", cfg.FloweringDays, "assumed flowering phase length in days")
	flag.IntVar(&cfg.WateringIntervalDays, "watering-interval", cfg.WateringIntervalDays, "days between waterings")

	flag.Parse()

	// Defaults
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = "localhost:8080"
	}
	if cfg.MongoURI == "" {
		cfg.MongoURI = "mongodb://localhost:27017"
	}
	if cfg.MongoDB == "" {
		cfg.MongoDB = "growtracker"
	}
	if cfg.S3Endpoint == "" {
		cfg.S3Endpoint = "localhost:9000"
	}
	if cfg.S3Bucket == "" {
		cfg.S3Bucket = "growtracker"
	}
	if cfg.PresignTTLSeconds <= 0 {
		cfg.PresignTTLSeconds = 3600
	}
	if cfg.UploadMaxMB <= 0 {
		cfg.UploadMaxMB = 25
	}
	if cfg.VegDays <= 0 {
		cfg.VegDays = 28
	}
	if cfg.FloweringDays <= 0 {
		cfg.FloweringDays = 63
	}
	if cfg.WateringIntervalDays <= 0 {
		cfg.WateringIntervalDays = 3
	}

	return cfg
}
