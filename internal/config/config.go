package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Upload storage backends.
const (
	UploadBackendLocal = "local"
	UploadBackendS3    = "s3"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, upload storage,
// the remote validator, PDF rendering, API authentication and graceful
// shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout bounds the operational routes; uploads are not cut short
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"1m" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MaxUploadBytes caps the size of a multipart request body
		MaxUploadBytes int64 `env:"HTTP_MAX_UPLOAD_BYTES" env-default:"33554432" yaml:"maxUploadBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
	} `yaml:"http"`

	// Upload configures where received files are persisted
	Upload struct {
		// Backend is either "local" or "s3"
		Backend string `env:"UPLOAD_BACKEND" env-default:"local" yaml:"backend"`
		// Dir is the local upload directory, created on first use
		Dir string `env:"UPLOAD_DIR" env-default:"upload" yaml:"dir"`

		S3 struct {
			Bucket    string `env:"UPLOAD_S3_BUCKET" yaml:"bucket"`
			Region    string `env:"UPLOAD_S3_REGION" env-default:"us-east-1" yaml:"region"`
			Endpoint  string `env:"UPLOAD_S3_ENDPOINT" yaml:"endpoint"`
			AccessKey string `env:"UPLOAD_S3_ACCESS_KEY" yaml:"accessKey"`
			SecretKey string `env:"UPLOAD_S3_SECRET_KEY" yaml:"secretKey"`
			UseSSL    bool   `env:"UPLOAD_S3_USE_SSL" env-default:"true" yaml:"useSSL"`
			// Prefix is prepended to every object key
			Prefix string `env:"UPLOAD_S3_PREFIX" env-default:"upload" yaml:"prefix"`
		} `yaml:"s3"`
	} `yaml:"upload"`

	// Datavalid configures the remote identity validator
	Datavalid struct {
		// URL of the facial QR code validation endpoint; empty means the demonstration gateway
		URL string `env:"DATAVALID_URL" yaml:"url"`
		// Token is the static bearer token; empty means the demonstration token
		Token string `env:"DATAVALID_TOKEN" yaml:"token"`
		// Timeout of the outbound call; zero leaves the transport default in place
		Timeout time.Duration `env:"DATAVALID_TIMEOUT" env-default:"0s" yaml:"timeout"`
	} `yaml:"datavalid"`

	// PDF configures page rendering
	PDF struct {
		// DPI used to rasterize pages; 72 maps one point to one pixel
		DPI float64 `env:"PDF_DPI" env-default:"72" yaml:"dpi"`
	} `yaml:"pdf"`

	// JWT holds the RS256 key pair; an empty PublicKey disables authentication
	JWT struct {
		PublicKey  string `env:"JWT_PUBLIC_KEY" yaml:"publicKey"`
		PrivateKey string `env:"JWT_PRIVATE_KEY" yaml:"privateKey"`
	} `yaml:"jwt"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	switch cfg.Upload.Backend {
	case UploadBackendLocal, UploadBackendS3:
	default:
		return nil, fmt.Errorf("unknown upload backend %q", cfg.Upload.Backend)
	}

	return &cfg, nil
}
