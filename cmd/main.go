// Package main provides the CLI entrypoint for the QR validation service.
// It wires subcommands (serve, decode, jwt), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"qrvalidator/internal/config"
	"qrvalidator/pkg/logger"
	"qrvalidator/pkg/storage"
	"qrvalidator/pkg/storage/local"
	"qrvalidator/pkg/storage/s3store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// getStorage builds the configured upload storage. The local directory is
// created here, once, rather than on the first request.
func getStorage(ctx context.Context, cfg *config.Config) storage.Storage {
	if cfg.Upload.Backend == config.UploadBackendS3 {
		s3, err := s3store.New(ctx, s3store.Options{
			Bucket:    cfg.Upload.S3.Bucket,
			Region:    cfg.Upload.S3.Region,
			Endpoint:  cfg.Upload.S3.Endpoint,
			AccessKey: cfg.Upload.S3.AccessKey,
			SecretKey: cfg.Upload.S3.SecretKey,
			UseSSL:    cfg.Upload.S3.UseSSL,
			Prefix:    cfg.Upload.S3.Prefix,
		})
		if err != nil {
			logger.Fatal(ctx, "could not create s3 storage", zap.Error(err))
		}
		logger.Info(ctx, "storing uploads in s3", zap.String("bucket", cfg.Upload.S3.Bucket))

		return s3
	}

	dir := local.New(cfg.Upload.Dir)
	if err := dir.Init(); err != nil {
		logger.Fatal(ctx, "could not create upload directory", zap.Error(err))
	}
	logger.Info(ctx, "storing uploads on disk", zap.String("dir", dir.Dir()))

	return dir
}

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "qrvalidator",
		Short: "Driver's license QR code detection and identity validation",
	}

	// there is no way to access flags before command execution in cobra.
	// configPath here is parsed using the standard flags package.
	// following line is just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")

	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	configPath := flags.String("c", "config.yml", "The config file path")
	_ = flags.Parse(configArgs(os.Args[1:]))

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("could not load config file", err)
	}

	logger.Setup(cfg.Environment)

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			logger.Sync(ctx)

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		serveCommand(cfg),
		decodeCommand(cfg),
		JWTCommand(cfg),
	)

	err = rootCmd.Execute()
	logger.Sync(ctx)
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

// configArgs keeps only the -c/--config flag so the standard flag package
// does not stop at cobra subcommands and their flags.
func configArgs(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		switch a := args[i]; {
		case a == "-c" || a == "--c" || a == "--config":
			if i+1 < len(args) {
				out = append(out, "-c", args[i+1])
				i++
			}
		case len(a) > 3 && a[:3] == "-c=":
			out = append(out, a)
		case len(a) > 9 && a[:9] == "--config=":
			out = append(out, "-c="+a[9:])
		}
	}

	return out
}
