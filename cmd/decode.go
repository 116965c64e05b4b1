package main

import (
	"context"
	"encoding/json"
	"os"

	"qrvalidator/internal/config"
	"qrvalidator/internal/qrcheck"
	"qrvalidator/pkg/domain"
	"qrvalidator/pkg/logger"
	"qrvalidator/pkg/rasterizer/mupdf"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// mediaTypeByExtension guesses the media type of a local file.
func mediaTypeByExtension(name string) (domain.MediaType, bool) {
	switch domain.Extension(name) {
	case "png":
		return domain.MediaTypePNG, true
	case "jpg", "jpeg":
		return domain.MediaTypeJPEG, true
	case "pdf":
		return domain.MediaTypePDF, true
	default:
		return "", false
	}
}

// decodeCommand constructs the 'decode' subcommand that prints the QR codes
// found in a local image or PDF, without storing it or calling the validator.
func decodeCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Prints the QR codes found in a PNG, JPEG or PDF file",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			ctx := logger.WithFields(context.Background(), zap.String("file", args[0]))

			mediaType, ok := mediaTypeByExtension(args[0])
			if !ok {
				logger.Fatal(ctx, "unsupported file extension, use png, jpg, jpeg or pdf")
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				logger.Fatal(ctx, "could not read file", zap.Error(err))
			}

			dpi, _ := cmd.Flags().GetFloat64("dpi")
			if dpi <= 0 {
				dpi = cfg.PDF.DPI
			}
			svc := qrcheck.New(qrcheck.Deps{Rasterizer: mupdf.New(dpi)}, qrcheck.DefaultOptions())

			codes, err := svc.Extract(ctx, mediaType, data)
			if err != nil {
				logger.Fatal(ctx, "could not extract qr codes", zap.Error(err))
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(codes); err != nil {
				logger.Fatal(ctx, "could not print qr codes", zap.Error(err))
			}
		},
	}

	cmd.Flags().Float64("dpi", 0, "PDF rendering resolution (defaults to the configured pdf.dpi)")

	return cmd
}
