// Package s3store provides a storage.Storage backed by an S3 compatible
// object store (AWS S3, MinIO, LocalStack).
package s3store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"qrvalidator/pkg/serrors"
	"qrvalidator/pkg/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// Options configures the object store connection.
type Options struct {
	// Bucket receives every upload.
	Bucket string
	// Region is the bucket region.
	Region string
	// Endpoint overrides the AWS endpoint, e.g. "minio:9000". Empty means AWS.
	Endpoint string
	// AccessKey and SecretKey are static credentials. When empty the default
	// AWS credential chain is used.
	AccessKey string
	SecretKey string
	// UseSSL selects https for a custom Endpoint without a scheme.
	UseSSL bool
	// Prefix is prepended to every object key, e.g. "upload".
	Prefix string
}

// Storage stores uploads as objects under Prefix in Bucket. The path returned
// by Save is the object key.
type Storage struct {
	client *s3.Client
	opts   Options
}

// Ensure Storage conforms to the storage.Storage interface at compile time.
var _ storage.Storage = (*Storage)(nil)

// New builds an S3 client from opts.
func New(ctx context.Context, opts Options) (*Storage, error) {
	if opts.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("could not load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(endpointURL(opts.Endpoint, opts.UseSSL))
			o.UsePathStyle = true // required by MinIO
		}
		// checksums are only computed when the operation demands them, which
		// keeps uploads compatible with older S3 clones.
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	return &Storage{client: client, opts: opts}, nil
}

// Save uploads data as object <prefix>/<name> and returns the key.
func (s *Storage) Save(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" || strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidName, name)
	}

	key := path.Join(s.opts.Prefix, name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.opts.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("could not upload to s3: %w", err)
	}

	return key, nil
}

// Read downloads the object stored at key.
func (s *Storage) Read(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.opts.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return nil, serrors.Wrap(serrors.ErrNotFound, err, "object %s not found", key)
		}

		return nil, fmt.Errorf("could not download from s3: %w", err)
	}
	defer func() {
		_ = out.Body.Close()
	}()

	b, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read s3 object: %w", err)
	}

	return b, nil
}

func endpointURL(endpoint string, useSSL bool) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}
	if useSSL {
		return "https://" + endpoint
	}

	return "http://" + endpoint
}
