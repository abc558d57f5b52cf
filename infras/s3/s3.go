package s3

//go:generate go run go.uber.org/mock/mockgen -source=./s3.go -destination=./mocks/s3_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"guesthouse/config"
	"guesthouse/infras/otel"
	"guesthouse/shared/constant"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/rs/zerolog/log"
)

// ErrNotConfigured is returned when no bucket is configured.
var ErrNotConfigured = errors.New("object storage is not configured")

// S3 stores public objects, such as room photos, in the configured bucket
// of any S3 compatible store.
type S3 interface {
	// Put streams body under key and returns its public URL.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (url string, err error)
	// Delete removes keys in one request. Unknown keys are ignored by the store.
	Delete(ctx context.Context, keys ...string) error
	// KeyFromURL reverses Put's URL, returning "" for URLs outside the bucket.
	KeyFromURL(url string) string
}

type s3Impl struct {
	client *s3.Client
	cfg    config.S3
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) S3 {
	store := cfg.External.S3

	awsCfg, err := awsConfig.LoadDefaultConfig(
		context.Background(),
		awsConfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(store.AccessKeyID, store.SecretAccessKey, "")),
		awsConfig.WithRegion(store.Region),
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to load object storage configuration")
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if store.APIEndpoint != "" {
			o.BaseEndpoint = aws.String(store.APIEndpoint)
		}

		o.UsePathStyle = true
	})

	return &s3Impl{client: client, cfg: store, otel: otel}
}

func (svc *s3Impl) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Put")
	defer scope.End()

	scope.SetAttributes(map[string]any{
		"s3.bucket": svc.cfg.BucketName,
		"s3.key":    key,
		"s3.size":   size,
	})

	if svc.cfg.BucketName == "" {
		return constant.Empty, ErrNotConfigured
	}

	_, err := svc.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(svc.cfg.BucketName),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		scope.TraceError(err)

		return constant.Empty, fmt.Errorf("failed to upload %s: %w", key, err)
	}

	return svc.publicURL(key), nil
}

func (svc *s3Impl) Delete(ctx context.Context, keys ...string) error {
	ctx, scope := svc.otel.NewScope(ctx, constant.OtelS3ScopeName, constant.OtelS3ScopeName+".Delete")
	defer scope.End()

	scope.SetAttribute("s3.keys", keys)

	if len(keys) == 0 {
		return nil
	}

	if svc.cfg.BucketName == "" {
		return ErrNotConfigured
	}

	objects := make([]types.ObjectIdentifier, len(keys))
	for i, key := range keys {
		objects[i] = types.ObjectIdentifier{Key: aws.String(key)}
	}

	out, err := svc.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(svc.cfg.BucketName),
		Delete: &types.Delete{Objects: objects, Quiet: aws.Bool(true)},
	})
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to delete objects: %w", err)
	}

	if len(out.Errors) > 0 {
		first := out.Errors[0]
		err = fmt.Errorf("failed to delete %d objects, first %s: %s", len(out.Errors), aws.ToString(first.Key), aws.ToString(first.Message))
		scope.TraceError(err)

		return err
	}

	return nil
}

func (svc *s3Impl) KeyFromURL(url string) string {
	return KeyFromURL(svc.cfg, url)
}

func (svc *s3Impl) publicURL(key string) string {
	if svc.cfg.PublicDomain != "" {
		return strings.TrimSuffix(svc.cfg.PublicDomain, "/") + "/" + key
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(svc.cfg.APIEndpoint, "/"), svc.cfg.BucketName, key)
}

// KeyFromURL accepts both the public domain form and the path style API form.
func KeyFromURL(cfg config.S3, url string) string {
	prefixes := []string{
		strings.TrimSuffix(cfg.APIEndpoint, "/") + "/" + cfg.BucketName + "/",
	}

	if cfg.PublicDomain != "" {
		prefixes = append(prefixes, strings.TrimSuffix(cfg.PublicDomain, "/")+"/")
	}

	for _, prefix := range prefixes {
		if key, ok := strings.CutPrefix(url, prefix); ok && key != "" {
			return key
		}
	}

	return constant.Empty
}
