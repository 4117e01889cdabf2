package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3Config describes the bucket and how to reach it.
// Endpoint switches to path-style addressing for S3-compatible services.
type S3Config struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	PublicBaseURL string
}

type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObjects(ctx context.Context, params *s3.DeleteObjectsInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectsOutput, error)
}

// S3Bucket stores media in an S3 (or S3-compatible) bucket.
type S3Bucket struct {
	client  s3API
	bucket  string
	baseURL string
}

// NewS3Bucket loads AWS configuration and builds the client.
func NewS3Bucket(ctx context.Context, cfg S3Config) (*S3Bucket, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("s3 bucket name is required")
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return newS3Bucket(client, cfg), nil
}

func newS3Bucket(client s3API, cfg S3Config) *S3Bucket {
	baseURL := strings.TrimSpace(cfg.PublicBaseURL)
	if baseURL == "" {
		if cfg.Endpoint != "" {
			baseURL = joinURL(cfg.Endpoint, cfg.Bucket)
		} else {
			baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
		}
	}
	return &S3Bucket{client: client, bucket: cfg.Bucket, baseURL: baseURL}
}

// Upload puts body under key. Without Upsert the request carries If-None-Match: *
// so an existing object fails with ErrObjectExists.
func (b *S3Bucket) Upload(ctx context.Context, key string, body io.Reader, size int64, opts UploadOptions) error {
	cleaned, err := CleanKey(key)
	if err != nil {
		return err
	}

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(cleaned),
		Body:   body,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if opts.ContentType != "" {
		input.ContentType = aws.String(opts.ContentType)
	}
	if opts.CacheControl != "" {
		input.CacheControl = aws.String(opts.CacheControl)
	}
	if !opts.Upsert {
		input.IfNoneMatch = aws.String("*")
	}

	if _, err := b.client.PutObject(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "PreconditionFailed" {
			return fmt.Errorf("%w: %s", ErrObjectExists, cleaned)
		}
		return fmt.Errorf("failed to upload %s to S3: %w", cleaned, err)
	}
	return nil
}

// PublicURL returns the dereferenceable URL of key.
func (b *S3Bucket) PublicURL(key string) string {
	return joinURL(b.baseURL, key)
}

// Remove deletes keys in one batch request.
func (b *S3Bucket) Remove(ctx context.Context, keys ...string) error {
	identifiers := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		cleaned, err := CleanKey(key)
		if err != nil {
			return err
		}
		identifiers = append(identifiers, types.ObjectIdentifier{Key: aws.String(cleaned)})
	}
	if len(identifiers) == 0 {
		return nil
	}

	out, err := b.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(b.bucket),
		Delete: &types.Delete{Objects: identifiers, Quiet: aws.Bool(true)},
	})
	if err != nil {
		return fmt.Errorf("failed to delete objects from S3: %w", err)
	}
	if out != nil && len(out.Errors) > 0 {
		first := out.Errors[0]
		return fmt.Errorf("failed to delete object %s: %s", aws.ToString(first.Key), aws.ToString(first.Message))
	}
	return nil
}
