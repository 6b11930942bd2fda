package export

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const objectScheme = "s3://"

// ObjectPutter uploads a single object
type ObjectPutter interface {
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error
}

// S3Config configures the S3 upload target
type S3Config struct {
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// s3API is the subset of the S3 client used for uploads
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Putter uploads exports to S3 or an S3-compatible store such as MinIO
type S3Putter struct {
	client s3API
}

// NewS3Putter creates an S3Putter. Static credentials are used when both keys
// are set, otherwise the default AWS credential chain.
func NewS3Putter(ctx context.Context, cfg S3Config) (*S3Putter, error) {
	opts := []func(*config.LoadOptions) error{}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsConfig, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	return &S3Putter{client: client}, nil
}

// PutObject uploads body to bucket/key
func (p *S3Putter) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	hash := sha256.Sum256(body)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"checksum-sha256": hex.EncodeToString(hash[:]),
		},
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}
	return nil
}

// ParseObjectDestination splits s3://bucket/key into its bucket and key
func ParseObjectDestination(dest string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(dest, objectScheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %q does not start with %s", ErrInvalidDestination, dest, objectScheme)
	}

	bucket, key, _ = strings.Cut(rest, "/")
	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", fmt.Errorf("%w: %q (expected s3://bucket/key)", ErrInvalidDestination, dest)
	}
	return bucket, key, nil
}
