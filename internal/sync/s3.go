package sync

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Options configures an S3Destination.
type S3Options struct {
	Bucket   string
	Key      string
	Region   string
	Endpoint string // non-empty enables path-style addressing (MinIO and similar)
}

// S3Destination uploads the export as a single object in an S3-compatible bucket.
type S3Destination struct {
	client *s3.Client
	bucket string
	key    string
}

// NewS3Destination loads the default AWS credential chain and builds a client.
func NewS3Destination(ctx context.Context, o S3Options) (*S3Destination, error) {
	if o.Bucket == "" {
		return nil, fmt.Errorf("s3 destination: bucket is required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(o.Region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	var s3opts []func(*s3.Options)
	if o.Endpoint != "" {
		s3opts = append(s3opts, func(so *s3.Options) {
			so.BaseEndpoint = aws.String(o.Endpoint)
			so.UsePathStyle = true
		})
	}

	return &S3Destination{
		client: s3.NewFromConfig(cfg, s3opts...),
		bucket: o.Bucket,
		key:    o.Key,
	}, nil
}

// Name returns "s3://bucket/key".
func (d *S3Destination) Name() string {
	return "s3://" + d.bucket + "/" + d.key
}

func (d *S3Destination) Write(ctx context.Context, data []byte) error {
	_, err := d.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(d.bucket),
		Key:         aws.String(d.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/x-ndjson"),
	})
	if err != nil {
		return fmt.Errorf("s3 put object %s: %w", d.Name(), err)
	}
	return nil
}
