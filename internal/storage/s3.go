package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config describes an S3 compatible bucket
type S3Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	PublicBaseURL   string
	AccessKeyID     string
	SecretAccessKey string
}

// ObjectPutter is the part of the S3 client the store needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// NewS3Client builds a path-style client for cfg. Static credentials are used when given,
// otherwise the default AWS credential chain applies.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if cfg.Endpoint != "" {
		opts = append(opts, awsconfig.WithBaseEndpoint(cfg.Endpoint))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to load aws config: %w", err)
	}
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	}), nil
}

// ObjectStore writes objects to one bucket and hands back their public URL
type ObjectStore struct {
	client         ObjectPutter
	bucket         string
	publicEndpoint *url.URL
}

// NewObjectStore creates a store for bucket whose objects are served under publicBaseURL
func NewObjectStore(client ObjectPutter, bucket, publicBaseURL string) (*ObjectStore, error) {
	if bucket == "" {
		return nil, errors.New("storage: bucket is required")
	}
	publicEndpoint, err := url.Parse(publicBaseURL)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to parse public base url: %w", err)
	}
	return &ObjectStore{client: client, bucket: bucket, publicEndpoint: publicEndpoint}, nil
}

// Put uploads body under key and returns the object's public URL
func (s *ObjectStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to put object %s: %w", key, err)
	}

	uri := *s.publicEndpoint
	uri.Path = path.Join("/", uri.Path, key)
	return uri.String(), nil
}
