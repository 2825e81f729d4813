package snapshot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/dmitrijs2005/creationhub/internal/common"
)

type S3Options struct {
	Region       string
	BaseEndpoint string
	AccessKey    string
	SecretKey    string
	Bucket       string
	Prefix       string
}

// objectAPI is the part of *s3.Client the backend uses.
type objectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Backend stores each kind as the object <prefix>/<kind>.json.
type S3Backend struct {
	client objectAPI
	bucket string
	prefix string
}

// newS3Client is a seam for tests.
var newS3Client = func(ctx context.Context, opts S3Options) (objectAPI, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(opts.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKey,
			opts.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("error loading s3 config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(opts.BaseEndpoint)
			o.UsePathStyle = true
		}
	}), nil
}

func NewS3Backend(ctx context.Context, opts S3Options) (*S3Backend, error) {
	if opts.Bucket == "" {
		return nil, errors.New("s3 bucket is not set")
	}
	client, err := newS3Client(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &S3Backend{client: client, bucket: opts.Bucket, prefix: opts.Prefix}, nil
}

func (b *S3Backend) key(kind Kind) string {
	return path.Join(b.prefix, string(kind)+".json")
}

func (b *S3Backend) Load(ctx context.Context, kind Kind) ([]byte, error) {
	out, err := b.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(b.key(kind)),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("s3 get %s: %w", kind, err)
	}
	defer out.Body.Close()

	blob, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("s3 read %s: %w", kind, err)
	}
	return blob, nil
}

func (b *S3Backend) Save(ctx context.Context, kind Kind, blob []byte) error {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(b.key(kind)),
		Body:        bytes.NewReader(blob),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", kind, err)
	}
	return nil
}

func (b *S3Backend) Close() error { return nil }
