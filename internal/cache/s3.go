package cache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"wordtrack/internal/wt"
)

// S3API is the subset of the S3 client used by S3Cache.
type S3API interface {
	manager.UploadAPIClient
	GetObject(context.Context, *s3.GetObjectInput, ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// S3Options configures the S3 client built by NewS3Client.
type S3Options struct {
	Region   string
	Endpoint string // optional, for S3-compatible stores; enables path-style addressing

	// Static credentials. When empty the default AWS credential chain is used.
	AccessKeyID     string
	SecretAccessKey string
}

// NewS3Client builds an S3 client from opts.
func NewS3Client(ctx context.Context, opts S3Options) (*s3.Client, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
			// Many S3-compatible stores reject the default flexible checksums.
			o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
			o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
		}
	}), nil
}

// S3Cache stores each snapshot as one object:
//
//	s3://<bucket>/<prefix>/snapshots/<docID>
type S3Cache struct {
	name     string
	bucket   string
	prefix   string
	client   S3API
	uploader *manager.Uploader
}

// NewS3Cache creates a cache backed by bucket. prefix may be empty.
func NewS3Cache(name, bucket, prefix string, client S3API) (*S3Cache, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 cache requires a bucket")
	}
	return &S3Cache{
		name:     name,
		bucket:   bucket,
		prefix:   strings.Trim(prefix, "/"),
		client:   client,
		uploader: manager.NewUploader(client),
	}, nil
}

func (c *S3Cache) key(docID string) (string, error) {
	if err := checkDocID(docID); err != nil {
		return "", err
	}
	return path.Join(c.prefix, "snapshots", docID), nil
}

// Load returns the cached text, or "" if the object does not exist.
func (c *S3Cache) Load(docID string) (string, error) {
	key, err := c.key(docID)
	if err != nil {
		return "", err
	}

	out, err := c.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return "", nil
		}
		return "", fmt.Errorf("getting s3://%s/%s: %w", c.bucket, key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return "", fmt.Errorf("reading s3://%s/%s: %w", c.bucket, key, err)
	}
	return string(data), nil
}

// Save uploads the text, replacing any previous snapshot.
func (c *S3Cache) Save(docID string, text string) error {
	key, err := c.key(docID)
	if err != nil {
		return err
	}

	_, err = c.uploader.Upload(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(key),
		Body:        strings.NewReader(text),
		ContentType: aws.String("text/plain; charset=utf-8"),
	})
	if err != nil {
		return fmt.Errorf("uploading s3://%s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// ValidateSetup verifies that the bucket exists and is reachable.
func (c *S3Cache) ValidateSetup() error {
	_, err := c.client.HeadBucket(context.Background(), &s3.HeadBucketInput{
		Bucket: aws.String(c.bucket),
	})
	if err != nil {
		return fmt.Errorf("s3 bucket %s not accessible: %w", c.bucket, err)
	}
	return nil
}

var _ wt.SnapshotCache = (*S3Cache)(nil)
