package export

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// Uploader stores an encoded frame under a key
type Uploader interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) error
}

// S3Config holds the connection settings for an S3 compatible bucket
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Empty uses the AWS endpoint for Region
	Region    string
	Bucket    string
	ACL       string // Canned ACL such as "public-read"; empty leaves the bucket default
}

// S3Uploader uploads frames to an S3 bucket
type S3Uploader struct {
	client  s3iface.S3API
	bucket  string
	acl     string
	timeout time.Duration
}

// NewS3Uploader creates an uploader with static credentials
func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is not configured")
	}

	s3Config := &aws.Config{
		Credentials:      credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
		Region:           aws.String(cfg.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if cfg.Endpoint != "" {
		s3Config.Endpoint = aws.String(cfg.Endpoint)
	}

	sess, err := session.NewSession(s3Config)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	uploader := NewS3UploaderWithClient(s3.New(sess), cfg.Bucket)
	uploader.acl = cfg.ACL
	return uploader, nil
}

// NewS3UploaderWithClient wraps an existing client
func NewS3UploaderWithClient(client s3iface.S3API, bucket string) *S3Uploader {
	return &S3Uploader{
		client:  client,
		bucket:  bucket,
		timeout: UploadTimeout,
	}
}

// Upload implements Uploader
func (u *S3Uploader) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, u.timeout)
	defer cancel()

	size := int64(len(data))
	input := &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}
	if u.acl != "" {
		input.ACL = aws.String(u.acl)
	}

	if _, err := u.client.PutObjectWithContext(ctx, input); err != nil {
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	log.Printf("Uploaded %s to s3://%s (%d bytes)", key, u.bucket, size)
	return nil
}
