package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader stores an encoded report under key
type Uploader interface {
	Upload(ctx context.Context, key string, body []byte) error
}

// ObjectPutter is the part of the S3 client the uploader needs
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader uploads reports to a bucket
type S3Uploader struct {
	client ObjectPutter
	bucket string
}

func NewS3Uploader(client ObjectPutter, bucket string) *S3Uploader {
	return &S3Uploader{client: client, bucket: bucket}
}

func (u *S3Uploader) Upload(ctx context.Context, key string, body []byte) error {
	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("failed to upload report to s3://%s/%s: %w", u.bucket, key, err)
	}
	return nil
}

// Publish uploads the report under <prefix>/<run id>.json
func (r *Report) Publish(ctx context.Context, uploader Uploader, prefix string) error {
	data, err := r.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return uploader.Upload(ctx, r.Key(prefix), data)
}
