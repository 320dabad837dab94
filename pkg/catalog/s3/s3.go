package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/oeis-tools/collab/pkg/catalog"
)

// S3RecordLoader is a RecordLoader implementation that loads record
// documents from an Amazon S3 bucket. It uses the AWS SDK v2 for Go.
//
// This loader is useful when the catalog corpus is stored in S3 (or an
// S3-compatible store such as MinIO) instead of the local filesystem.
type S3RecordLoader struct {
	bucket string
	prefix string
	client *s3.Client
}

// NewS3RecordLoaderWithClient creates a new S3RecordLoader using an existing
// s3.Client. This is useful if you want to reuse a preconfigured AWS client.
func NewS3RecordLoaderWithClient(bucket string, prefix string, client *s3.Client) *S3RecordLoader {
	return &S3RecordLoader{
		bucket: bucket,
		prefix: prefix,
		client: client,
	}
}

// NewS3RecordLoaderParams defines the configuration parameters for creating
// a new S3RecordLoader.
//
// Bucket specifies the S3 bucket name and Prefix the key prefix the record
// documents live under. Endpoint allows overriding the S3 endpoint, Region
// specifies the AWS region, and AccessKey/SecretKey provide static
// credentials.
type NewS3RecordLoaderParams struct {
	Bucket    string
	Prefix    string
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
}

// NewS3RecordLoader creates a new S3RecordLoader using the provided
// parameters. It initializes an AWS S3 client with static credentials and
// the given endpoint/region.
func NewS3RecordLoader(ctx context.Context, params NewS3RecordLoaderParams) (*S3RecordLoader, error) {
	cfg, err := config.LoadDefaultConfig(
		ctx,
		config.WithRegion(params.Region),
		config.WithBaseEndpoint(params.Endpoint),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			params.AccessKey,
			params.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &S3RecordLoader{
		bucket: params.Bucket,
		prefix: params.Prefix,
		client: client,
	}, nil
}

// List returns the keys of all record documents directly under the
// configured prefix. Keys in nested "subdirectories" are ignored so the
// listing matches the non-recursive directory loader.
func (l *S3RecordLoader) List(ctx context.Context) ([]string, error) {
	prefix := l.prefix
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	var keys []string
	listInput := &s3.ListObjectsV2Input{
		Bucket: aws.String(l.bucket),
		Prefix: aws.String(prefix),
	}

	for {
		listOutput, err := l.client.ListObjectsV2(ctx, listInput)
		if err != nil {
			return nil, fmt.Errorf("%w: s3://%s/%s: %v", catalog.ErrUnreadable, l.bucket, prefix, err)
		}

		for _, obj := range listOutput.Contents {
			if obj.Key == nil {
				continue
			}
			rest := strings.TrimPrefix(*obj.Key, prefix)
			if rest == "" || strings.Contains(rest, "/") {
				continue
			}
			if !catalog.IsRecordKey(rest) {
				continue
			}
			keys = append(keys, rest)
		}

		if listOutput.IsTruncated != nil && *listOutput.IsTruncated {
			listInput.ContinuationToken = listOutput.NextContinuationToken
		} else {
			break
		}
	}

	return keys, nil
}

// Read retrieves the content of one record document from the bucket.
func (l *S3RecordLoader) Read(ctx context.Context, key string) ([]byte, error) {
	fullKey := key
	if l.prefix != "" {
		fullKey = path.Join(l.prefix, key)
	}

	out, err := l.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(fullKey),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: s3://%s/%s: %v", catalog.ErrUnreadable, l.bucket, fullKey, err)
	}
	defer out.Body.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, out.Body); err != nil {
		return nil, fmt.Errorf("%w: s3://%s/%s: %v", catalog.ErrUnreadable, l.bucket, fullKey, err)
	}

	return buf.Bytes(), nil
}
