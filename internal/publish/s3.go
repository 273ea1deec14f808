package publish

import (
	"context"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/slab-dev/slab/internal/errors"
)

// Client is the subset of the S3 API the publisher uses. *s3.Client
// satisfies it.
type Client interface {
	s3.ListObjectsV2APIClient
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// Publisher uploads a directory tree to an S3 bucket under a key prefix.
type Publisher struct {
	client Client
	bucket string
	prefix string
}

// NewPublisher creates a publisher for the given bucket and prefix.
func NewPublisher(client Client, bucket, prefix string) *Publisher {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &Publisher{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// NewClient builds an S3 client from the region and the standard AWS
// environment variables (AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY,
// AWS_SESSION_TOKEN).
func NewClient(region string) (*s3.Client, error) {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return nil, errors.New("E302").
			WithDetail("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set")
	}

	creds := aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
			Source:          "environment",
		}, nil
	})

	return s3.New(s3.Options{
		Region:      region,
		Credentials: creds,
	}), nil
}

// Publish uploads every file under dir to the bucket, mirroring the
// directory layout below the prefix. It returns the number of files
// uploaded.
func (p *Publisher) Publish(ctx context.Context, dir string) (int, error) {
	uploaded := 0

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		key := p.prefix + filepath.ToSlash(rel)

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(p.bucket),
			Key:         aws.String(key),
			Body:        f,
			ContentType: aws.String(contentType(path)),
			Metadata: map[string]string{
				"publish-time": time.Now().UTC().Format(time.RFC3339),
			},
		})
		if err != nil {
			return errors.New("E301").
				WithDetail("Failed to upload " + key + ": " + err.Error()).
				Wrap(err)
		}

		uploaded++
		return nil
	})

	return uploaded, err
}

// Prune deletes objects under the prefix whose keys are not in keep.
// Publish then Prune makes the bucket mirror the local directory.
func (p *Publisher) Prune(ctx context.Context, keep map[string]bool) (int, error) {
	paginator := s3.NewListObjectsV2Paginator(p.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(p.bucket),
		Prefix: aws.String(p.prefix),
	})

	var toDelete []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return 0, errors.New("E301").Wrap(err)
		}

		for _, obj := range page.Contents {
			if obj.Key != nil && !keep[*obj.Key] {
				toDelete = append(toDelete, *obj.Key)
			}
		}
	}

	deleted := 0
	for _, key := range toDelete {
		_, err := p.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(p.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			return deleted, errors.New("E301").
				WithDetail("Failed to delete " + key + ": " + err.Error()).
				Wrap(err)
		}
		deleted++
	}

	return deleted, nil
}

// Keys returns the object keys Publish would write for dir, for use with
// Prune.
func (p *Publisher) Keys(dir string) (map[string]bool, error) {
	keys := make(map[string]bool)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		keys[p.prefix+filepath.ToSlash(rel)] = true
		return nil
	})
	return keys, err
}

// contentType guesses the MIME type for a file by extension.
func contentType(path string) string {
	ext := filepath.Ext(path)
	if ext == ".go" {
		return "text/x-go; charset=utf-8"
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
