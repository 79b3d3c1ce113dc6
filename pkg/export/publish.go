package export

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/joho/godotenv"
)

// Publisher uploads finished render artifacts to an S3-compatible bucket
type Publisher struct {
	bucket string
	prefix string
	client *s3.S3
}

// NewPublisherFromEnv builds a Publisher from the environment, reading a
// .env file when present. Required variables: S3_BUCKET, S3_ACCESS_KEY,
// S3_SECRET_KEY, S3_REGION; optional: S3_ENDPOINT, S3_PREFIX.
// Returns (nil, nil) when publishing is not configured.
func NewPublisherFromEnv() (*Publisher, error) {
	// Missing .env is fine; plain environment variables still apply
	_ = godotenv.Load()

	bucket := os.Getenv("S3_BUCKET")
	accessKey := os.Getenv("S3_ACCESS_KEY")
	secretKey := os.Getenv("S3_SECRET_KEY")
	if bucket == "" || accessKey == "" || secretKey == "" {
		return nil, nil
	}

	region := os.Getenv("S3_REGION")
	if region == "" {
		region = "us-east-1"
	}

	config := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(accessKey, secretKey, ""),
	}
	if endpoint := os.Getenv("S3_ENDPOINT"); endpoint != "" {
		config.Endpoint = aws.String(endpoint)
		config.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("export: creating S3 session: %w", err)
	}

	return &Publisher{
		bucket: bucket,
		prefix: os.Getenv("S3_PREFIX"),
		client: s3.New(sess),
	}, nil
}

// Publish uploads each file and returns the object keys written
func (p *Publisher) Publish(ctx context.Context, paths []string) ([]string, error) {
	keys := make([]string, 0, len(paths))

	for _, filePath := range paths {
		file, err := os.Open(filePath)
		if err != nil {
			return keys, fmt.Errorf("export: opening %s for upload: %w", filePath, err)
		}

		key := path.Join(p.prefix, filepath.Base(filePath))
		_, err = p.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(p.bucket),
			Key:         aws.String(key),
			Body:        file,
			ContentType: aws.String(contentTypeFor(filePath)),
			ACL:         aws.String("public-read"),
		})
		file.Close()
		if err != nil {
			return keys, fmt.Errorf("export: uploading %s: %w", key, err)
		}
		keys = append(keys, key)
	}

	return keys, nil
}

func contentTypeFor(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".hdr":
		return "image/vnd.radiance"
	default:
		return "application/octet-stream"
	}
}
