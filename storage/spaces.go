package storage

import (
	"bytes"
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	config "github.com/pathanacademy/mining_academy/configs"
)

// Uploader is the object-storage write path. Payment screenshots go through
// it; a successful upload returns a publicly fetchable URL.
type Uploader interface {
	UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

var Client Uploader

type SpacesClient struct {
	s3Client *s3.S3
	bucket   string
	endpoint string
	cdnURL   string
}

func InitSpaces() {
	accessKey := config.Config("SPACES_ACCESS_KEY")
	secretKey := config.Config("SPACES_SECRET_KEY")
	bucket := config.Config("SPACES_BUCKET")
	region := config.Config("SPACES_REGION")
	endpoint := config.Config("SPACES_ENDPOINT")

	if accessKey == "" || secretKey == "" || bucket == "" {
		log.Println("⚠️ Object storage not configured. Screenshot uploads will fail.")
		return
	}

	sess, err := session.NewSession(&aws.Config{
		Credentials:      credentials.NewStaticCredentials(accessKey, secretKey, ""),
		Endpoint:         aws.String(endpoint),
		Region:           aws.String(region),
		S3ForcePathStyle: aws.Bool(false),
	})
	if err != nil {
		log.Printf("🔥 Failed to create object storage session: %v", err)
		return
	}

	Client = &SpacesClient{
		s3Client: s3.New(sess),
		bucket:   bucket,
		endpoint: endpoint,
		cdnURL:   config.Config("SPACES_CDN_URL"),
	}
	log.Println("✅ Object storage initialized successfully.")
}

func (s *SpacesClient) UploadBytes(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        aws.ReadSeekCloser(bytes.NewReader(data)),
		ACL:         aws.String("public-read"),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	if s.cdnURL != "" {
		return fmt.Sprintf("%s/%s", s.cdnURL, key), nil
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucket, s.endpoint, key), nil
}
