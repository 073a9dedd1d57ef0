// utils/s3.go
package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var s3Client *s3.Client
var s3Bucket string
var s3BaseURL string

func InitS3() error {
	region := os.Getenv("AWS_REGION")
	accessKeyID := os.Getenv("AWS_ACCESS_KEY_ID")
	accessKeySecret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	s3Bucket = os.Getenv("AWS_S3_BUCKET")
	s3BaseURL = os.Getenv("S3_BASE_URL")
	if s3BaseURL == "" {
		s3BaseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s3Bucket, region)
	}

	opts := []func(*config.LoadOptions) error{
		config.WithRegion(region),
	}
	if accessKeyID != "" && accessKeySecret != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKeyID, accessKeySecret, "",
		)))
	}

	cfg, err := config.LoadDefaultConfig(context.TODO(), opts...)
	if err != nil {
		return fmt.Errorf("failed to load S3 config: %w", err)
	}

	s3Client = s3.NewFromConfig(cfg)
	return nil
}

// S3Enabled reports whether InitS3 has been called with a bucket configured.
// When false, handlers fall back to local uploads.
func S3Enabled() bool {
	return s3Client != nil && s3Bucket != ""
}

// UploadBytesToS3 uploads raw bytes (e.g. a decoded base64 image) and
// returns the public URL.
func UploadBytesToS3(data []byte, key, contentType string) (string, error) {
	_, err := s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return fmt.Sprintf("%s/%s", s3BaseURL, key), nil
}

// UploadFileToS3 uploads a multipart file and returns the public URL.
// key is the object key (e.g., "screenshots/abc123.png")
func UploadFileToS3(fileHeader *multipart.FileHeader, key string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	_, err = s3Client.PutObject(context.TODO(), &s3.PutObjectInput{
		Bucket:      aws.String(s3Bucket),
		Key:         aws.String(key),
		Body:        buf,
		ContentType: aws.String(fileHeader.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	return fmt.Sprintf("%s/%s", s3BaseURL, key), nil
}
