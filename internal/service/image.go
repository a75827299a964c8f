package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/feastly/backend/config"
)

// ImageService stores uploaded recipe images and avatars in S3 and hands
// back opaque public URLs. The rest of the system never looks inside the
// reference.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// UploadBase64 decodes a base64 data-URI image (the upload format used
// by clients) and stores it under the given key prefix.
func (s *ImageService) UploadBase64(ctx context.Context, data, keyPrefix string) (string, error) {
	payload := data
	contentType := "image/png"
	ext := "png"
	if strings.HasPrefix(data, "data:") {
		parts := strings.SplitN(data, ",", 2)
		if len(parts) != 2 {
			return "", fmt.Errorf("malformed data URI")
		}
		meta := strings.TrimPrefix(parts[0], "data:")
		contentType = strings.SplitN(meta, ";", 2)[0]
		if slash := strings.Index(contentType, "/"); slash >= 0 {
			ext = contentType[slash+1:]
		}
		payload = parts[1]
	}

	imageData, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	fileName := fmt.Sprintf("%s/%s.%s", keyPrefix, uuid.New().String(), ext)
	return s.uploadToS3(ctx, imageData, fileName, contentType)
}

// uploadToS3 uploads image data to S3 and returns the public URL
func (s *ImageService) uploadToS3(ctx context.Context, imageData []byte, fileName, contentType string) (string, error) {
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(fileName),
		Body:        bytes.NewReader(imageData),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, fileName)
	log.Printf("[ImageService] Uploaded image to S3: %s", publicURL)
	return publicURL, nil
}
