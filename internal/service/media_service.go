package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	gonanoid "github.com/matoous/go-nanoid/v2"
	cfg "github.com/socialgit/socialgit-api/configs"
)

// Only these media types make it into a post.
var allowedExtensions = map[string]struct{}{
	"png": {}, "jpg": {}, "jpeg": {}, "gif": {}, "mp4": {},
}

// MediaService stores uploaded post media and hands back the relative
// reference kept on the post row.
type MediaService interface {
	Upload(ctx context.Context, file *multipart.FileHeader) (string, error)
}

type mediaService struct {
	config cfg.Config
}

func NewMediaService(config cfg.Config) MediaService {
	return &mediaService{config: config}
}

func (s *mediaService) r2Client() (*s3.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(s.config.R2.AccessKey, s.config.R2.SecretKey, "")),
		awsconfig.WithRegion("auto"),
	)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", s.config.R2.AccountID))
	}), nil
}

// Upload checks the filename extension against the allow-list, sniffs
// the content to make sure it matches, and puts the object under the
// uploads prefix. Returns the relative media reference.
func (s *mediaService) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file.Filename), "."))
	if _, ok := allowedExtensions[ext]; !ok {
		slog.Info("rejected upload", "filename", file.Filename)
		return "", ErrInvalidFileType
	}

	fileContent, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("error opening file: %w", err)
	}
	defer fileContent.Close()

	fileBytes, err := io.ReadAll(fileContent)
	if err != nil {
		return "", fmt.Errorf("error reading file content: %w", err)
	}

	fileType, err := filetype.Match(fileBytes)
	if err != nil || fileType == types.Unknown {
		slog.Info("could not sniff upload", "filename", file.Filename)
		return "", ErrInvalidFileType
	}
	if _, ok := allowedExtensions[fileType.Extension]; !ok {
		return "", ErrInvalidFileType
	}

	name, err := gonanoid.New()
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("%s/%s.%s", s.config.UploadsPrefix, name, ext)

	client, err := s.r2Client()
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.config.R2.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(fileBytes),
		ContentType: aws.String(fileType.MIME.Value),
	}
	if _, err := client.PutObject(ctx, input); err != nil {
		slog.Info(err.Error())
		return "", err
	}

	return key, nil
}
