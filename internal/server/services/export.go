package services

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/retailmedia/internal/api"
	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/filex"
	"github.com/dmitrijs2005/retailmedia/internal/logging"
	sc "github.com/dmitrijs2005/retailmedia/internal/server/config"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ExportService uploads creative images to the S3 bucket and hands out
// presigned download links.
type ExportService struct {
	config *sc.Config
	logger logging.Logger
}

func NewExportService(cfg *sc.Config, logger logging.Logger) *ExportService {
	return &ExportService{
		config: cfg,
		logger: logger.With("component", "export"),
	}
}

// ObjectKey is creatives/{email}/{id}{ext}. A missing id gets a random one.
func ObjectKey(email, id, mediaType string) string {
	if id == "" {
		id = uuid.NewString()
	}
	return path.Join("creatives", emailSegment(email), filex.SafeName(id)+filex.ExtensionFor(mediaType))
}

func emailSegment(email string) string {
	s := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(email)), "/", "_")
	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}

func (s *ExportService) getClient(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)),
	)
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return client, nil
}

// Export stores the creative's image under ObjectKey and returns a GET link
// valid for the configured export validity.
func (s *ExportService) Export(ctx context.Context, email string, cr models.Creative) (*api.ExportResponse, error) {
	if email == "" {
		return nil, common.ErrEmptyEmail
	}

	mediaType, data, err := models.DecodeDataURI(cr.ImageData)
	if err != nil {
		return nil, err
	}

	client, err := s.getClient(ctx)
	if err != nil {
		return nil, err
	}

	key := ObjectKey(email, cr.ID, mediaType)
	bucket := s.config.S3Bucket

	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mediaType),
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", key, err)
	}

	validity := s.config.ExportURLValidity
	req, err := presignGetObject(newS3PresignClient(client), ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(validity))
	if err != nil {
		return nil, fmt.Errorf("presign %s: %w", key, err)
	}

	s.logger.Info(ctx, "creative exported", "email", email, "key", key, "bytes", len(data))

	return &api.ExportResponse{
		URL:       req.URL,
		Key:       key,
		ExpiresAt: time.Now().Add(validity),
	}, nil
}
