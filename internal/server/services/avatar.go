package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/server/auth"
	sc "github.com/dmitrijs2005/devconnector/internal/server/config"
	"github.com/dmitrijs2005/devconnector/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const avatarUploadExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
)

// AvatarUpload tells the client where to PUT the image and what the
// account's avatar URL now is.
type AvatarUpload struct {
	UploadURL string    `json:"uploadUrl"`
	AvatarURL string    `json:"avatar"`
	Key       string    `json:"key"`
	ExpiresAt time.Time `json:"expires"`
}

// AvatarService replaces the gravatar default with an image in object storage.
type AvatarService struct {
	repomanager repomanager.RepositoryManager
	config      *sc.Config
	now         func() time.Time
}

func NewAvatarService(m repomanager.RepositoryManager, config *sc.Config) *AvatarService {
	return &AvatarService{repomanager: m, config: config, now: time.Now}
}

func avatarStorageKey(userID string) string {
	return fmt.Sprintf("avatars/%s/%v", userID, uuid.New())
}

func (s *AvatarService) getPresignClient(ctx context.Context) (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3AccessKey,
			s.config.S3SecretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return newS3PresignClient(client), nil
}

// objectURL is the path-style public URL of key.
func (s *AvatarService) objectURL(key string) string {
	return strings.TrimRight(s.config.S3BaseEndpoint, "/") + "/" + s.config.S3Bucket + "/" + key
}

// PresignUpload issues a presigned PUT for a new avatar object and points the
// caller's avatar at it.
func (s *AvatarService) PresignUpload(ctx context.Context, id auth.Identity, contentType string) (*AvatarUpload, error) {
	if s.config == nil || !s.config.AvatarUploadsEnabled() {
		return nil, common.ErrUploadsDisabled
	}
	if !validID(id.UserID) {
		return nil, common.NotFound(common.ResourceUser)
	}

	users := s.repomanager.Users(s.repomanager.Conn())
	if _, err := users.GetByID(ctx, id.UserID); err != nil {
		return nil, notFoundAs(err, common.ResourceUser, "getting user")
	}

	presignClient, err := s.getPresignClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating presign client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := avatarStorageKey(id.UserID)
	in := &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	req, err := presignPutObject(presignClient, ctx, in, s3.WithPresignExpires(avatarUploadExpiry))
	if err != nil {
		return nil, err
	}

	avatar := s.objectURL(key)
	if err := users.UpdateAvatar(ctx, id.UserID, avatar); err != nil {
		return nil, notFoundAs(err, common.ResourceUser, "updating avatar")
	}

	return &AvatarUpload{
		UploadURL: req.URL,
		AvatarURL: avatar,
		Key:       key,
		ExpiresAt: s.now().Add(avatarUploadExpiry),
	}, nil
}
