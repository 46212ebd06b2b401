package services

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/dmitrijs2005/devconnector/internal/client/client"
	"github.com/dmitrijs2005/devconnector/internal/netx"
)

// uploadToPresignedURL is a test seam for netx.UploadToPresignedURL.
var uploadToPresignedURL = netx.UploadToPresignedURL

const maxAvatarBytes = 2 << 20

// AvatarService uploads a local image as the user's avatar.
type AvatarService interface {
	Upload(ctx context.Context, path string) (string, error)
}

type avatarService struct {
	client client.Client
}

func NewAvatarService(c client.Client) AvatarService {
	return &avatarService{client: c}
}

// Upload reads the image at path, asks the server for a presigned slot and
// PUTs the bytes there. It returns the new avatar URL.
func (s *avatarService) Upload(ctx context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) > maxAvatarBytes {
		return "", fmt.Errorf("avatar is %d bytes, limit is %d", len(data), maxAvatarBytes)
	}

	contentType := http.DetectContentType(data)
	slot, err := s.client.PresignAvatar(ctx, contentType)
	if err != nil {
		return "", err
	}

	if err := uploadToPresignedURL(ctx, slot.UploadURL, contentType, data); err != nil {
		return "", err
	}
	return slot.AvatarURL, nil
}
