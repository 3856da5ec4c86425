package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// AvatarStore persists an avatar image and returns the URL it is served from.
type AvatarStore interface {
	Save(ctx context.Context, userID string, data []byte, ext string) (string, error)
}

var avatarTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

// DetectImage sniffs data and returns its file extension if it is a raster image.
// SVG is rejected since uploads are served from the API origin.
func DetectImage(data []byte) (string, error) {
	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), avatarTypes...) {
		return "", NewBadRequest("Only image files are allowed")
	}
	return mtype.Extension(), nil
}

// DiskStore writes avatars under Dir and serves them below URLPrefix.
type DiskStore struct {
	Dir       string
	URLPrefix string
}

func (s *DiskStore) Save(ctx context.Context, userID string, data []byte, ext string) (string, error) {
	dir := filepath.Join(s.Dir, "avatars")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create avatar dir: %w", err)
	}
	name := fmt.Sprintf("%s-%s%s", userID, uuid.NewString(), ext)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write avatar: %w", err)
	}
	return strings.TrimSuffix(s.URLPrefix, "/") + "/avatars/" + name, nil
}

// CloudinaryStore uploads avatars to Cloudinary as 200x200 thumbnails.
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	Folder string
}

func NewCloudinaryStore(cloudName, apiKey, apiSecret, folder string) (*CloudinaryStore, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryStore{cld: cld, Folder: folder}, nil
}

func (s *CloudinaryStore) Save(ctx context.Context, userID string, data []byte, ext string) (string, error) {
	resp, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID:       userID,
		Folder:         s.Folder,
		Transformation: "c_thumb,w_200,h_200",
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}
	return resp.SecureURL, nil
}
