package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MaxImageBytes caps uploaded images; entries are stored inline in the
// document, so oversized uploads are rejected outright.
const MaxImageBytes = 5 << 20 // 5MB

var ErrImageTooLarge = errors.New("image exceeds size limit")

// ImageService turns uploaded files into a storable string: a Cloudinary
// URL when Cloudinary is configured, an inline data URI otherwise.
type ImageService struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewImageService builds the service; empty credentials mean inline
// storage only.
func NewImageService(cloudName, apiKey, apiSecret string) (*ImageService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return &ImageService{}, nil
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &ImageService{cld: cld, folder: "girok"}, nil
}

// StoreFromHeader reads an uploaded file and returns the string to store.
func (s *ImageService) StoreFromHeader(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader.Size > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxImageBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > MaxImageBytes {
		return "", ErrImageTooLarge
	}

	if s.cld != nil {
		result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
			Folder:       s.folder,
			ResourceType: "image",
		})
		if err != nil {
			return "", fmt.Errorf("failed to upload to Cloudinary: %w", err)
		}
		return result.SecureURL, nil
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
