package utils

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const maxThumbnailSize = 10 * 1024 * 1024

// ThumbnailUploader stocke une miniature et retourne son URL publique
type ThumbnailUploader interface {
	UploadThumbnail(ctx context.Context, file *multipart.FileHeader) (string, error)
}

// CloudinaryUploader télécharge les miniatures dans un dossier Cloudinary
type CloudinaryUploader struct {
	cld       *cloudinary.Cloudinary
	cloudName string
	folder    string
}

// NewCloudinaryUploader retourne nil, nil si les identifiants sont incomplets.
// Les miniatures doivent alors être fournies sous forme d'URL.
func NewCloudinaryUploader(cloudName, apiKey, apiSecret, folder string) (*CloudinaryUploader, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, nil
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := cld.Admin.Ping(ctx); err != nil {
		return nil, fmt.Errorf("cloudinary ping: %w", err)
	}

	return &CloudinaryUploader{cld: cld, cloudName: cloudName, folder: folder}, nil
}

func boolPointer(b bool) *bool {
	return &b
}

func isValidImageType(filename string) bool {
	validExtensions := []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".bmp", ".svg"}
	lowerFilename := strings.ToLower(filename)

	for _, ext := range validExtensions {
		if strings.HasSuffix(lowerFilename, ext) {
			return true
		}
	}
	return false
}

// ValidateThumbnail vérifie l'extension et la taille avant le téléchargement
func ValidateThumbnail(file *multipart.FileHeader) error {
	if !isValidImageType(file.Filename) {
		return fmt.Errorf("unsupported image format, use JPG, PNG, GIF, WEBP, BMP or SVG")
	}
	if file.Size > maxThumbnailSize {
		return fmt.Errorf("image too large, 10MB maximum")
	}
	return nil
}

func (u *CloudinaryUploader) UploadThumbnail(ctx context.Context, file *multipart.FileHeader) (string, error) {
	if err := ValidateThumbnail(file); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("opening thumbnail: %w", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	publicID := fmt.Sprintf("thumbnail_%d", time.Now().UnixNano())
	uploadParams := uploader.UploadParams{
		Folder:         u.folder,
		PublicID:       publicID,
		UseFilename:    boolPointer(true),
		UniqueFilename: boolPointer(true),
		Overwrite:      boolPointer(true),
		ResourceType:   "image",
	}

	result, err := u.cld.Upload.Upload(ctx, src, uploadParams)
	if err != nil {
		return "", fmt.Errorf("uploading thumbnail: %w", err)
	}

	if result.SecureURL == "" {
		if result.PublicID == "" {
			return "", fmt.Errorf("empty secure URL in cloudinary response")
		}
		return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/%s", u.cloudName, result.PublicID), nil
	}

	LogInfo("Thumbnail uploaded: " + result.SecureURL)
	return result.SecureURL, nil
}
