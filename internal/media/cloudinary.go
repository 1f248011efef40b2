package media

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"easybooking/internal/utils"
)

// Uploader promotes a staged local file to durable storage and returns its
// public URL.
type Uploader interface {
	Upload(ctx context.Context, localPath, resourceType, folder string) (string, error)
}

type cloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryUploader(cloudName, apiKey, apiSecret string) (Uploader, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("missing Cloudinary configuration (CLOUD_NAME, CLOUDINARY_API_KEY, CLOUDINARY_SECRET_KEY)")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	cld.Config.URL.Secure = true
	return &cloudinaryUploader{cld: cld}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, localPath, resourceType, folder string) (string, error) {
	status := "success"
	start := time.Now()
	defer func() {
		utils.MediaUploadDurationSeconds.WithLabelValues(resourceType, status).Observe(time.Since(start).Seconds())
		utils.MediaUploadsTotal.WithLabelValues(resourceType, status).Inc()
	}()

	resp, err := u.cld.Upload.Upload(ctx, localPath, uploader.UploadParams{
		ResourceType: resourceType,
		Folder:       folder,
	})
	if err != nil {
		status = "error"
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if resp.Error.Message != "" {
		status = "error"
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
