package images

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gearshare-backend/internal/domain"

	"gorm.io/gorm"
)

// ContentType is fixed for listing images on upload.
const ContentType = "image/jpeg"

// BlobStore stores named binary objects under a bucket configured at
// construction time.
type BlobStore interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (link string, err error)
	SetPublic(ctx context.Context, path string) error
	Delete(ctx context.Context, path string) error
}

// Service attaches and detaches listing images. Images live only in the blob
// store; the listing record keeps no back-reference to them.
type Service struct {
	DB   *gorm.DB
	Blob BlobStore
}

// AttachImage uploads an image for a listing at "{listing_id}/{filename}" and
// makes it publicly readable. The listing must exist; that check happens
// before any blob call.
func (s *Service) AttachImage(ctx context.Context, listingID int64, filename string, data []byte) (string, string, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", domain.ErrListingNotFound
		}
		return "", "", fmt.Errorf("%w: look up listing %d: %v", domain.ErrStorageWrite, listingID, err)
	}

	path := fmt.Sprintf("%d/%s", listingID, filename)
	link, err := s.Blob.Upload(ctx, path, data, ContentType)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrBlobWrite, err)
	}
	if err := s.Blob.SetPublic(ctx, path); err != nil {
		return "", "", fmt.Errorf("%w: %v", domain.ErrBlobWrite, err)
	}
	return path, link, nil
}

// DetachImage deletes the blob at path. No existence check is made first and
// no listing state is touched; deleting an absent path counts as success.
func (s *Service) DetachImage(ctx context.Context, path string) (string, time.Time, error) {
	if err := s.Blob.Delete(ctx, path); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: %v", domain.ErrBlobDelete, err)
	}
	return path, time.Now(), nil
}
