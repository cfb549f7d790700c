package listings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gearshare-backend/internal/domain"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// SearchIndex is the derived text/geo mirror of listings. Put and Delete are
// best-effort mirrors of record-store mutations; there is no transaction
// spanning both stores.
type SearchIndex interface {
	Put(ctx context.Context, doc SearchDocument) error
	Delete(ctx context.Context, docID string) error
	Query(ctx context.Context, q string, opts SearchOptions) (*SearchResult, error)
}

const listingCacheKeyPrefix = "listing:"
const listingCacheTTL = 5 * time.Minute

// Service orchestrates listing mutations across the record store (authoritative)
// and the search index (mirror). Rdb is an optional read cache; nil disables it.
type Service struct {
	DB    *gorm.DB
	Index SearchIndex
	Rdb   *redis.Client
}

type CreateListingInput struct {
	OwnerID         int64
	CategoryID      int64
	Name            string
	ItemDescription string
	TotalValue      float64
	HourlyRate      float64
	DailyRate       float64
	WeeklyRate      float64
}

// CreateListing validates the owner, persists the listing, then mirrors it
// into the search index. The record-store write always precedes the index
// write: a listing must exist before it is advertised as searchable. An index
// failure after a successful record write is surfaced to the caller but the
// record is NOT rolled back.
func (s *Service) CreateListing(ctx context.Context, in CreateListingInput) (*domain.Listing, error) {
	var owner domain.User
	if err := s.DB.WithContext(ctx).First(&owner, in.OwnerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: look up user %d: %v", domain.ErrStorageWrite, in.OwnerID, err)
	}

	now := time.Now()
	listing := &domain.Listing{
		OwnerID:          in.OwnerID,
		CategoryID:       in.CategoryID,
		Status:           domain.StatusAvailable,
		Name:             in.Name,
		ItemDescription:  in.ItemDescription,
		Rating:           domain.RatingUnrated,
		TotalValue:       in.TotalValue,
		HourlyRate:       in.HourlyRate,
		DailyRate:        in.DailyRate,
		WeeklyRate:       in.WeeklyRate,
		LocationLat:      owner.LastKnownLat,
		LocationLon:      owner.LastKnownLon,
		DateCreated:      now,
		DateLastModified: now,
	}

	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}

	doc := SearchDocument{
		ID:      strconv.FormatInt(listing.ID, 10),
		Name:    listing.Name,
		OwnerID: strconv.FormatInt(listing.OwnerID, 10),
		Geo:     GeoPoint{Lat: listing.LocationLat, Lng: listing.LocationLon},
	}
	if err := s.Index.Put(ctx, doc); err != nil {
		// Record exists but is not searchable. Accepted inconsistency window;
		// still reported to the caller as a failure.
		return nil, fmt.Errorf("%w: listing %d: %v", domain.ErrSearchWrite, listing.ID, err)
	}

	return listing, nil
}

// DeleteListing soft-deletes a listing. The search document is removed first,
// before the record is even looked up: a vanished search document with a live
// record is the lesser defect compared to a deleted record that stays
// searchable. Deleting an already-deleted listing re-persists the status with
// a refreshed timestamp.
func (s *Service) DeleteListing(ctx context.Context, listingID int64) (*domain.Listing, error) {
	docID := strconv.FormatInt(listingID, 10)
	if err := s.Index.Delete(ctx, docID); err != nil {
		return nil, fmt.Errorf("%w: listing %d: %v", domain.ErrSearchDelete, listingID, err)
	}

	var listing domain.Listing
	if err := s.DB.WithContext(ctx).First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, fmt.Errorf("%w: look up listing %d: %v", domain.ErrStorageWrite, listingID, err)
	}

	listing.Status = domain.StatusDeleted
	listing.DateLastModified = time.Now()
	if err := s.DB.WithContext(ctx).Save(&listing).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageWrite, err)
	}

	s.invalidateCache(ctx, listing.ID)
	return &listing, nil
}

// GetListing fetches a listing by ID through the read cache.
func (s *Service) GetListing(ctx context.Context, listingID int64) (*domain.Listing, error) {
	key := listingCacheKeyPrefix + strconv.FormatInt(listingID, 10)
	if s.Rdb != nil {
		if raw, err := s.Rdb.Get(ctx, key).Bytes(); err == nil {
			var cached domain.Listing
			if err := json.Unmarshal(raw, &cached); err == nil {
				return &cached, nil
			}
			_ = s.Rdb.Del(ctx, key).Err()
		}
	}

	var listing domain.Listing
	if err := s.DB.WithContext(ctx).First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrListingNotFound
		}
		return nil, err
	}

	if s.Rdb != nil {
		if raw, err := json.Marshal(&listing); err == nil {
			_ = s.Rdb.Set(ctx, key, raw, listingCacheTTL).Err()
		}
	}
	return &listing, nil
}

// Search queries the search index. Read-only; never touches the record store.
func (s *Service) Search(ctx context.Context, q string, opts SearchOptions) (*SearchResult, error) {
	return s.Index.Query(ctx, q, opts)
}

func (s *Service) invalidateCache(ctx context.Context, listingID int64) {
	if s.Rdb == nil {
		return
	}
	key := listingCacheKeyPrefix + strconv.FormatInt(listingID, 10)
	_ = s.Rdb.Del(ctx, key).Err()
}
