package domain

import "time"

// ListingStatus is the lifecycle state of a listing. The only transition the
// service performs is Available -> Deleted (soft delete).
type ListingStatus string

const (
	StatusAvailable ListingStatus = "Available"
	StatusDeleted   ListingStatus = "Deleted"
)

// RatingUnrated is the sentinel rating for a listing nobody has rated yet.
const RatingUnrated = -1.0

// Listing is a rentable item record. The record store assigns ID on create;
// the search index holds a derived projection keyed by the stringified ID.
type Listing struct {
	ID              int64         `gorm:"column:id;primaryKey;autoIncrement" json:"listing_id"`
	OwnerID         int64         `gorm:"column:owner_id;not null" json:"owner_id"`
	CategoryID      int64         `gorm:"column:category_id;not null" json:"category_id"`
	Status          ListingStatus `gorm:"column:status;type:varchar(20);not null" json:"status"`
	Name            string        `gorm:"column:name;not null" json:"name"`
	ItemDescription string        `gorm:"column:item_description" json:"item_description"`
	Rating          float64       `gorm:"column:rating" json:"rating"`
	TotalValue      float64       `gorm:"column:total_value" json:"total_value"`
	HourlyRate      float64       `gorm:"column:hourly_rate" json:"hourly_rate"`
	DailyRate       float64       `gorm:"column:daily_rate" json:"daily_rate"`
	WeeklyRate      float64       `gorm:"column:weekly_rate" json:"weekly_rate"`
	// Location is copied from the owner's last known location at creation
	// time and is not independently settable.
	LocationLat      float64   `gorm:"column:location_lat" json:"location_lat"`
	LocationLon      float64   `gorm:"column:location_lon" json:"location_lon"`
	DateCreated      time.Time `gorm:"column:date_created;autoCreateTime" json:"date_created"`
	DateLastModified time.Time `gorm:"column:date_last_modified" json:"date_last_modified"`
}

func (Listing) TableName() string {
	return "listings"
}
