package domain

import "time"

// User is a marketplace account. Only the fields the listing service reads are
// modelled; account management lives elsewhere.
type User struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement" json:"user_id"`
	Name             string    `gorm:"column:name" json:"name"`
	Email            string    `gorm:"column:email" json:"email"`
	LastKnownLat     float64   `gorm:"column:last_known_lat" json:"last_known_lat"`
	LastKnownLon     float64   `gorm:"column:last_known_lon" json:"last_known_lon"`
	DateCreated      time.Time `gorm:"column:date_created;autoCreateTime" json:"date_created"`
	DateLastModified time.Time `gorm:"column:date_last_modified;autoUpdateTime" json:"date_last_modified"`
}

func (User) TableName() string {
	return "users"
}
