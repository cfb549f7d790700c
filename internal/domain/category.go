package domain

// Category groups listings. Referenced by ID from Listing; the create path
// validates the ID parses but does not require the row to exist yet.
type Category struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"category_id"`
	Name string `gorm:"column:name;not null" json:"name"`
}

func (Category) TableName() string {
	return "categories"
}
