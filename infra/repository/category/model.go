package category

// Category is an independent lookup row labelling accounts.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Tipo string `gorm:"not null;size:50"`
}

func (Category) TableName() string {
	return "categories"
}
