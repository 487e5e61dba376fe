package dto

// CategoryCreate represents the data needed to create a category.
type CategoryCreate struct {
	Tipo string `json:"tipo" validate:"required,max=50"`
}

// CategoryUpdate represents the fields that can be changed on a category.
type CategoryUpdate struct {
	Tipo *string `json:"tipo,omitempty" validate:"omitempty,max=50"`
}

// CategoryRead is a read-optimized view of a category.
type CategoryRead struct {
	ID   uint   `json:"id"`
	Tipo string `json:"tipo"`
}
