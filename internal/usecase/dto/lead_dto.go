package dto

// ContactRequest - форма обратной связи
type ContactRequest struct {
	Name    string  `json:"nombre" validate:"required,max=120"`
	Email   string  `json:"email" validate:"required,email,max=200"`
	Phone   *string `json:"telefono,omitempty" validate:"omitempty,max=40"`
	Message string  `json:"mensaje" validate:"required,max=4000"`
	TourID  *int64  `json:"tour_id,omitempty" validate:"omitempty,min=1"`
}
