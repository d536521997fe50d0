package domain

import "time"

// Reference - справочная сущность, выбираемая в туры и управляемая отдельно
type Reference interface {
	EntityID() int64
	// SearchText - поля, по которым работает фильтр списка в админке
	SearchText() []string
}

// Airline - авиакомпания (таблица aerolineas)
type Airline struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"nombre" db:"nombre" validate:"required,max=120"`
	IATACode  *string   `json:"codigo_iata,omitempty" db:"codigo_iata" validate:"omitempty,len=2"`
	LogoURL   *string   `json:"logo_url,omitempty" db:"logo_url" validate:"omitempty,url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (a Airline) EntityID() int64 { return a.ID }

func (a Airline) SearchText() []string {
	return []string{a.Name, deref(a.IATACode)}
}

// Destination - направление (таблица destinos)
type Destination struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"nombre" db:"nombre" validate:"required,max=120"`
	Country     *string   `json:"pais,omitempty" db:"pais"`
	Description *string   `json:"descripcion,omitempty" db:"descripcion"`
	ImageURL    *string   `json:"imagen_url,omitempty" db:"imagen_url" validate:"omitempty,url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (d Destination) EntityID() int64 { return d.ID }

func (d Destination) SearchText() []string {
	return []string{d.Name, deref(d.Country)}
}

// Gift - подарок (таблица regalos)
type Gift struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"nombre" db:"nombre" validate:"required,max=120"`
	Description *string   `json:"descripcion,omitempty" db:"descripcion"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

func (g Gift) EntityID() int64 { return g.ID }

func (g Gift) SearchText() []string {
	return []string{g.Name, deref(g.Description)}
}

// TermsAndConditions - условия, на которые ссылается тур
type TermsAndConditions struct {
	ID        int64     `json:"id" db:"id"`
	Title     string    `json:"titulo" db:"titulo" validate:"required,max=200"`
	Content   string    `json:"contenido" db:"contenido" validate:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (t TermsAndConditions) EntityID() int64 { return t.ID }

func (t TermsAndConditions) SearchText() []string {
	return []string{t.Title}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
