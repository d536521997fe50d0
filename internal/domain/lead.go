package domain

import "time"

// Locale - язык интерфейса, переданный клиентом
type Locale string

const (
	LocaleES Locale = "es"
	LocaleEN Locale = "en"
)

// ParseLocale возвращает поддерживаемый язык, по умолчанию испанский
func ParseLocale(s string) Locale {
	if len(s) >= 2 && (s[:2] == "en" || s[:2] == "EN") {
		return LocaleEN
	}
	return LocaleES
}

// Lead - заявка из контактной формы
type Lead struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"nombre" db:"nombre"`
	Email     string    `json:"email" db:"email"`
	Phone     *string   `json:"telefono,omitempty" db:"telefono"`
	Message   string    `json:"mensaje" db:"mensaje"`
	TourID    *int64    `json:"tour_id,omitempty" db:"tour_id"`
	Locale    Locale    `json:"idioma" db:"idioma"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
