package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamLeadCreated = "stream:lead:created"
)

// StreamMessage - сообщение, прочитанное из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}

// LeadCreatedEvent - событие о новой заявке для воркера уведомлений
type LeadCreatedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	LeadID     int64     `json:"lead_id"`
	Name       string    `json:"nombre"`
	Email      string    `json:"email"`
	Phone      *string   `json:"telefono,omitempty"`
	Message    string    `json:"mensaje"`
	TourID     *int64    `json:"tour_id,omitempty"`
	TourTitle  *string   `json:"tour_titulo,omitempty"`
	Locale     Locale    `json:"idioma"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewLeadCreatedEvent собирает событие из сохранённой заявки
func NewLeadCreatedEvent(lead *Lead, tourTitle *string) LeadCreatedEvent {
	return LeadCreatedEvent{
		EventID:    uuid.New(),
		LeadID:     lead.ID,
		Name:       lead.Name,
		Email:      lead.Email,
		Phone:      lead.Phone,
		Message:    lead.Message,
		TourID:     lead.TourID,
		TourTitle:  tourTitle,
		Locale:     lead.Locale,
		OccurredAt: lead.CreatedAt,
	}
}
