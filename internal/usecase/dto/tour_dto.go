package dto

import "github.com/tour-microservice/internal/domain"

// TourRequest - полный агрегат тура из формы админки.
// Коллекции заменяют сохранённые целиком: пустой список удаляет все строки.
type TourRequest struct {
	Title              string                    `json:"titulo" validate:"required,max=200"`
	Description        string                    `json:"descripcion"`
	DurationDays       int                       `json:"duracion_dias" validate:"min=0,max=365"`
	PublishedAt        *domain.Date              `json:"fecha_publicacion,omitempty"`
	ExpiresAt          *domain.Date              `json:"fecha_caducidad,omitempty"`
	Courtesies         string                    `json:"cortesias"`
	Terms              string                    `json:"terminos"`
	CancellationPolicy string                    `json:"politica_cancelacion"`
	Slug               string                    `json:"slug,omitempty" validate:"omitempty,max=220"`
	PDFDetailsURL      *string                   `json:"pdf_detalles_url,omitempty" validate:"omitempty,url"`
	AirlineID          *int64                    `json:"aerolinea_id,omitempty" validate:"omitempty,min=1"`
	TermsConditionsID  *int64                    `json:"terminos_condiciones_id,omitempty" validate:"omitempty,min=1"`
	DestinationIDs     []int64                   `json:"destinos" validate:"dive,min=1"`
	Departures         []DepartureInput          `json:"salidas" validate:"dive"`
	Prices             []PriceInput              `json:"precios" validate:"dive"`
	Components         domain.IncludedComponents `json:"componentes"`
	GiftIDs            []int64                   `json:"regalos" validate:"dive,min=1"`
	PhotoURLs          []string                  `json:"fotos" validate:"dive,url"`
}

// DepartureInput - выезд; id=0 означает новую строку.
// Без duracion_dias выезд получает длительность тура.
type DepartureInput struct {
	ID             int64        `json:"id,omitempty" validate:"min=0"`
	DepartureDate  *domain.Date `json:"fecha_salida,omitempty"`
	DurationDays   *int         `json:"duracion_dias,omitempty" validate:"omitempty,min=0,max=365"`
	AvailableSlots *int         `json:"cupos_disponibles,omitempty" validate:"omitempty,min=0"`
}

// PriceInput - строка цены; id=0 означает новую строку
type PriceInput struct {
	ID            int64   `json:"id,omitempty" validate:"min=0"`
	DepartureCity string  `json:"ciudad_salida" validate:"required,max=120"`
	RoomType      string  `json:"tipo_habitacion" validate:"required,oneof=doble triple individual nino"`
	PaymentMethod string  `json:"forma_pago" validate:"required,oneof=efectivo tarjeta"`
	Amount        float64 `json:"precio" validate:"min=0,max=9999999999.99"`
}

// ToAggregate переводит запрос в агрегат; tour_id и порядок проставляются при сохранении
func (r *TourRequest) ToAggregate() domain.TourAggregate {
	agg := domain.TourAggregate{
		Tour: domain.Tour{
			Title:              r.Title,
			Description:        r.Description,
			DurationDays:       r.DurationDays,
			PublishedAt:        r.PublishedAt,
			ExpiresAt:          r.ExpiresAt,
			Courtesies:         r.Courtesies,
			Terms:              r.Terms,
			CancellationPolicy: r.CancellationPolicy,
			Slug:               r.Slug,
			PDFDetailsURL:      r.PDFDetailsURL,
			AirlineID:          r.AirlineID,
			TermsConditionsID:  r.TermsConditionsID,
		},
		Components: r.Components,
	}

	for _, id := range r.DestinationIDs {
		agg.Destinations = append(agg.Destinations, domain.TourDestination{DestinationID: id})
	}
	for _, d := range r.Departures {
		duration := r.DurationDays
		if d.DurationDays != nil {
			duration = *d.DurationDays
		}
		agg.Departures = append(agg.Departures, domain.Departure{
			ID:             d.ID,
			DepartureDate:  d.DepartureDate,
			DurationDays:   duration,
			AvailableSlots: d.AvailableSlots,
		})
	}
	for _, p := range r.Prices {
		agg.Prices = append(agg.Prices, domain.Price{
			ID:            p.ID,
			DepartureCity: p.DepartureCity,
			RoomType:      domain.RoomType(p.RoomType),
			PaymentMethod: domain.PaymentMethod(p.PaymentMethod),
			Amount:        p.Amount,
		})
	}
	for _, id := range r.GiftIDs {
		agg.Gifts = append(agg.Gifts, domain.TourGift{GiftID: id})
	}
	for _, url := range r.PhotoURLs {
		agg.Photos = append(agg.Photos, domain.TourPhoto{URL: url})
	}

	return agg
}

// TourSummary - карточка тура в списке
type TourSummary struct {
	ID            int64                        `json:"id"`
	Title         string                       `json:"titulo"`
	Slug          string                       `json:"slug"`
	DurationDays  int                          `json:"duracion_dias"`
	PublishedAt   *domain.Date                 `json:"fecha_publicacion,omitempty"`
	ExpiresAt     *domain.Date                 `json:"fecha_caducidad,omitempty"`
	Destinations  []domain.TourDestinationView `json:"destinos"`
	NextDeparture *domain.Date                 `json:"proxima_salida,omitempty"`
	// PriceFrom - минимальная цена; null, если цен нет
	PriceFrom  *float64 `json:"precio_desde"`
	CoverPhoto *string  `json:"foto_portada,omitempty"`
}

// TourDetail - полная карточка тура
type TourDetail struct {
	domain.Tour
	Airline         *domain.Airline              `json:"aerolinea,omitempty"`
	TermsConditions *domain.TermsAndConditions   `json:"terminos_condiciones,omitempty"`
	Destinations    []domain.TourDestinationView `json:"destinos"`
	Departures      []domain.Departure           `json:"salidas"`
	Prices          []domain.Price               `json:"precios"`
	Components      domain.IncludedComponents    `json:"componentes"`
	Gifts           []domain.TourGiftView        `json:"regalos"`
	Photos          []domain.TourPhoto           `json:"fotos"`
	PriceFrom       *float64                     `json:"precio_desde"`
}
