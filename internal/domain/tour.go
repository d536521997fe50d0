package domain

import (
	"math"
	"time"
)

// RoomType - тип размещения в строке цены
type RoomType string

const (
	RoomDouble     RoomType = "doble"
	RoomTriple     RoomType = "triple"
	RoomIndividual RoomType = "individual"
	RoomChild      RoomType = "nino"
)

// Valid проверяет, что тип размещения из допустимого набора
func (r RoomType) Valid() bool {
	switch r {
	case RoomDouble, RoomTriple, RoomIndividual, RoomChild:
		return true
	}
	return false
}

// PaymentMethod - форма оплаты в строке цены
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "efectivo"
	PaymentCard PaymentMethod = "tarjeta"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentCard
}

// Tour - корневая сущность агрегата (таблица tours)
type Tour struct {
	ID                 int64     `json:"id" db:"id"`
	Title              string    `json:"titulo" db:"titulo"`
	Description        string    `json:"descripcion" db:"descripcion"`
	DurationDays       int       `json:"duracion_dias" db:"duracion_dias"`
	PublishedAt        *Date     `json:"fecha_publicacion,omitempty" db:"fecha_publicacion"`
	ExpiresAt          *Date     `json:"fecha_caducidad,omitempty" db:"fecha_caducidad"`
	Courtesies         string    `json:"cortesias" db:"cortesias"`
	Terms              string    `json:"terminos" db:"terminos"`
	CancellationPolicy string    `json:"politica_cancelacion" db:"politica_cancelacion"`
	Slug               string    `json:"slug" db:"slug"`
	PDFDetailsURL      *string   `json:"pdf_detalles_url,omitempty" db:"pdf_detalles_url"`
	AirlineID          *int64    `json:"aerolinea_id,omitempty" db:"aerolinea_id"`
	TermsConditionsID  *int64    `json:"terminos_condiciones_id,omitempty" db:"terminos_condiciones_id"`
	CreatedAt          time.Time `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time `json:"updated_at" db:"updated_at"`
}

// IsListed - тур опубликован и не истёк на дату today
func (t *Tour) IsListed(today Date) bool {
	if t.PublishedAt != nil && t.PublishedAt.After(today.Time) {
		return false
	}
	if t.ExpiresAt != nil && t.ExpiresAt.Before(today.Time) {
		return false
	}
	return true
}

// TourDestination - связь тура с направлением и её позиция (1..N)
type TourDestination struct {
	ID            int64 `json:"id" db:"id"`
	TourID        int64 `json:"tour_id" db:"tour_id"`
	DestinationID int64 `json:"destino_id" db:"destino_id"`
	Order         int   `json:"orden" db:"orden"`
}

// Departure - конкретный выезд тура (таблица salidas)
type Departure struct {
	ID             int64 `json:"id" db:"id"`
	TourID         int64 `json:"tour_id" db:"tour_id"`
	DepartureDate  *Date `json:"fecha_salida,omitempty" db:"fecha_salida"`
	DurationDays   int   `json:"duracion_dias" db:"duracion_dias"`
	AvailableSlots *int  `json:"cupos_disponibles,omitempty" db:"cupos_disponibles"`
}

// SameAs сравнивает изменяемые поля выезда
func (d Departure) SameAs(o Departure) bool {
	if !SameDate(d.DepartureDate, o.DepartureDate) || d.DurationDays != o.DurationDays {
		return false
	}
	if d.AvailableSlots == nil || o.AvailableSlots == nil {
		return d.AvailableSlots == nil && o.AvailableSlots == nil
	}
	return *d.AvailableSlots == *o.AvailableSlots
}

// Price - строка цены; дубликаты по (город, размещение, оплата) допустимы
type Price struct {
	ID            int64         `json:"id" db:"id"`
	TourID        int64         `json:"tour_id" db:"tour_id"`
	DepartureCity string        `json:"ciudad_salida" db:"ciudad_salida"`
	RoomType      RoomType      `json:"tipo_habitacion" db:"tipo_habitacion"`
	PaymentMethod PaymentMethod `json:"forma_pago" db:"forma_pago"`
	// Amount - NUMERIC(12,2). Значения из 12 значащих цифр переживают float64 без потерь,
	// над ценами выполняются только сравнения и минимум.
	Amount float64 `json:"precio" db:"precio"`
}

// MaxPriceAmount - верхняя граница NUMERIC(12,2)
const MaxPriceAmount = 9999999999.99

// FitsNumeric - сумма помещается в NUMERIC(12,2) без округления
func (p Price) FitsNumeric() bool {
	if p.Amount < 0 || p.Amount > MaxPriceAmount {
		return false
	}
	cents := p.Amount * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

func (p Price) SameAs(o Price) bool {
	return p.DepartureCity == o.DepartureCity &&
		p.RoomType == o.RoomType &&
		p.PaymentMethod == o.PaymentMethod &&
		p.Amount == o.Amount
}

// IncludedComponents - ровно одна строка на тур (таблица componentes_incluidos)
type IncludedComponents struct {
	TourID       int64 `json:"-" db:"tour_id"`
	Flight       bool  `json:"incluye_vuelo" db:"incluye_vuelo"`
	Hotel        bool  `json:"incluye_hotel" db:"incluye_hotel"`
	Transport    bool  `json:"incluye_transporte" db:"incluye_transporte"`
	Food         bool  `json:"incluye_comida" db:"incluye_comida"`
	Activities   bool  `json:"incluye_actividades" db:"incluye_actividades"`
	Baggage10kg  bool  `json:"incluye_maleta_10kg" db:"incluye_maleta_10kg"`
	Baggage23kg  bool  `json:"incluye_maleta_23kg" db:"incluye_maleta_23kg"`
	PersonalItem bool  `json:"incluye_articulo_personal" db:"incluye_articulo_personal"`
}

// TourGift - подарок, выбранный для тура
type TourGift struct {
	ID     int64 `json:"id" db:"id"`
	TourID int64 `json:"tour_id" db:"tour_id"`
	GiftID int64 `json:"regalo_id" db:"regalo_id"`
}

// TourPhoto - фото тура в галерее
type TourPhoto struct {
	ID     int64  `json:"id" db:"id"`
	TourID int64  `json:"tour_id" db:"tour_id"`
	URL    string `json:"url" db:"url"`
	Order  int    `json:"orden" db:"orden"`
}

// TourAggregate - тур со всеми дочерними коллекциями, сохраняется как единое целое
type TourAggregate struct {
	Tour         Tour
	Destinations []TourDestination
	Departures   []Departure
	Prices       []Price
	Components   IncludedComponents
	Gifts        []TourGift
	Photos       []TourPhoto
}

// Stamp проставляет tour_id во все дочерние строки и нумерует направления и фото
// по позиции в списке, начиная с 1.
func (a *TourAggregate) Stamp(tourID int64) {
	a.Tour.ID = tourID
	for i := range a.Destinations {
		a.Destinations[i].TourID = tourID
		a.Destinations[i].Order = i + 1
	}
	for i := range a.Departures {
		a.Departures[i].TourID = tourID
	}
	for i := range a.Prices {
		a.Prices[i].TourID = tourID
	}
	a.Components.TourID = tourID
	for i := range a.Gifts {
		a.Gifts[i].TourID = tourID
	}
	for i := range a.Photos {
		a.Photos[i].TourID = tourID
		a.Photos[i].Order = i + 1
	}
}

// LowestPrice возвращает минимальную цену; ok=false для пустого набора
func LowestPrice(prices []Price) (lowest float64, ok bool) {
	for i, p := range prices {
		if i == 0 || p.Amount < lowest {
			lowest = p.Amount
		}
	}
	return lowest, len(prices) > 0
}

// TourFilter - параметры выборки списка туров
type TourFilter struct {
	Search        string
	DestinationID int64
	// OnlyListed скрывает неопубликованные и истёкшие туры на дату Today
	OnlyListed bool
	Today      Date
	Limit      int
	Offset     int
}

// TourDestinationView - направление тура с названием для витрины
type TourDestinationView struct {
	TourID        int64   `json:"-" db:"tour_id"`
	DestinationID int64   `json:"destino_id" db:"destino_id"`
	Name          string  `json:"nombre" db:"nombre"`
	Country       *string `json:"pais,omitempty" db:"pais"`
	Order         int     `json:"orden" db:"orden"`
}

// TourGiftView - подарок тура с названием
type TourGiftView struct {
	TourID int64  `json:"-" db:"tour_id"`
	GiftID int64  `json:"regalo_id" db:"regalo_id"`
	Name   string `json:"nombre" db:"nombre"`
}
