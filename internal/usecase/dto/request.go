package dto

const (
	// DefaultPageLimit - размер страницы, если limit не передан
	DefaultPageLimit = 20
	// MaxPageLimit - верхняя граница limit
	MaxPageLimit = 100
)

// PageRequest - параметры постраничной выборки
type PageRequest struct {
	Limit  int `query:"limit" validate:"omitempty,min=1,max=100"`
	Offset int `query:"offset" validate:"omitempty,min=0"`
}

// EffectiveLimit - limit, который реально применит выборка
func (p PageRequest) EffectiveLimit() int {
	switch {
	case p.Limit <= 0:
		return DefaultPageLimit
	case p.Limit > MaxPageLimit:
		return MaxPageLimit
	default:
		return p.Limit
	}
}

// ReferenceListRequest - фильтр списка справочника в админке
type ReferenceListRequest struct {
	Query string `query:"q" validate:"omitempty,max=100"`
}

// TourListRequest - фильтр списка туров
type TourListRequest struct {
	PageRequest
	Search        string `query:"q" validate:"omitempty,max=100"`
	DestinationID int64  `query:"destino_id" validate:"omitempty,min=1"`
	// IncludeExpired показывает неопубликованные и истёкшие туры (только админка)
	IncludeExpired bool `query:"-"`
}

// PostListRequest - фильтр списка записей блога
type PostListRequest struct {
	PageRequest
	Tag    string `query:"tag" validate:"omitempty,max=100"`
	Search string `query:"q" validate:"omitempty,max=100"`
	// IncludeDrafts - админка видит неопубликованные записи
	IncludeDrafts bool `query:"-"`
}
