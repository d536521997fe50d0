package dto

// ListResponse - страница элементов и общее количество
type ListResponse[T any] struct {
	Items  []T `json:"items"`
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// IDResponse - идентификатор созданной или обновлённой записи
type IDResponse struct {
	ID int64 `json:"id"`
}

// NewListResponse нормализует nil в пустой срез, чтобы в JSON был []
func NewListResponse[T any](items []T, total, limit, offset int) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: total, Limit: limit, Offset: offset}
}
