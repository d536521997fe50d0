package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/tour-microservice/internal/domain"
)

// Ключи кеша витрины туров. Все начинаются с "tour", чтобы справочники
// могли сбросить их одним префиксом.
const (
	tourCachePrefix     = "tour"
	tourListCachePrefix = "tours:list:"
)

func tourSlugKey(slug string) string {
	return "tour:slug:" + slug
}

func tourIDKey(id int64) string {
	return "tour:id:" + strconv.FormatInt(id, 10)
}

// tourListKey - хеш фильтра; дата входит в фильтр, поэтому ключ меняется каждый день
func tourListKey(filter domain.TourFilter) string {
	raw, _ := json.Marshal(struct {
		Search        string `json:"s"`
		DestinationID int64  `json:"d"`
		OnlyListed    bool   `json:"l"`
		Today         string `json:"t"`
		Limit         int    `json:"n"`
		Offset        int    `json:"o"`
	}{
		filter.Search, filter.DestinationID, filter.OnlyListed,
		filter.Today.String(), filter.Limit, filter.Offset,
	})
	return fmt.Sprintf("%s%016x", tourListCachePrefix, xxhash.Sum64(raw))
}
