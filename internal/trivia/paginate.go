package trivia

import (
	"fmt"
	"strconv"
)

// Paginate returns the 1-indexed page of items. Pages past the end, and any
// page below 1, are empty.
func Paginate[T any](items []T, page int) []T {
	pages := (len(items) + PageSize - 1) / PageSize
	if page < 1 || page > pages {
		return []T{}
	}
	start := (page - 1) * PageSize
	end := min(start+PageSize, len(items))
	return items[start:end]
}

// ParsePage reads the page query parameter. An empty value means page 1.
func ParsePage(raw string) (int, error) {
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newError(KindBadRequest, "parse page", err)
	}
	if page < 1 {
		return 0, newError(KindBadRequest, "parse page", fmt.Errorf("page %d out of range", page))
	}
	return page, nil
}
