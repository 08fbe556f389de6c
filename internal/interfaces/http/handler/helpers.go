package handler

import "github.com/rationshop/backend/internal/domain/shared"

func pageOrDefault(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func pageSizeOrDefault(pageSize int) int {
	if pageSize < 1 {
		return shared.DefaultFilter().PageSize
	}
	return pageSize
}
