package persistence

import (
	"strings"

	"github.com/rationshop/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// Allowed sort columns per table. Anything else falls back to created_at.
var (
	RegionSortFields = map[string]bool{
		"created_at":  true,
		"updated_at":  true,
		"name":        true,
		"daily_limit": true,
	}
	ProductSortFields = map[string]bool{
		"created_at": true,
		"name":       true,
		"price":      true,
	}
	CartSortFields = map[string]bool{
		"created_at": true,
		"updated_at": true,
		"status":     true,
	}
	OrderSortFields = map[string]bool{
		"created_at":   true,
		"sale_day":     true,
		"status":       true,
		"total_amount": true,
	}
)

// ValidateSortOrder normalizes the sort direction, defaulting to DESC
func ValidateSortOrder(orderDir string) string {
	if strings.ToUpper(strings.TrimSpace(orderDir)) == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField if whitelisted, otherwise defaultField
func ValidateSortField(sortField string, allowed map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowed[trimmed] {
		return trimmed
	}
	return defaultField
}

// applyPaging adds a whitelisted ORDER BY plus OFFSET/LIMIT for filter
func applyPaging(query *gorm.DB, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, allowed, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// searchPattern builds a case-insensitive LIKE pattern, escaping wildcards
func searchPattern(search string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + strings.ToLower(r.Replace(strings.TrimSpace(search))) + "%"
}
