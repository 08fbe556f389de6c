package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	assert.Equal(t, "ASC", ValidateSortOrder("asc"))
	assert.Equal(t, "ASC", ValidateSortOrder(" ASC "))
	assert.Equal(t, "DESC", ValidateSortOrder("desc"))
	assert.Equal(t, "DESC", ValidateSortOrder(""))
	assert.Equal(t, "DESC", ValidateSortOrder("; DROP TABLE orders"))
}

func TestValidateSortField(t *testing.T) {
	assert.Equal(t, "name", ValidateSortField("name", RegionSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("", RegionSortFields, "created_at"))
	assert.Equal(t, "created_at", ValidateSortField("password", RegionSortFields, "created_at"))
	assert.Equal(t, "sale_day", ValidateSortField(" sale_day ", OrderSortFields, "created_at"))
}

func TestSearchPattern(t *testing.T) {
	assert.Equal(t, "%eu%", searchPattern(" EU "))
	assert.Equal(t, `%100\%\_x%`, searchPattern("100%_x"))
}
