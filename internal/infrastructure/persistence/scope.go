package persistence

import (
	"fmt"
	"strings"

	"github.com/rentops/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilter applies ordering, search-independent filters and
// pagination to a query
func applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = applyOrdering(query, filter)
	return applyPagination(query, filter)
}

// applyOrdering applies the filter's order clause. The column name is
// sanitized to bare identifiers so user input cannot inject SQL.
func applyOrdering(query *gorm.DB, filter shared.Filter) *gorm.DB {
	column := sanitizeColumn(filter.OrderBy)
	if column == "" {
		return query
	}
	direction := "DESC"
	if strings.EqualFold(filter.OrderDir, "asc") {
		direction = "ASC"
	}
	return query.Order(fmt.Sprintf("%s %s", column, direction))
}

// applyPagination applies page offsets when both page and page size
// are set
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

func sanitizeColumn(column string) string {
	for _, r := range column {
		valid := r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !valid {
			return ""
		}
	}
	return column
}
