package helpers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/unidesk/internal/query"
)

// ParseCriteria reads the list query parameters: q, from, to, sortBy, sortOrder and
// one parameter per name in filters
func ParseCriteria(c *gin.Context, filters []string) query.Criteria {
	criteria := query.Criteria{
		Query:     strings.TrimSpace(c.Query("q")),
		From:      c.Query("from"),
		To:        c.Query("to"),
		SortBy:    c.Query("sortBy"),
		SortOrder: c.DefaultQuery("sortOrder", query.SortAsc),
		Filters:   make(map[string]string),
	}
	for _, name := range filters {
		if v, ok := c.GetQuery(name); ok {
			criteria.Filters[name] = v
		}
	}
	return criteria
}

// QueryInt parses an integer query parameter, returning def when absent or invalid
func QueryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return def
	}
	return v
}
