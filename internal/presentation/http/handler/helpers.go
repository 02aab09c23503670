package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/boutique-api/internal/presentation/http/middleware"
	"github.com/sangkips/boutique-api/pkg/apperror"
	"github.com/sangkips/boutique-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// GetUserID extracts the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) string {
	return c.GetString(middleware.UserIDKey)
}

// paginationParams reads page and per_page from the query string
func paginationParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}

// recordID returns the path value when it is a record UUID rather than a
// bill number or phone.
func recordID(c *gin.Context, name string) (string, bool) {
	raw := c.Param(name)
	if _, err := uuid.Parse(raw); err != nil {
		return "", false
	}
	return raw, true
}

// billNoParam parses the :billNo path parameter
func billNoParam(c *gin.Context) (int64, error) {
	billNo, err := strconv.ParseInt(c.Param("billNo"), 10, 64)
	if err != nil || billNo < 1 {
		return 0, apperror.NewFieldError("bill_no", "must be a positive integer")
	}
	return billNo, nil
}

// dateQuery parses an optional YYYY-MM-DD query value in loc. The second
// return is false when the value is absent.
func dateQuery(c *gin.Context, name string, loc *time.Location) (time.Time, bool, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, false, nil
	}
	t, err := time.ParseInLocation(dateLayout, raw, loc)
	if err != nil {
		return time.Time{}, false, apperror.NewFieldError(name, "must be a date in YYYY-MM-DD format")
	}
	return t, true, nil
}
