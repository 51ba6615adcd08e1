package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"gorm.io/gorm"
)

// logged reports a query error that does not abort the render; the page
// falls back to an empty list.
func logged(r *http.Request, tx *gorm.DB) {
	if tx.Error != nil {
		slog.ErrorContext(r.Context(), "query failed", "path", r.URL.Path, "error", tx.Error)
	}
}

// Form value parsing shared by the resource handlers. Empty values map to
// nil pointers so optional columns stay NULL.

func formUintPtr(r *http.Request, field string) *uint {
	raw := r.FormValue(field)
	if raw == "" {
		return nil
	}
	n, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return nil
	}
	v := uint(n)
	return &v
}

func formFloatPtr(r *http.Request, field string) *float64 {
	raw := r.FormValue(field)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}

func formFloat(r *http.Request, field string) float64 {
	f, _ := strconv.ParseFloat(r.FormValue(field), 64)
	return f
}

func formBool(r *http.Request, field string) bool {
	v := r.FormValue(field)
	return v == "1" || v == "true" || v == "on"
}

func pageParam(r *http.Request) (page, offset, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit = 20
	offset = (page - 1) * limit
	return page, offset, limit
}
