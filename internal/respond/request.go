package respond

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "smartfinance/internal/errors"
)

// PathID parses the positive integer route parameter name.
func PathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid "+name, apperrors.ValidationDetail{
			Field:   name,
			Message: name + " must be a positive integer",
		})
	}
	return id, nil
}

// DecodeJSON reads the request body into dst. An empty body is rejected.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		message := "request body must be valid JSON"
		if errors.Is(err, io.EOF) {
			message = "request body must not be empty"
		}
		return apperrors.NewValidationError("invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: message,
		})
	}
	return nil
}

// Page reads limit and offset query parameters. Missing values are zero,
// which repositories treat as unbounded.
func Page(r *http.Request) (limit, offset int, err error) {
	var details []apperrors.ValidationDetail

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 || limit > 1000 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "limit",
				Message: "limit must be between 0 and 1000",
			})
		}
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			details = append(details, apperrors.ValidationDetail{
				Field:   "offset",
				Message: "offset must be a non-negative integer",
			})
		}
	}

	if len(details) > 0 {
		return 0, 0, apperrors.NewValidationError("invalid pagination", details...)
	}
	return limit, offset, nil
}
