package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/laptop-advisor/internal/engine"
	"github.com/donaldgifford/laptop-advisor/pkg/catalog"
)

// apiError maps engine errors to HTTP errors. An empty or missing catalog
// is 503 so clients retry; invalid preferences are 422.
func apiError(op string, err error) error {
	switch {
	case errors.Is(err, catalog.ErrNoData):
		return huma.Error503ServiceUnavailable(op + ": catalog has no usable listings")
	case errors.Is(err, engine.ErrInvalidPreferences):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError(op + " failed: " + err.Error())
	}
}
