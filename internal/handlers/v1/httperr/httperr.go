// Package httperr maps core errors onto huma status errors so every handler
// translates failures the same way: validation rejections become 400s, missing
// rows 404s, anything else a 500 that keeps the cause for the log line.
package httperr

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/ledgerline/books-server/internal/books"
	"github.com/ledgerline/books-server/internal/store"
)

func Map(err error, message string) error {
	switch {
	case errors.Is(err, books.ErrValidation):
		return huma.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return huma.NewError(http.StatusNotFound, message)
	default:
		return huma.NewError(http.StatusInternalServerError, message, err)
	}
}
