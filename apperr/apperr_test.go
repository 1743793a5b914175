package apperr_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wordingo/backend/apperr"
)

func Test_Status_Mapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not_found", err: apperr.NotFound("Book not found"), want: http.StatusNotFound},
		{name: "forbidden", err: apperr.Forbidden("Not authorized"), want: http.StatusForbidden},
		{name: "validation", err: apperr.ValidationMsg("bad input"), want: http.StatusBadRequest},
		{name: "duplicate", err: apperr.Duplicate("already exists"), want: http.StatusBadRequest},
		{name: "registration_closed", err: apperr.RegistrationClosed("full"), want: http.StatusBadRequest},
		{name: "not_registered", err: apperr.NotRegistered("no entry"), want: http.StatusBadRequest},
		{name: "unauthorized", err: apperr.Unauthorized("no token"), want: http.StatusUnauthorized},
		{name: "plain_error_is_server_error", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, apperr.Status(tc.err))
		})
	}
}

func Test_KindOf_UnwrapsWrappedErrors(t *testing.T) {
	wrapped := errorWrap(apperr.NotFound("Author not found"))
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(wrapped))
	assert.Equal(t, http.StatusNotFound, apperr.Status(wrapped))
}

func errorWrap(err error) error {
	return &wrapper{err: err}
}

type wrapper struct{ err error }

func (w *wrapper) Error() string { return "wrapped: " + w.err.Error() }
func (w *wrapper) Unwrap() error { return w.err }

func Test_Validation_CarriesFields(t *testing.T) {
	fields := []apperr.FieldError{
		{Field: "title", Message: "Title is required"},
		{Field: "category", Message: "Invalid category"},
	}
	err := apperr.Validation(fields)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, fields, apperr.FieldsOf(err))
	assert.Nil(t, apperr.FieldsOf(errors.New("plain")))
}
