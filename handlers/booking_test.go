package handlers

import (
	"errors"
	"net/http"
	"testing"

	"salonbook/services/booking"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", booking.NewValidationError(booking.CodeInvalidInput, "bad input"), http.StatusBadRequest},
		{"not found", booking.NewNotFoundError(booking.CodeBookingNotFound, "gone"), http.StatusNotFound},
		{"authorization", booking.NewAuthorizationError("not yours"), http.StatusForbidden},
		{"resource exhausted", booking.NewResourceExhaustedError("all busy"), http.StatusConflict},
		{"lifecycle conflict", booking.NewConflictError(booking.CodeLifecycleGuard, "too late"), http.StatusConflict},
		{"concurrent update", booking.NewConflictError(booking.CodeConcurrentUpdate, "retry"), http.StatusConflict},
		{"storage", booking.NewStorageError("db down", errors.New("io timeout")), http.StatusInternalServerError},
		{"untyped", errors.New("who knows"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
