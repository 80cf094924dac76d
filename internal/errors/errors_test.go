package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsMapToStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		code int
		typ  ErrorType
	}{
		{"validation", NewValidationError("bad", nil), http.StatusBadRequest, ErrorTypeValidation},
		{"not found", NewNotFoundError("missing", nil), http.StatusNotFound, ErrorTypeNotFound},
		{"auth", NewAuthError("who", nil), http.StatusUnauthorized, ErrorTypeAuth},
		{"authorization", NewAuthorizationError("no", nil), http.StatusForbidden, ErrorTypeAuthorize},
		{"database", NewDatabaseError("db", nil), http.StatusInternalServerError, ErrorTypeDatabase},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError, ErrorTypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Expected code %d, got %d", tt.code, tt.err.Code)
			}
			if tt.err.Type != tt.typ {
				t.Errorf("Expected type %s, got %s", tt.typ, tt.err.Type)
			}
		})
	}
}

func TestPredicatesSeeThroughWrapping(t *testing.T) {
	base := NewNotFoundError("station not found", nil)
	wrapped := fmt.Errorf("loading station: %w", base)

	if !IsNotFound(wrapped) {
		t.Error("Expected wrapped not-found error to be detected")
	}
	if IsValidation(wrapped) {
		t.Error("Did not expect a validation error")
	}
	if IsAuth(nil) || IsAuthorization(nil) || IsDatabase(nil) {
		t.Error("Expected nil error to match no type")
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := stderrors.New("unique violation")
	err := NewDatabaseError("failed to create station", cause)

	if !stderrors.Is(err, cause) {
		t.Error("Expected errors.Is to reach the internal cause")
	}
}

func TestAsWrapsForeignErrors(t *testing.T) {
	if As(nil) != nil {
		t.Error("Expected nil for nil error")
	}

	plain := stderrors.New("plain")
	apiErr := As(plain)
	if apiErr.Type != ErrorTypeInternal {
		t.Errorf("Expected internal error, got %s", apiErr.Type)
	}

	forbidden := NewAuthorizationError("admin access required", nil)
	if As(fmt.Errorf("ctx: %w", forbidden)) != forbidden {
		t.Error("Expected As to return the original APIError")
	}
}
