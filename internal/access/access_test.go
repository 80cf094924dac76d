package access

import (
	"testing"

	"github.com/itsatony/stationhub/internal/errors"
)

func TestRequireAuthenticated(t *testing.T) {
	if err := RequireAuthenticated(nil); !errors.IsAuth(err) {
		t.Errorf("nil actor: expected auth error, got %v", err)
	}
	if err := RequireAuthenticated(&Actor{}); !errors.IsAuth(err) {
		t.Errorf("anonymous actor: expected auth error, got %v", err)
	}
	if err := RequireAuthenticated(&Actor{ID: "usr_1"}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	tests := []struct {
		name     string
		actor    *Actor
		wantCode int
	}{
		{"unauthenticated", nil, 401},
		{"regular user", &Actor{ID: "usr_1", Username: "ana"}, 403},
		{"admin", &Actor{ID: "usr_2", Username: "root", IsAdmin: true}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireAdmin(tt.actor)
			if tt.wantCode == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			apiErr := errors.As(err)
			if apiErr == nil || apiErr.Code != tt.wantCode {
				t.Fatalf("expected code %d, got %v", tt.wantCode, err)
			}
		})
	}
}

func TestRoles(t *testing.T) {
	var anon *Actor
	if roles := anon.Roles(""); roles != nil {
		t.Errorf("anonymous actor must have no roles, got %v", roles)
	}

	admin := &Actor{ID: "usr_1", IsAdmin: true}
	roles := admin.Roles("usr_1")
	want := []string{"user", "admin", "self"}
	if len(roles) != len(want) {
		t.Fatalf("got %v, want %v", roles, want)
	}
	for i := range want {
		if roles[i] != want[i] {
			t.Errorf("got %v, want %v", roles, want)
		}
	}
}
