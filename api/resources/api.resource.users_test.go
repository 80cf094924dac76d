package resources

import (
	"testing"
	"time"

	"github.com/itsatony/stationhub/internal/models"
)

func TestFilterProfile(t *testing.T) {
	creator := "usr_admin"
	user := &models.User{
		ID:           "usr_ana",
		Username:     "ana",
		Email:        "ana@example.com",
		PasswordHash: "hash",
		CreatedBy:    &creator,
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	tests := []struct {
		name        string
		roles       []string
		wantEmail   string
		wantCreator string
	}{
		{"other user", []string{"user"}, "", ""},
		{"self", []string{"user", "self"}, "ana@example.com", ""},
		{"admin", []string{"user", "admin"}, "ana@example.com", "usr_admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := filterProfile(user, tt.roles)
			if err != nil {
				t.Fatalf("filterProfile failed: %v", err)
			}
			if p.ID != user.ID || p.Username != user.Username {
				t.Errorf("expected public fields kept, got %+v", p)
			}
			if p.Email != tt.wantEmail {
				t.Errorf("expected email %q, got %q", tt.wantEmail, p.Email)
			}
			if p.CreatedBy != tt.wantCreator {
				t.Errorf("expected creator %q, got %q", tt.wantCreator, p.CreatedBy)
			}
		})
	}
}

func TestFilterProfileWithoutCreator(t *testing.T) {
	user := &models.User{ID: "usr_root", Username: "root", Email: "root@example.com", IsAdmin: true}
	p, err := filterProfile(user, []string{"user", "admin", "self"})
	if err != nil {
		t.Fatalf("filterProfile failed: %v", err)
	}
	if p.CreatedBy != "" || !p.IsAdmin {
		t.Errorf("unexpected profile %+v", p)
	}
}
