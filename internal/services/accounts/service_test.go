package accounts

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"electricity-billing-backend/internal/auth"
	"electricity-billing-backend/internal/models"
)

func TestGenerateAccountNumber(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		number := generateAccountNumber()
		if len(number) != 10 {
			t.Fatalf("expected 10 digits, got %q", number)
		}
		for _, r := range number {
			if r < '0' || r > '9' {
				t.Fatalf("non-digit in account number %q", number)
			}
		}
		if number[0] == '0' {
			t.Fatalf("account number %q has a leading zero", number)
		}
		seen[number] = true
	}
	if len(seen) < 90 {
		t.Errorf("account numbers look non-random: %d unique of 100", len(seen))
	}
}

func TestLookupFailed(t *testing.T) {
	if lookupFailed(nil) {
		t.Error("nil error should not count as a failed lookup")
	}
	if lookupFailed(gorm.ErrRecordNotFound) {
		t.Error("a missing record falls through to the next role, not a failure")
	}
	if !lookupFailed(errors.New("connection refused")) {
		t.Error("an infrastructure error must abort the login, not fall through")
	}
}

type fakeAdminStore struct {
	count   int64
	created []*models.Admin
}

func (f *fakeAdminStore) Count() (int64, error) { return f.count, nil }

func (f *fakeAdminStore) Create(admin *models.Admin) error {
	f.created = append(f.created, admin)
	return nil
}

func TestSeedInitialAdmin_CreatesWhenEmpty(t *testing.T) {
	store := &fakeAdminStore{}

	if err := SeedInitialAdmin(store, "System Admin", "admin", zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected one seeded admin, got %d", len(store.created))
	}

	admin := store.created[0]
	if admin.Username != "admin" {
		t.Errorf("expected username admin, got %q", admin.Username)
	}
	if !auth.CheckPassword(DefaultPassword, admin.Password) {
		t.Error("seeded admin password should be the hashed default password")
	}
}

func TestSeedInitialAdmin_SkipsWhenAdminExists(t *testing.T) {
	store := &fakeAdminStore{count: 1}

	if err := SeedInitialAdmin(store, "System Admin", "admin", zap.NewNop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.created) != 0 {
		t.Errorf("expected no admin created, got %d", len(store.created))
	}
}
