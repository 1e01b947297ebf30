package db_test

import (
	"path/filepath"
	"testing"

	"github.com/legal-discovery/backend/internal/auth"
	"github.com/legal-discovery/backend/internal/db"
)

func newDB(t *testing.T) *db.Database {
	t.Helper()
	d, err := db.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestEnsureAdmin(t *testing.T) {
	t.Parallel()

	d := newDB(t)
	if err := d.EnsureAdmin("admin", "changeme"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}

	u, err := d.GetUserByUsername("admin")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if u.Role != "admin" {
		t.Errorf("role=%q, want admin", u.Role)
	}
	if !auth.CheckPassword("changeme", u.Password) {
		t.Error("stored password hash does not match")
	}

	// Second call is a no-op once an admin exists.
	if err := d.EnsureAdmin("other", "pw"); err != nil {
		t.Fatalf("EnsureAdmin (second): %v", err)
	}
	if _, err := d.GetUserByUsername("other"); err == nil {
		t.Error("second admin should not have been created")
	}
}

func TestSettings(t *testing.T) {
	t.Parallel()

	d := newDB(t)
	if got := d.GetSetting("scribe_model_id", "scribe_v2"); got != "scribe_v2" {
		t.Errorf("default=%q", got)
	}
	if err := d.SetSetting("scribe_model_id", "scribe_v2_experimental"); err != nil {
		t.Fatalf("SetSetting: %v", err)
	}
	if err := d.SetSetting("scribe_model_id", "scribe_v2"); err != nil {
		t.Fatalf("SetSetting (upsert): %v", err)
	}
	if got := d.GetSetting("scribe_model_id", ""); got != "scribe_v2" {
		t.Errorf("after upsert=%q, want scribe_v2", got)
	}

	all, err := d.GetAllSettings()
	if err != nil {
		t.Fatalf("GetAllSettings: %v", err)
	}
	if all["scribe_model_id"] != "scribe_v2" {
		t.Errorf("all=%v", all)
	}
}
