package seed

import (
	"path/filepath"
	"testing"

	"invoices-dashboard/config"
	"invoices-dashboard/models"
	"invoices-dashboard/utils"
)

func TestRunSeedsOnce(t *testing.T) {
	db, err := config.ConnectDB("sqlite", filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	defer config.CloseDB(db)
	if err := config.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := Run(db); err != nil {
			t.Fatalf("Run #%d: %v", i+1, err)
		}
	}

	counts := map[string]struct {
		model interface{}
		want  int64
	}{
		"users":     {&models.User{}, int64(len(users))},
		"customers": {&models.Customer{}, int64(len(customers))},
		"invoices":  {&models.Invoice{}, int64(len(invoices))},
		"revenue":   {&models.Revenue{}, int64(len(revenue))},
	}
	for name, c := range counts {
		var got int64
		db.Model(c.model).Count(&got)
		if got != c.want {
			t.Errorf("%s = %d, want %d", name, got, c.want)
		}
	}

	var user models.User
	db.First(&user, "email = ?", "user@nextmail.com")
	if !utils.CheckPasswordHash(DefaultPassword, user.Password) {
		t.Error("seeded password is not a bcrypt hash of DefaultPassword")
	}
	for _, inv := range invoices {
		if inv.ID != "" {
			t.Fatal("Run mutated the package fixtures")
		}
	}
}
