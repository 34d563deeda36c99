package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"testing"

	"invoices-dashboard/config"
	"invoices-dashboard/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.ConnectDB("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	t.Cleanup(func() { config.CloseDB(db) })
	if err := config.Migrate(db); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return db
}

func createCustomer(t *testing.T, db *gorm.DB, name, email string) models.Customer {
	t.Helper()
	c := models.Customer{Name: name, Email: email, ImageURL: "/customers/placeholder.png"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	return c
}

func createInvoice(t *testing.T, db *gorm.DB, customerID string, amount int64, status, date string) models.Invoice {
	t.Helper()
	inv := models.Invoice{CustomerID: customerID, Amount: amount, Status: status, Date: date}
	if err := db.Create(&inv).Error; err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	return inv
}

func TestFetchFilteredInvoicesPaginates(t *testing.T) {
	db := newTestDB(t)
	svc := NewQueryService(db)
	ctx := context.Background()

	c := createCustomer(t, db, "Lee Robinson", "lee@robinson.com")
	for i := 1; i <= 13; i++ {
		createInvoice(t, db, c.ID, int64(i*100), models.StatusPending, fmt.Sprintf("2023-01-%02d", i))
	}

	pages, err := svc.FetchInvoicesPages(ctx, "")
	if err != nil {
		t.Fatalf("FetchInvoicesPages: %v", err)
	}
	if pages != 3 {
		t.Fatalf("pages = %d, want 3", pages)
	}

	seen := map[string]bool{}
	wantSizes := []int{6, 6, 1, 0}
	for i, want := range wantSizes {
		rows, err := svc.FetchFilteredInvoices(ctx, "", i+1)
		if err != nil {
			t.Fatalf("FetchFilteredInvoices page %d: %v", i+1, err)
		}
		if len(rows) != want {
			t.Fatalf("page %d has %d rows, want %d", i+1, len(rows), want)
		}
		for _, r := range rows {
			if seen[r.ID] {
				t.Fatalf("invoice %s appears on more than one page", r.ID)
			}
			seen[r.ID] = true
		}
	}
	if len(seen) != 13 {
		t.Fatalf("pages covered %d invoices, want 13", len(seen))
	}

	first, _ := svc.FetchFilteredInvoices(ctx, "", 1)
	if first[0].Date != "2023-01-13" || first[5].Date != "2023-01-08" {
		t.Fatalf("page 1 not ordered newest first: %s .. %s", first[0].Date, first[5].Date)
	}
	if first[0].Name != "Lee Robinson" || first[0].Email != "lee@robinson.com" {
		t.Fatalf("row missing customer columns: %+v", first[0])
	}

	// pages far past the end are empty rather than wrapping the offset
	for _, page := range []int{maxPage, maxPage + 1, math.MaxInt} {
		rows, err := svc.FetchFilteredInvoices(ctx, "", page)
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		if len(rows) != 0 {
			t.Fatalf("page %d returned %d rows, want 0", page, len(rows))
		}
	}

	// pages below 1 are treated as the first page
	zero, err := svc.FetchFilteredInvoices(ctx, "", 0)
	if err != nil || len(zero) != 6 || zero[0].ID != first[0].ID {
		t.Fatalf("page 0 = %d rows, err %v", len(zero), err)
	}
}

func TestFetchInvoicesPagesCeiling(t *testing.T) {
	db := newTestDB(t)
	svc := NewQueryService(db)
	c := createCustomer(t, db, "Amy Burns", "amy@burns.com")

	wants := map[int]int{0: 0, 1: 1, 6: 1, 7: 2, 12: 2}
	created := 0
	for _, n := range []int{0, 1, 6, 7, 12} {
		for ; created < n; created++ {
			createInvoice(t, db, c.ID, 100, models.StatusPaid, "2023-05-01")
		}
		got, err := svc.FetchInvoicesPages(context.Background(), "")
		if err != nil {
			t.Fatalf("FetchInvoicesPages: %v", err)
		}
		if got != wants[n] {
			t.Errorf("%d invoices: pages = %d, want %d", n, got, wants[n])
		}
	}
}

func TestFetchFilteredInvoicesMatching(t *testing.T) {
	db := newTestDB(t)
	svc := NewQueryService(db)
	ctx := context.Background()

	delba := createCustomer(t, db, "Delba de Oliveira", "delba@oliveira.com")
	lee := createCustomer(t, db, "Lee Robinson", "lee@robinson.com")
	createInvoice(t, db, delba.ID, 15795, models.StatusPending, "2022-12-06")
	createInvoice(t, db, delba.ID, 20348, models.StatusPaid, "2022-11-14")
	createInvoice(t, db, lee.ID, 54246, models.StatusPending, "2023-07-16")
	createInvoice(t, db, lee.ID, 1000, models.StatusPaid, "2022-06-05")

	tests := []struct {
		query string
		want  int
	}{
		{"", 4},
		{"DELBA", 2},
		{"oliveira.com", 2},
		{"robin", 2},
		{"paid", 2},
		{"pending", 2},
		{"15795", 1},
		{"2023-07-16", 1},
		{"2023-07", 0},
		{"157", 0},
		{"nobody", 0},
	}
	for _, tt := range tests {
		rows, err := svc.FetchFilteredInvoices(ctx, tt.query, 1)
		if err != nil {
			t.Fatalf("query %q: %v", tt.query, err)
		}
		if len(rows) != tt.want {
			t.Errorf("query %q matched %d rows, want %d", tt.query, len(rows), tt.want)
		}
		pages, err := svc.FetchInvoicesPages(ctx, tt.query)
		if err != nil {
			t.Fatalf("pages for %q: %v", tt.query, err)
		}
		wantPages := (tt.want + ItemsPerPage - 1) / ItemsPerPage
		if pages != wantPages {
			t.Errorf("query %q: pages = %d, want %d", tt.query, pages, wantPages)
		}
	}

	rows, _ := svc.FetchFilteredInvoices(ctx, "paid", 1)
	for _, r := range rows {
		if r.Status != models.StatusPaid {
			t.Errorf("query paid returned a %s invoice", r.Status)
		}
	}
}

func TestFetchLatestInvoices(t *testing.T) {
	db := newTestDB(t)
	svc := NewQueryService(db)
	c := createCustomer(t, db, "Evil Rabbit", "evil@rabbit.com")
	for i := 1; i <= 7; i++ {
		createInvoice(t, db, c.ID, 15795, models.StatusPending, fmt.Sprintf("2023-02-%02d", i))
	}

	latest, err := svc.FetchLatestInvoices(context.Background())
	if err != nil {
		t.Fatalf("FetchLatestInvoices: %v", err)
	}
	if len(latest) != 5 {
		t.Fatalf("got %d invoices, want 5", len(latest))
	}
	for _, inv := range latest {
		if inv.Amount != "$157.95" {
			t.Errorf("amount = %q, want $157.95", inv.Amount)
		}
		if inv.Name != "Evil Rabbit" || inv.Email != "evil@rabbit.com" || inv.ImageURL == "" {
			t.Errorf("missing customer fields: %+v", inv)
		}
	}

	var newest models.Invoice
	db.Where("date = ?", "2023-02-07").First(&newest)
	if latest[0].ID != newest.ID {
		t.Errorf("first latest invoice = %s, want %s", latest[0].ID, newest.ID)
	}
}

func TestFetchCardData(t *testing.T) {
	db := newTestDB(t)
	svc := NewQueryService(db)

	empty, err := svc.FetchCardData(context.Background())
	if err != nil {
		t.Fatalf("FetchCardData on empty store: %v", err)
	}
	if empty.TotalPaidInvoices != "$0.00" || empty.TotalPendingInvoices != "$0.00" {
		t.Fatalf("empty totals = %+v", empty)
	}

	a := createCustomer(t, db, "Amy Burns", "amy@burns.com")
	createCustomer(t, db, "Balazs Orban", "balazs@orban.com")
	createInvoice(t, db, a.ID, 3040, models.StatusPaid, "2022-10-29")
	createInvoice(t, db, a.ID, 1250, models.StatusPaid, "2023-06-17")
	createInvoice(t, db, a.ID, 123456, models.StatusPending, "2023-06-17")

	cards, err := svc.FetchCardData(context.Background())
	if err != nil {
		t.Fatalf("FetchCardData: %v", err)
	}
	want := CardData{
		NumberOfCustomers:    2,
		NumberOfInvoices:     3,
		TotalPaidInvoices:    "$42.90",
		TotalPendingInvoices: "$1,234.56",
	}
	if *cards != want {
		t.Fatalf("cards = %+v, want %+v", *cards, want)
	}
}

func TestFetchInvoiceByID(t *testing.T) {
	db := newTestDB(t)
	svc := NewQueryService(db)
	c := createCustomer(t, db, "Michael Novotny", "michael@novotny.com")
	inv := createInvoice(t, db, c.ID, 1250, models.StatusPending, "2023-06-09")

	form, err := svc.FetchInvoiceByID(context.Background(), inv.ID)
	if err != nil {
		t.Fatalf("FetchInvoiceByID: %v", err)
	}
	if form == nil {
		t.Fatal("expected invoice, got nil")
	}
	if !form.Amount.Equal(decimal.RequireFromString("12.5")) {
		t.Errorf("amount = %s, want 12.5", form.Amount)
	}
	if form.CustomerID != c.ID || form.Status != models.StatusPending {
		t.Errorf("unexpected form: %+v", form)
	}

	missing, err := svc.FetchInvoiceByID(context.Background(), "does-not-exist")
	if err != nil || missing != nil {
		t.Fatalf("unknown id returned %+v, %v", missing, err)
	}
}

func TestFetchCustomersSortedByName(t *testing.T) {
	db := newTestDB(t)
	svc := NewQueryService(db)
	createCustomer(t, db, "Lee Robinson", "lee@robinson.com")
	createCustomer(t, db, "Amy Burns", "amy@burns.com")
	createCustomer(t, db, "Delba de Oliveira", "delba@oliveira.com")

	customers, err := svc.FetchCustomers(context.Background())
	if err != nil {
		t.Fatalf("FetchCustomers: %v", err)
	}
	var names []string
	for _, c := range customers {
		names = append(names, c.Name)
	}
	want := []string{"Amy Burns", "Delba de Oliveira", "Lee Robinson"}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
}

func TestFetchFilteredCustomers(t *testing.T) {
	db := newTestDB(t)
	svc := NewQueryService(db)
	amy := createCustomer(t, db, "Amy Burns", "amy@burns.com")
	createCustomer(t, db, "Balazs Orban", "balazs@orban.com")
	createInvoice(t, db, amy.ID, 3040, models.StatusPaid, "2022-10-29")
	createInvoice(t, db, amy.ID, 1250, models.StatusPending, "2023-06-17")
	createInvoice(t, db, amy.ID, 500, models.StatusPending, "2023-06-18")

	rows, err := svc.FetchFilteredCustomers(context.Background(), "")
	if err != nil {
		t.Fatalf("FetchFilteredCustomers: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d customers, want 2", len(rows))
	}
	if rows[0].Name != "Amy Burns" || rows[0].TotalInvoices != 3 ||
		rows[0].TotalPaid != "$30.40" || rows[0].TotalPending != "$17.50" {
		t.Errorf("amy row = %+v", rows[0])
	}
	if rows[1].TotalInvoices != 0 || rows[1].TotalPaid != "$0.00" || rows[1].TotalPending != "$0.00" {
		t.Errorf("customer without invoices = %+v", rows[1])
	}

	filtered, _ := svc.FetchFilteredCustomers(context.Background(), "ORBAN.COM")
	if len(filtered) != 1 || filtered[0].Name != "Balazs Orban" {
		t.Errorf("filtered = %+v", filtered)
	}
}

func TestGetUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewQueryService(db)
	db.Create(&models.User{Name: "User", Email: "user@nextmail.com", Password: "hash"})

	user, err := svc.GetUser(context.Background(), "user@nextmail.com")
	if err != nil || user == nil || user.Name != "User" {
		t.Fatalf("GetUser = %+v, %v", user, err)
	}
	none, err := svc.GetUser(context.Background(), "nobody@nextmail.com")
	if err != nil || none != nil {
		t.Fatalf("unknown email = %+v, %v", none, err)
	}
}

func TestQueriesReportDataAccessErrors(t *testing.T) {
	db := newTestDB(t)
	svc := NewQueryService(db)
	config.CloseDB(db)
	ctx := context.Background()

	checks := map[string]error{}
	_, checks["revenue"] = svc.FetchRevenue(ctx)
	_, checks["latest"] = svc.FetchLatestInvoices(ctx)
	_, checks["cards"] = svc.FetchCardData(ctx)
	_, checks["filtered"] = svc.FetchFilteredInvoices(ctx, "", 1)
	_, checks["pages"] = svc.FetchInvoicesPages(ctx, "")
	_, checks["by id"] = svc.FetchInvoiceByID(ctx, "x")
	_, checks["customers"] = svc.FetchCustomers(ctx)
	_, checks["customer table"] = svc.FetchFilteredCustomers(ctx, "")
	_, checks["user"] = svc.GetUser(ctx, "user@nextmail.com")

	for name, err := range checks {
		var dae *DataAccessError
		if !errors.As(err, &dae) {
			t.Errorf("%s: expected DataAccessError, got %v", name, err)
		}
	}
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	db := newTestDB(t)
	svc := NewQueryService(db)
	ctx := context.Background()

	plain := createCustomer(t, db, "Amy Burns", "amy@burns.com")
	underscore := createCustomer(t, db, "Ops_Team", "ops_team@acme.com")
	lookalike := createCustomer(t, db, "OpsXTeam", "opsxteam@acme.com")
	percent := createCustomer(t, db, "100% Cotton", "cotton@acme.com")
	for _, c := range []models.Customer{plain, underscore, lookalike, percent} {
		createInvoice(t, db, c.ID, 100, models.StatusPending, "2023-03-01")
	}

	tests := []struct {
		query string
		want  int
	}{
		{"%", 1},
		{"_", 1},
		{"ops_team", 1},
		{"100%", 1},
		{`\`, 0},
	}
	for _, tt := range tests {
		rows, err := svc.FetchFilteredInvoices(ctx, tt.query, 1)
		if err != nil {
			t.Fatalf("query %q: %v", tt.query, err)
		}
		if len(rows) != tt.want {
			t.Errorf("invoice query %q matched %d rows, want %d", tt.query, len(rows), tt.want)
		}
		customers, err := svc.FetchFilteredCustomers(ctx, tt.query)
		if err != nil {
			t.Fatalf("customer query %q: %v", tt.query, err)
		}
		if len(customers) != tt.want {
			t.Errorf("customer query %q matched %d rows, want %d", tt.query, len(customers), tt.want)
		}
	}
}
