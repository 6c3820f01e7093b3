package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"gorm duplicated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"pg unique", &pgconn.PgError{Code: "23505"}, true},
		{"pg other", &pgconn.PgError{Code: "23503"}, false},
		{"sqlite text", errors.New("UNIQUE constraint failed: cart_item.account_id"), true},
		{"other", errors.New("boom"), false},
	}
	for _, tc := range cases {
		if got := IsUniqueViolation(tc.err); got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{Host: "db", Port: "5432", User: "u", Password: "p", Name: "plant"}
	if got := cfg.PostgresDSN(); got != "postgres://u:p@db:5432/plant?sslmode=disable" {
		t.Fatalf("unexpected dsn: %s", got)
	}
	cfg.DSN = "postgres://override"
	if got := cfg.PostgresDSN(); got != "postgres://override" {
		t.Fatalf("dsn override ignored: %s", got)
	}
}

func TestNewServiceSQLiteMigrates(t *testing.T) {
	svc, err := NewService(Config{Driver: DriverSQLite, DSN: "file:dbsvc?mode=memory&cache=shared"}, testLogger(t))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close() })
	if svc.Driver() != DriverSQLite {
		t.Fatalf("unexpected driver: %s", svc.Driver())
	}
	if err := svc.AutoMigrateAll(); err != nil {
		t.Fatalf("AutoMigrateAll: %v", err)
	}
	if !svc.DB().Migrator().HasIndex("cart_item", "idx_cart_item_account_product") {
		t.Fatalf("missing cart item unique index")
	}
}

func TestNewServiceRejectsUnknownDriver(t *testing.T) {
	if _, err := NewService(Config{Driver: "oracle"}, testLogger(t)); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
