package cart

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anish9011/plant/internal/data/db"
	"github.com/anish9011/plant/internal/data/repos/testutil"
	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/platform/dbctx"
)

func TestCartItemRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()

	repo := NewCartItemRepo(gdb, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	acct := testutil.SeedAccount(t, ctx, tx, "cart@example.com")
	other := testutil.SeedAccount(t, ctx, tx, "other@example.com")

	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	testutil.SeedCartItem(t, ctx, tx, acct.ID, "old", 1, base)
	testutil.SeedCartItem(t, ctx, tx, other.ID, "old", 4, base)

	created, err := repo.Create(dbc, &types.CartItem{
		AccountID: acct.ID,
		ProductID: "new",
		Name:      "Monstera",
		Price:     decimal.RequireFromString("30.00"),
		ImageSrc:  "https://img.example/new.png",
		Quantity:  2,
		AddedAt:   base.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Fatalf("Create: id not assigned")
	}

	items, err := repo.ListByAccount(dbc, acct.ID)
	if err != nil {
		t.Fatalf("ListByAccount: %v", err)
	}
	if len(items) != 2 || items[0].ProductID != "new" || items[1].ProductID != "old" {
		t.Fatalf("ListByAccount: unexpected order: %+v", items)
	}

	n, err := repo.UpdateQuantity(dbc, acct.ID, "old", 7)
	if err != nil || n != 1 {
		t.Fatalf("UpdateQuantity: rows=%d err=%v", n, err)
	}
	got, err := repo.Get(dbc, acct.ID, "old")
	if err != nil || got == nil || got.Quantity != 7 {
		t.Fatalf("Get after update: %+v, %v", got, err)
	}
	otherItem, _ := repo.Get(dbc, other.ID, "old")
	if otherItem == nil || otherItem.Quantity != 4 {
		t.Fatalf("other account line changed: %+v", otherItem)
	}

	n, err = repo.UpdateQuantity(dbc, acct.ID, "missing", 3)
	if err != nil || n != 0 {
		t.Fatalf("UpdateQuantity (missing): rows=%d err=%v", n, err)
	}

	n, err = repo.Delete(dbc, acct.ID, "old")
	if err != nil || n != 1 {
		t.Fatalf("Delete: rows=%d err=%v", n, err)
	}
	n, err = repo.Delete(dbc, acct.ID, "old")
	if err != nil || n != 0 {
		t.Fatalf("Delete (again): rows=%d err=%v", n, err)
	}

	n, err = repo.DeleteByAccount(dbc, acct.ID)
	if err != nil || n != 1 {
		t.Fatalf("DeleteByAccount: rows=%d err=%v", n, err)
	}
	if otherItem, _ := repo.Get(dbc, other.ID, "old"); otherItem == nil {
		t.Fatalf("DeleteByAccount removed another account's line")
	}
}

func TestCartItemRepoUniquePerAccountProduct(t *testing.T) {
	gdb := testutil.DB(t)
	ctx := context.Background()
	repo := NewCartItemRepo(gdb, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx}

	acct := testutil.SeedAccount(t, ctx, gdb, "unique@example.com")
	line := func() *types.CartItem {
		return &types.CartItem{
			AccountID: acct.ID,
			ProductID: "p1",
			Name:      "Pothos",
			Price:     decimal.NewFromInt(5),
			Quantity:  1,
		}
	}
	if _, err := repo.Create(dbc, line()); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := repo.Create(dbc, line())
	if !db.IsUniqueViolation(err) {
		t.Fatalf("expected unique violation, got %v", err)
	}
}
