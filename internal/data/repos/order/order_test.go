package order

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/anish9011/plant/internal/data/repos/testutil"
	types "github.com/anish9011/plant/internal/domain"
	"github.com/anish9011/plant/internal/platform/dbctx"
)

func newOrder(accountID uuid.UUID, createdAt time.Time, names ...string) *types.Order {
	o := &types.Order{
		AccountID:            accountID,
		FullName:             "Ada Gardener",
		AddressLine1:         "1 Leaf St",
		City:                 "Pune",
		State:                "MH",
		PostalCode:           "411001",
		Country:              "IN",
		PhoneNumber:          "5550100",
		PaymentMethod:        types.PaymentCOD,
		ExpectedDeliveryDate: createdAt.AddDate(0, 0, 5),
		TotalAmount:          decimal.NewFromInt(int64(len(names))),
		CreatedAt:            createdAt,
	}
	for i, n := range names {
		o.Lines = append(o.Lines, types.OrderLine{
			Position:         i,
			Name:             n,
			Price:            decimal.NewFromInt(1),
			Quantity:         1,
			Image:            []byte{byte(i)},
			ImageContentType: "image/png",
		})
	}
	return o
}

func TestOrderRepo(t *testing.T) {
	gdb := testutil.DB(t)
	tx := testutil.Tx(t, gdb)
	ctx := context.Background()

	repo := NewOrderRepo(gdb, testutil.Logger(t))
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	acct := testutil.SeedAccount(t, ctx, tx, "orders@example.com")
	other := testutil.SeedAccount(t, ctx, tx, "someone@example.com")

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	first, err := repo.Create(dbc, newOrder(acct.ID, base, "b", "a", "b"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(dbc, newOrder(acct.ID, base.Add(time.Hour), "z")); err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if _, err := repo.Create(dbc, newOrder(other.ID, base.Add(2*time.Hour), "q")); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	mine, err := repo.ListByAccount(dbc, acct.ID)
	if err != nil {
		t.Fatalf("ListByAccount: %v", err)
	}
	if len(mine) != 2 || mine[0].Lines[0].Name != "z" {
		t.Fatalf("ListByAccount: unexpected result: %+v", mine)
	}
	if mine[1].ID != first.ID {
		t.Fatalf("ListByAccount: expected oldest order last, got %s", mine[1].ID)
	}
	lines := mine[1].Lines
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	for i, want := range []string{"b", "a", "b"} {
		if lines[i].Name != want || lines[i].Position != i {
			t.Fatalf("line %d: got %+v", i, lines[i])
		}
	}

	all, err := repo.ListAll(dbc)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 || all[0].AccountID != other.ID {
		t.Fatalf("ListAll: unexpected order: %+v", all)
	}
}
