package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestTraceDataRoundTrip(t *testing.T) {
	ctx := context.Background()
	if GetTraceData(ctx) != nil {
		t.Fatalf("expected nil trace data")
	}
	if LogFields(ctx) != nil {
		t.Fatalf("expected no log fields")
	}
	ctx = WithTraceData(ctx, &TraceData{TraceID: "t-1", RequestID: "r-1"})
	fields := LogFields(ctx)
	if len(fields) != 4 || fields[1] != "t-1" || fields[3] != "r-1" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestAccountData(t *testing.T) {
	id := uuid.New()
	ctx := WithAccountData(context.Background(), &AccountData{AccountID: id, Role: "admin"})
	ad := GetAccountData(ctx)
	if ad == nil || ad.AccountID != id || ad.Role != "admin" {
		t.Fatalf("unexpected account data: %+v", ad)
	}
}
