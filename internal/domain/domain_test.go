package domain

import "testing"

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleUser, RoleAdmin} {
		if !ValidRole(role) {
			t.Fatalf("expected %q to be valid", role)
		}
	}
	for _, role := range []string{"", "root", "Admin"} {
		if ValidRole(role) {
			t.Fatalf("expected %q to be rejected", role)
		}
	}
}

func TestModelsMigrateInOrder(t *testing.T) {
	models := Models()
	if len(models) != 5 {
		t.Fatalf("expected 5 models, got %d", len(models))
	}
	if _, ok := models[0].(*Account); !ok {
		t.Fatalf("account must migrate first, got %T", models[0])
	}
}
