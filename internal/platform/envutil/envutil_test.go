package envutil

import (
	"testing"
	"time"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("PLANT_TEST_INT", "42")
	t.Setenv("PLANT_TEST_BAD_INT", "forty")
	t.Setenv("PLANT_TEST_BOOL", "yes")
	t.Setenv("PLANT_TEST_DUR", "90s")
	t.Setenv("PLANT_TEST_DUR_SECS", "5")
	t.Setenv("PLANT_TEST_LIST", " a, ,b ,")
	t.Setenv("PLANT_TEST_FLOAT", "0.25")

	if got := Int("PLANT_TEST_INT", 1); got != 42 {
		t.Fatalf("Int: got %d", got)
	}
	if got := Int("PLANT_TEST_BAD_INT", 7); got != 7 {
		t.Fatalf("Int fallback: got %d", got)
	}
	if got := String("PLANT_TEST_MISSING", "def"); got != "def" {
		t.Fatalf("String fallback: got %q", got)
	}
	if !Bool("PLANT_TEST_BOOL", false) {
		t.Fatalf("Bool: expected true")
	}
	if Bool("PLANT_TEST_MISSING", false) {
		t.Fatalf("Bool fallback: expected false")
	}
	if got := Duration("PLANT_TEST_DUR", time.Second); got != 90*time.Second {
		t.Fatalf("Duration: got %v", got)
	}
	if got := Duration("PLANT_TEST_DUR_SECS", time.Second); got != 5*time.Second {
		t.Fatalf("Duration seconds: got %v", got)
	}
	if got := Float("PLANT_TEST_FLOAT", 1); got != 0.25 {
		t.Fatalf("Float: got %v", got)
	}
	got := List("PLANT_TEST_LIST", nil)
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("List: got %v", got)
	}
}
