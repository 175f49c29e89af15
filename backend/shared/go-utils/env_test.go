package utils

import "testing"

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("FOODMAP_TEST_STR", "  value ")
	t.Setenv("FOODMAP_TEST_BOOL", "true")
	t.Setenv("FOODMAP_TEST_BAD_BOOL", "maybe")
	t.Setenv("FOODMAP_TEST_INT", "42")
	t.Setenv("FOODMAP_TEST_FLOAT", "-83.0458")

	if got := GetEnv("FOODMAP_TEST_STR", "def"); got != "value" {
		t.Fatalf("GetEnv = %q", got)
	}
	if got := GetEnv("FOODMAP_TEST_UNSET", "def"); got != "def" {
		t.Fatalf("GetEnv default = %q", got)
	}
	if !GetEnvBool("FOODMAP_TEST_BOOL", false) {
		t.Fatal("GetEnvBool should parse true")
	}
	if GetEnvBool("FOODMAP_TEST_BAD_BOOL", false) {
		t.Fatal("GetEnvBool should fall back on invalid input")
	}
	if got := GetEnvInt("FOODMAP_TEST_INT", 0); got != 42 {
		t.Fatalf("GetEnvInt = %d", got)
	}
	if got := GetEnvFloat("FOODMAP_TEST_FLOAT", 0); got != -83.0458 {
		t.Fatalf("GetEnvFloat = %v", got)
	}
}
