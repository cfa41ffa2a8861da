package registry

import (
	"errors"
	"testing"
)

func TestRegistryError(t *testing.T) {
	err := NewRegistryError(CodeUnknownGroup, "endpoint group not registered")

	if err.Code != CodeUnknownGroup {
		t.Errorf("registry:types_test - expected %s, got %s", CodeUnknownGroup, err.Code)
	}
	if err.Error() != "UNKNOWN_GROUP: endpoint group not registered" {
		t.Errorf("registry:types_test - unexpected Error() %q", err.Error())
	}
}

func TestNormalizeRegion(t *testing.T) {
	tests := map[string]string{
		"NA":    "na",
		" euw ": "euw",
		"Eune":  "eune",
		"":      "",
	}
	for in, want := range tests {
		if got := NormalizeRegion(in); got != want {
			t.Errorf("registry:types_test - NormalizeRegion(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEndpointGroup_Allows(t *testing.T) {
	g := NewEndpointGroup("lolStatus", "v1.0", []string{"br", "NA", "pbe"})

	for _, r := range []string{"br", "na", "NA", "pbe"} {
		if !g.Allows(r) {
			t.Errorf("registry:types_test - expected %q to be allowed", r)
		}
	}
	if g.Allows("kr") {
		t.Error("registry:types_test - kr should not be allowed")
	}

	want := []string{"br", "na", "pbe"}
	got := g.Regions()
	if len(got) != len(want) {
		t.Fatalf("registry:types_test - Regions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("registry:types_test - Regions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryError_As(t *testing.T) {
	var err error = NewRegistryError(CodeUnknownRegion, "nope")
	var regErr *RegistryError
	if !errors.As(err, &regErr) {
		t.Fatal("registry:types_test - errors.As failed")
	}
	if regErr.Code != CodeUnknownRegion {
		t.Errorf("registry:types_test - Code = %q", regErr.Code)
	}
}
