package registry

import (
	"errors"
	"testing"
)

func testRegions() []RegionEntry {
	return []RegionEntry{
		{Code: "na", PlatformID: "NA1", Host: "na.api.example.test"},
		{Code: "EUW", PlatformID: "EUW1", Host: "euw.api.example.test"},
		{Code: "global", PlatformID: "", Host: "global.api.example.test"},
	}
}

func TestNewRegionDirectory(t *testing.T) {
	dir, err := NewRegionDirectory(testRegions())
	if err != nil {
		t.Fatalf("registry:regions_test - unexpected error: %v", err)
	}

	codes := dir.Codes()
	if len(codes) != 2 || codes[0] != "euw" || codes[1] != "na" {
		t.Errorf("registry:regions_test - Codes() = %v, want [euw na]", codes)
	}
	if len(dir.Entries()) != 3 {
		t.Errorf("registry:regions_test - Entries() len = %d, want 3", len(dir.Entries()))
	}
}

func TestNewRegionDirectory_RequiresGlobal(t *testing.T) {
	_, err := NewRegionDirectory([]RegionEntry{{Code: "na", PlatformID: "NA1", Host: "na.api.example.test"}})
	var regErr *RegistryError
	if !errors.As(err, &regErr) || regErr.Code != CodeInvalidCatalog {
		t.Errorf("registry:regions_test - expected %s, got %v", CodeInvalidCatalog, err)
	}
}

func TestNewRegionDirectory_RejectsDuplicateAcrossCase(t *testing.T) {
	entries := append(testRegions(), RegionEntry{Code: "NA", PlatformID: "NA1", Host: "x"})
	if _, err := NewRegionDirectory(entries); err == nil {
		t.Error("registry:regions_test - expected duplicate error")
	}
}

func TestRegionDirectory_LookupCaseInsensitive(t *testing.T) {
	dir, _ := NewRegionDirectory(testRegions())

	for _, code := range []string{"na", "NA", " Na "} {
		e, err := dir.Lookup(code)
		if err != nil {
			t.Fatalf("registry:regions_test - Lookup(%q) error: %v", code, err)
		}
		if e.PlatformID != "NA1" || e.Host != "na.api.example.test" {
			t.Errorf("registry:regions_test - Lookup(%q) = %+v", code, e)
		}
	}
}

func TestRegionDirectory_LookupUnknown(t *testing.T) {
	dir, _ := NewRegionDirectory(testRegions())

	_, err := dir.Lookup("xx")
	var regErr *RegistryError
	if !errors.As(err, &regErr) || regErr.Code != CodeUnknownRegion {
		t.Errorf("registry:regions_test - expected %s, got %v", CodeUnknownRegion, err)
	}
}

func TestRegionDirectory_Global(t *testing.T) {
	dir, _ := NewRegionDirectory(testRegions())

	g := dir.Global()
	if !g.IsGlobal() {
		t.Errorf("registry:regions_test - Global().Code = %q", g.Code)
	}
	if g.PlatformID != "" {
		t.Errorf("registry:regions_test - Global().PlatformID = %q, want empty", g.PlatformID)
	}
	if g.Host != "global.api.example.test" {
		t.Errorf("registry:regions_test - Global().Host = %q", g.Host)
	}
}
