package semver

import "testing"

func TestIsAPIVersion(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"v1.4", true},
		{"v2.5", true},
		{"v1", true},
		{"v1.0.0", true},
		{"1.4", false},
		{"v1.4-beta", false},
		{"", false},
		{"version1", false},
	}
	for _, tt := range tests {
		if got := IsAPIVersion(tt.input); got != tt.want {
			t.Errorf("semver:apiversion_test - IsAPIVersion(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseAPIVersion(t *testing.T) {
	v, err := ParseAPIVersion("v2.5")
	if err != nil {
		t.Fatalf("semver:apiversion_test - unexpected error: %v", err)
	}
	if v.Major() != 2 || v.Minor() != 5 || v.Patch() != 0 {
		t.Errorf("semver:apiversion_test - parsed %s, want 2.5.0", v)
	}

	if _, err := ParseAPIVersion("2.5"); err == nil {
		t.Error("semver:apiversion_test - expected error for missing v prefix")
	}
}

func TestCompareAPIVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"v1.4", "v1.4", 0},
		{"v1.3", "v1.4", -1},
		{"v2.2", "v1.9", 1},
		{"v1.10", "v1.9", 1},
	}
	for _, tt := range tests {
		got, err := CompareAPIVersions(tt.a, tt.b)
		if err != nil {
			t.Fatalf("semver:apiversion_test - CompareAPIVersions(%q, %q) error: %v", tt.a, tt.b, err)
		}
		if got != tt.want {
			t.Errorf("semver:apiversion_test - CompareAPIVersions(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}

	if _, err := CompareAPIVersions("bogus", "v1.0"); err == nil {
		t.Error("semver:apiversion_test - expected error for invalid input")
	}
}

func TestSatisfies(t *testing.T) {
	tests := []struct {
		version, constraint string
		want                bool
	}{
		{"v1.4", ">=1.3", true},
		{"v1.2", ">=1.3", false},
		{"v2.5", "^2", true},
		{"v3.0", "^2", false},
	}
	for _, tt := range tests {
		got, err := Satisfies(tt.version, tt.constraint)
		if err != nil {
			t.Fatalf("semver:apiversion_test - Satisfies(%q, %q) error: %v", tt.version, tt.constraint, err)
		}
		if got != tt.want {
			t.Errorf("semver:apiversion_test - Satisfies(%q, %q) = %v, want %v", tt.version, tt.constraint, got, tt.want)
		}
	}

	if _, err := Satisfies("v1.0", "not a constraint"); err == nil {
		t.Error("semver:apiversion_test - expected constraint error")
	}
}

func TestLatest(t *testing.T) {
	got, ok := Latest([]string{"v1.2", "junk", "v2.2", "v1.10"})
	if !ok || got != "v2.2" {
		t.Errorf("semver:apiversion_test - Latest = %q, %v; want v2.2, true", got, ok)
	}
	if _, ok := Latest([]string{"junk"}); ok {
		t.Error("semver:apiversion_test - expected no latest for invalid input")
	}
}

func TestFormatAPIVersion(t *testing.T) {
	if got := FormatAPIVersion(1, 4); got != "v1.4" {
		t.Errorf("semver:apiversion_test - FormatAPIVersion(1, 4) = %q, want v1.4", got)
	}
	v, err := ParseAPIVersion(FormatAPIVersion(2, 5))
	if err != nil || v.Major() != 2 || v.Minor() != 5 {
		t.Errorf("semver:apiversion_test - round trip failed: %v %v", v, err)
	}
}
