package registry

import (
	"errors"
	"testing"
)

func testGroups() []EndpointGroup {
	return []EndpointGroup{
		NewEndpointGroup("champion", "v1.2", []string{"br", "eune", "euw", "kr", "lan", "las", "na", "oce", "ru", "tr"}),
		NewEndpointGroup("lolStatus", "v1.0", []string{"br", "eune", "euw", "lan", "las", "na", "oce", "ru", "tr", "pbe"}),
	}
}

func TestNewEndpointRegistry(t *testing.T) {
	reg, err := NewEndpointRegistry(testGroups())
	if err != nil {
		t.Fatalf("registry:registry_test - unexpected error: %v", err)
	}
	if reg.Len() != 2 {
		t.Errorf("registry:registry_test - Len() = %d, want 2", reg.Len())
	}
	names := reg.Names()
	if len(names) != 2 || names[0] != "champion" || names[1] != "lolStatus" {
		t.Errorf("registry:registry_test - Names() = %v", names)
	}
}

func TestNewEndpointRegistry_RejectsInvalid(t *testing.T) {
	tests := []struct {
		name   string
		groups []EndpointGroup
	}{
		{"empty name", []EndpointGroup{NewEndpointGroup("", "v1.0", []string{"na"})}},
		{"empty version", []EndpointGroup{NewEndpointGroup("champion", "", []string{"na"})}},
		{"duplicate", []EndpointGroup{
			NewEndpointGroup("champion", "v1.2", []string{"na"}),
			NewEndpointGroup("champion", "v1.3", []string{"na"}),
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEndpointRegistry(tt.groups)
			var regErr *RegistryError
			if !errors.As(err, &regErr) || regErr.Code != CodeInvalidCatalog {
				t.Errorf("registry:registry_test - expected %s, got %v", CodeInvalidCatalog, err)
			}
		})
	}
}

func TestEndpointRegistry_Lookup(t *testing.T) {
	reg, err := NewEndpointRegistry(testGroups())
	if err != nil {
		t.Fatalf("registry:registry_test - unexpected error: %v", err)
	}

	g, err := reg.Lookup("champion")
	if err != nil {
		t.Fatalf("registry:registry_test - Lookup(champion) error: %v", err)
	}
	if g.APIVersion != "v1.2" {
		t.Errorf("registry:registry_test - APIVersion = %q, want v1.2", g.APIVersion)
	}

	status, _ := reg.Lookup("lolStatus")
	if status.Allows("kr") {
		t.Error("registry:registry_test - lolStatus must not allow kr")
	}
	if !status.Allows("pbe") {
		t.Error("registry:registry_test - lolStatus must allow pbe")
	}
}

func TestEndpointRegistry_LookupUnknown(t *testing.T) {
	reg, _ := NewEndpointRegistry(testGroups())

	_, err := reg.Lookup("replay")
	var regErr *RegistryError
	if !errors.As(err, &regErr) {
		t.Fatalf("registry:registry_test - expected RegistryError, got %v", err)
	}
	if regErr.Code != CodeUnknownGroup {
		t.Errorf("registry:registry_test - Code = %q, want %q", regErr.Code, CodeUnknownGroup)
	}
}
