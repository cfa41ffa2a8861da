// Package semver parses and compares the "vMAJOR.MINOR" API version strings carried by endpoint groups.
package semver

import (
	"fmt"
	"regexp"
	"sort"

	masterminds "github.com/Masterminds/semver/v3"
)

const logPrefix = "semver:apiversion"

var apiVersionRegex = regexp.MustCompile(`^v\d+(\.\d+){0,2}$`)

// IsAPIVersion reports whether s looks like "v1", "v1.4" or "v2.5.0".
func IsAPIVersion(s string) bool {
	return apiVersionRegex.MatchString(s)
}

// ParseAPIVersion parses an API version string such as "v1.4".
func ParseAPIVersion(s string) (*masterminds.Version, error) {
	if !IsAPIVersion(s) {
		return nil, fmt.Errorf("%s - invalid api version %q", logPrefix, s)
	}
	v, err := masterminds.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("%s - invalid api version %q: %w", logPrefix, s, err)
	}
	return v, nil
}

// CompareAPIVersions returns -1, 0 or 1 as a is lower than, equal to or higher than b.
func CompareAPIVersions(a, b string) (int, error) {
	va, err := ParseAPIVersion(a)
	if err != nil {
		return 0, err
	}
	vb, err := ParseAPIVersion(b)
	if err != nil {
		return 0, err
	}
	return va.Compare(vb), nil
}

// Satisfies reports whether version matches constraint (e.g. ">=1.3", "^2").
func Satisfies(version, constraint string) (bool, error) {
	v, err := ParseAPIVersion(version)
	if err != nil {
		return false, err
	}
	c, err := masterminds.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("%s - invalid constraint %q: %w", logPrefix, constraint, err)
	}
	return c.Check(v), nil
}

// Latest returns the highest valid version in versions. Invalid entries are skipped.
func Latest(versions []string) (string, bool) {
	type parsed struct {
		raw string
		v   *masterminds.Version
	}
	valid := make([]parsed, 0, len(versions))
	for _, s := range versions {
		v, err := ParseAPIVersion(s)
		if err != nil {
			continue
		}
		valid = append(valid, parsed{raw: s, v: v})
	}
	if len(valid) == 0 {
		return "", false
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].v.GreaterThan(valid[j].v) })
	return valid[0].raw, true
}

// FormatAPIVersion renders major and minor as "vMAJOR.MINOR".
func FormatAPIVersion(major, minor uint64) string {
	return fmt.Sprintf("v%d.%d", major, minor)
}
