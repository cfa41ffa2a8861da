// Package resolver turns path templates with {placeholder} tokens into absolute request URLs.
package resolver

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"

	"github.com/morezero/gamestats/pkg/params"
)

const logPrefix = "resolver:resolve"

// CodeMissingParameter is reported when a template token has no matching parameter.
const CodeMissingParameter = "MISSING_PARAMETER"

var (
	tokenRegex = regexp.MustCompile(`\{(\w+)\}`)
	braceRegex = regexp.MustCompile(`\{([^{}]*)\}`)
)

// MissingParameterError is returned when a template names a token the parameter bag does not supply.
type MissingParameterError struct {
	Name     string
	Template string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("%s - %s: no value for {%s} in template %q", logPrefix, CodeMissingParameter, e.Name, e.Template)
}

// Code returns CodeMissingParameter.
func (e *MissingParameterError) Code() string {
	return CodeMissingParameter
}

// Tokens returns the distinct token names in template, in order of first appearance.
func Tokens(template string) []string {
	matches := tokenRegex.FindAllStringSubmatch(template, -1)
	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		names = append(names, m[1])
	}
	return names
}

// Resolve substitutes every token in template from pathParams and appends the
// serialized query. The "?" is only added when at least one query entry survives.
func Resolve(template string, pathParams map[string]string, query params.Query) (string, error) {
	out, err := Substitute(template, pathParams)
	if err != nil {
		return "", err
	}
	if qs := EncodeQuery(query); qs != "" {
		out += "?" + qs
	}
	return out, nil
}

// Substitute replaces all occurrences of every {name} token with its escaped parameter value.
// A brace pair whose name is not a plain word can never be resolved and is reported as missing.
func Substitute(template string, pathParams map[string]string) (string, error) {
	for _, m := range braceRegex.FindAllStringSubmatch(template, -1) {
		if !tokenRegex.MatchString(m[0]) {
			return "", &MissingParameterError{Name: m[1], Template: template}
		}
	}
	for _, name := range Tokens(template) {
		if _, ok := pathParams[name]; !ok {
			return "", &MissingParameterError{Name: name, Template: template}
		}
	}
	return tokenRegex.ReplaceAllStringFunc(template, func(tok string) string {
		return escapeSegment(pathParams[tok[1:len(tok)-1]])
	}), nil
}

// EncodeQuery serializes query as key=value pairs sorted by key. Null values are omitted.
func EncodeQuery(query params.Query) string {
	if len(query) == 0 {
		return ""
	}
	keys := make([]string, 0, len(query))
	for k, v := range query {
		if v.IsNull() {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(keepCommas(url.QueryEscape(query[k].Normalize())))
	}
	return b.String()
}

// escapeSegment percent-encodes a path value. Commas stay literal.
func escapeSegment(v string) string {
	return keepCommas(url.PathEscape(v))
}

func keepCommas(s string) string {
	return strings.ReplaceAll(s, "%2C", ",")
}
