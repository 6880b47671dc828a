// Package validator decides whether a submitted string is an admissible
// class URL. The rules mirror what the frontend hints at while the user
// types, so both sides agree on what "looks right".
package validator

import (
	"net/url"
	"strings"
)

const gradePageSuffix = "index.html"

// ClassURL reports whether s is an acceptable class URL: longer than ten
// characters, a syntactically valid absolute URL, and ending in the literal
// suffix "index.html" (case sensitive — GradeSource serves lowercase pages).
//
// This is a pure check over the raw string; it never errors, whatever the
// input.
func ClassURL(s string) bool {
	if len(s) <= len(gradePageSuffix) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}
	return strings.HasSuffix(s, gradePageSuffix)
}
