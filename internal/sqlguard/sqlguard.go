// Package sqlguard recognises tenant-isolation predicates in model-generated
// SQL text.
//
// The check is textual, not a parse of the statement. It fails closed: text
// that does not contain a recognised predicate is never treated as scoped.
// Recognised form: a tenant_id column (optionally table-qualified or
// double-quoted, any letter case) compared with = to the exact tenant literal
// in single or double quotes, with any whitespace around the operator.
// IN lists, placeholders, and predicates derived through joins are not
// recognised.
package sqlguard

import (
	"regexp"
	"strings"
)

var (
	lineComment  = regexp.MustCompile(`--[^\n]*`)
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// StripComments removes SQL line and block comments so a predicate written
// inside a comment does not count.
func StripComments(query string) string {
	out := blockComment.ReplaceAllString(query, " ")
	return lineComment.ReplaceAllString(out, " ")
}

// predicatePattern builds the matcher for one tenant id. The literal must be
// closed immediately by its matching quote, so 'T10' never satisfies T1.
func predicatePattern(tenantID string) *regexp.Regexp {
	lit := regexp.QuoteMeta(tenantID)

	return regexp.MustCompile(
		`(?:^|[^\w])"?(?i:tenant_id)"?\s*=\s*(?:'` + lit + `'|"` + lit + `")`,
	)
}

// HasTenantPredicate reports whether query contains an equality filter on
// tenant_id against tenantID. An empty tenant id never matches.
func HasTenantPredicate(query, tenantID string) bool {
	if strings.TrimSpace(tenantID) == "" || strings.TrimSpace(query) == "" {
		return false
	}

	return predicatePattern(tenantID).MatchString(StripComments(query))
}

// Predicate renders the canonical predicate text for a tenant, as shown to the
// model in the system prompt.
func Predicate(tenantID string) string {
	return "tenant_id = '" + tenantID + "'"
}

// sessionState matches calls that read or change session settings, nested
// query runners, and unicode-escaped identifiers that could hide either.
var sessionState = regexp.MustCompile(`(?i)(set_config|current_setting|_to_xml|query_to_|u&["'])`)

// TouchesSessionState reports whether query reaches session settings, where
// the row-level-security context lives. Comments are ignored.
func TouchesSessionState(query string) bool {
	return sessionState.MatchString(StripComments(query))
}
