package httpclient

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/samber/lo"
)

// Redacted replaces credential values in logs, error details and dry-run descriptors
const Redacted = "[REDACTED]"

// sensitiveKeys are query, form and field names that carry credentials
var sensitiveKeys = []string{
	"password", "pass", "passwd", "pwd",
	"secret", "secret_key", "token", "api_key", "apikey", "key",
}

// sensitiveHeaders always hold credentials, compared in canonical form
var sensitiveHeaders = []string{"Authorization", "Proxy-Authorization"}

// IsSensitiveKey reports whether a query, form or field name carries a credential
func IsSensitiveKey(name string) bool {
	return lo.Contains(sensitiveKeys, strings.ToLower(name))
}

// RedactURL masks credential query parameters, leaving the rest of the URL intact
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		// unparseable, keep only what precedes the query
		before, _, _ := strings.Cut(raw, "?")
		return before
	}
	if u.User != nil {
		u.User = url.User(u.User.Username())
	}
	if u.RawQuery == "" {
		return u.String()
	}

	query := u.Query()
	for name := range query {
		if IsSensitiveKey(name) {
			query[name] = []string{Redacted}
		}
	}
	u.RawQuery = query.Encode()
	return u.String()
}

// RedactHeaders returns a copy of headers with credential values masked.
// extra names further headers that carry credentials, such as a custom API key header.
func RedactHeaders(headers map[string]string, extra ...string) map[string]string {
	names := lo.Map(append(extra, sensitiveHeaders...), func(name string, _ int) string {
		return http.CanonicalHeaderKey(name)
	})
	return lo.MapEntries(headers, func(k, v string) (string, string) {
		if lo.Contains(names, http.CanonicalHeaderKey(k)) {
			return k, Redacted
		}
		return k, v
	})
}

// RedactFields returns a copy of flat fields with credential values masked
func RedactFields(fields map[string]string) map[string]string {
	return lo.MapValues(fields, func(v string, k string) string {
		if IsSensitiveKey(k) {
			return Redacted
		}
		return v
	})
}
