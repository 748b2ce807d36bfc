package base

import (
	"net/url"
	"regexp"
	"strings"

	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/types"
	"github.com/samber/lo"
)

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z0-9_]+)\}`)

// BuildURL substitutes {name} placeholders in template with escaped values and
// returns the field names it consumed. Every placeholder must have a value and
// every declared path parameter must appear in the template.
func BuildURL(template string, values map[string]any, pathParams []string) (string, []string, error) {
	var (
		consumed []string
		missing  []string
	)

	result := placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := values[name]
		str := types.Stringify(value)
		if !ok || str == "" {
			missing = append(missing, name)
			return match
		}
		consumed = append(consumed, name)
		return url.PathEscape(str)
	})

	if len(missing) > 0 {
		return "", nil, ierr.NewErrorf("missing path parameters: %s", strings.Join(missing, ", ")).
			WithHintf("Provide values for %s", strings.Join(missing, ", ")).
			WithReportableDetails(map[string]any{"url": template, "missing": missing}).
			Mark(ierr.ErrConfiguration)
	}

	if unused, _ := lo.Difference(pathParams, consumed); len(unused) > 0 {
		return "", nil, ierr.NewErrorf("path parameters not present in url: %s", strings.Join(unused, ", ")).
			WithHint("Declared path parameters must appear in the endpoint path").
			WithReportableDetails(map[string]any{"url": template, "unused": unused}).
			Mark(ierr.ErrConfiguration)
	}

	return result, lo.Uniq(consumed), nil
}

// joinURL appends path to base with exactly one slash between them
func joinURL(base, path string) string {
	if base == "" {
		return path
	}
	if isAbsolute(path) {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
