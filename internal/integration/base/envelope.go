package base

import (
	"bytes"
	"html/template"

	ierr "github.com/flexprice/azpay/internal/errors"
)

// Envelope is the uniform outcome of every gateway call
type Envelope struct {
	OK         bool              `json:"ok"`
	StatusCode int               `json:"status_code,omitempty"`
	Headers    map[string]string `json:"headers,omitempty"`
	Result     any               `json:"result,omitempty"`
	Error      *GatewayError     `json:"error,omitempty"`
	DryRun     *DryRun           `json:"dry_run,omitempty"`
}

// ResultAs returns the envelope result as T
func ResultAs[T any](env *Envelope) (T, error) {
	var zero T
	if env == nil {
		return zero, ierr.NewError("envelope is nil").Mark(ierr.ErrSystem)
	}
	result, ok := env.Result.(T)
	if !ok {
		return zero, ierr.NewErrorf("unexpected result type %T", env.Result).
			WithHint("The gateway returned an unexpected result").
			Mark(ierr.ErrSystem)
	}
	return result, nil
}

// DryRun is a fully prepared request that was not sent. Browser based flows
// render it as an auto-submitting form.
type DryRun struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
	Body    string            `json:"body,omitempty"`
}

var formTemplate = template.Must(template.New("form").Parse(`<!DOCTYPE html>
<html>
<body onload="document.forms[0].submit()">
<form method="{{.Method}}" action="{{.URL}}">
{{- range $name, $value := .Fields}}
<input type="hidden" name="{{$name}}" value="{{$value}}">
{{- end}}
<noscript><button type="submit">Continue</button></noscript>
</form>
</body>
</html>
`))

// HTML renders the request as a self-submitting HTML form
func (d *DryRun) HTML() (string, error) {
	var buf bytes.Buffer
	if err := formTemplate.Execute(&buf, d); err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to render payment form").
			Mark(ierr.ErrSystem)
	}
	return buf.String(), nil
}
