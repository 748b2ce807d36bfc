package base

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/httpclient"
	"github.com/flexprice/azpay/internal/types"
	"github.com/samber/lo"
)

// execute runs one operation: build, resolve URL, encode, then either describe
// the request (dry-run) or send it and parse the response.
func (c *Client) execute(ctx context.Context, ep Endpoint, params any, call *callOptions) (*Envelope, error) {
	log := c.logger.With(
		"operation", ep.Name,
		"call_id", types.GenerateUUIDWithPrefix(types.UUID_PREFIX_CALL),
		"request_id", types.GetRequestID(ctx))

	prepared, err := ep.Handler.BuildRequest(ctx, params)
	if err != nil {
		return nil, err
	}

	base := lo.CoalesceOrEmpty(call.baseURL, ep.BaseURL, c.baseURL)
	if base == "" && !isAbsolute(ep.Path) {
		return nil, ierr.NewErrorf("no base url configured for %s", c.name).
			WithHint("Configure a base URL for the gateway").
			WithReportableDetails(map[string]any{"gateway": c.name, "operation": ep.Name}).
			Mark(ierr.ErrConfiguration)
	}

	target, consumed, err := BuildURL(joinURL(base, ep.Path), prepared.Values, prepared.PathParams)
	if err != nil {
		return nil, err
	}

	req, fields, err := c.encode(ep, prepared, target, consumed, call)
	if err != nil {
		return nil, err
	}

	logURL := httpclient.RedactURL(req.URL)

	if c.isDryRun(ep, call) {
		log.Debugw("dry run, request not sent", "url", logURL)
		return &Envelope{
			OK:     true,
			DryRun: c.describe(ep, prepared, req, fields),
		}, nil
	}

	log.Debugw("sending request", "method", req.Method, "url", logURL)
	resp, err := c.transport.Send(ctx, req)
	if err != nil {
		if !ierr.IsHTTPClient(err) {
			err = ierr.WithError(err).
				WithHintf("Request to %s failed", c.name).
				WithReportableDetails(map[string]any{"operation": ep.Name, "url": logURL}).
				Mark(ierr.ErrHTTPClient)
		}
		return nil, err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Errorw("gateway returned non-2xx status",
			"client", c.name,
			"url", logURL,
			"status_code", resp.StatusCode,
			"response_body", string(resp.Body))
	}

	parsed, err := ep.Handler.ParseResponse(ctx, resp)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		OK:         resp.StatusCode < http.StatusBadRequest && parsed.Error == nil,
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Result:     parsed.Result,
		Error:      parsed.Error,
	}, nil
}

// encode produces the wire request. Fields consumed by the URL template are not
// sent again in the body or query.
func (c *Client) encode(ep Endpoint, prepared *Prepared, target string, consumed []string, call *callOptions) (*httpclient.Request, map[string]string, error) {
	headers := lo.Assign(c.headers)
	headers["Accept"] = "application/json"
	c.auth.apply(headers)

	payload := prepared.Payload
	body := payload.Raw
	fields := lo.OmitByKeys(payload.Fields, consumed)
	flat := lo.MapValues(fields, func(v any, _ string) string { return types.Stringify(v) })

	switch ep.encoding() {
	case EncodingQuery:
		if len(flat) > 0 {
			sep := "?"
			if strings.Contains(target, "?") {
				sep = "&"
			}
			target += sep + toValues(flat).Encode()
		}
	case EncodingForm:
		headers["Content-Type"] = "application/x-www-form-urlencoded"
		if body == nil {
			body = []byte(toValues(flat).Encode())
		}
	default:
		headers["Content-Type"] = "application/json"
		if body == nil && len(fields) > 0 {
			encoded, err := types.WireJSON.Marshal(fields)
			if err != nil {
				return nil, nil, ierr.WithError(err).
					WithHint("Failed to encode request body").
					Mark(ierr.ErrValidation)
			}
			body = encoded
		}
	}

	headers = lo.Assign(headers, payload.Headers, call.headers)

	return &httpclient.Request{
		Method:  ep.Method,
		URL:     target,
		Headers: headers,
		Body:    body,
	}, flat, nil
}

// describe builds the dry-run descriptor returned to callers. Credentials are
// masked: the auth header, credential query parameters and credential fields.
func (c *Client) describe(ep Endpoint, prepared *Prepared, req *httpclient.Request, fields map[string]string) *DryRun {
	redacted := httpclient.RedactFields(fields)

	body := string(req.Body)
	if ep.encoding() == EncodingForm && prepared.Payload.Raw == nil {
		body = toValues(redacted).Encode()
	}

	return &DryRun{
		URL:     httpclient.RedactURL(req.URL),
		Method:  req.Method,
		Headers: httpclient.RedactHeaders(req.Headers, c.auth.headerName()),
		Fields:  redacted,
		Body:    body,
	}
}

func (c *Client) isDryRun(ep Endpoint, call *callOptions) bool {
	if call.dryRun != nil {
		return *call.dryRun
	}
	return c.dryRun || ep.DryRun
}

func toValues(fields map[string]string) url.Values {
	values := url.Values{}
	for k, v := range fields {
		values.Set(k, v)
	}
	return values
}

func isAbsolute(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
