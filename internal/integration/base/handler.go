package base

import (
	"bufio"
	"bytes"
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/httpclient"
	"github.com/flexprice/azpay/internal/types"
	"github.com/flexprice/azpay/internal/validator"
	"github.com/samber/lo"
)

// Handler converts call arguments into a wire request and a wire response back
// into a typed result. Implementations keep no per-call state: everything a
// later phase needs travels in the returned Prepared value.
type Handler interface {
	BuildRequest(ctx context.Context, params any) (*Prepared, error)
	ParseResponse(ctx context.Context, resp *httpclient.Response) (*Parsed, error)
}

// Payload is the wire form produced by a handler
type Payload struct {
	// Fields are encoded according to the endpoint encoding
	Fields map[string]any
	// Raw, when set, is sent verbatim instead of Fields
	Raw     []byte
	Headers map[string]string
}

// Prepared is the call-scoped result of BuildRequest
type Prepared struct {
	// Request is the validated request, a *Req for typed handlers
	Request any
	// Values feed URL placeholders
	Values map[string]any
	// PathParams are fields that must be consumed by the URL template
	PathParams []string
	Payload    Payload
}

// Parsed is the outcome of ParseResponse. Error is set for business failures.
type Parsed struct {
	Result any
	Error  *GatewayError
}

// PreFunc injects constant or default fields before validation
type PreFunc func(ctx context.Context, fields map[string]any) error

// PostFunc wraps, encodes or signs the validated fields
type PostFunc func(ctx context.Context, fields map[string]any) (Payload, error)

// DecodeFunc decodes a response body into out
type DecodeFunc func(body []byte, out any) error

// Schema is a typed handler: call arguments are decoded into Req and validated,
// 2xx/3xx bodies are decoded into Resp and everything from 400 up into Fail.
type Schema[Req any, Resp any, Fail any] struct {
	Gateway    GatewayType
	Pre        PreFunc
	Post       PostFunc
	PathParams []string
	// Check inspects a decoded success body for a provider failure discriminant
	Check func(resp *Resp) *GatewayError
	// Failure converts a decoded error body into a GatewayError
	Failure func(statusCode int, fail *Fail) *GatewayError
	// Decode replaces JSON decoding of response bodies
	Decode DecodeFunc
}

func (s *Schema[Req, Resp, Fail]) BuildRequest(ctx context.Context, params any) (*Prepared, error) {
	fields, err := toFields(params)
	if err != nil {
		return nil, err
	}

	if s.Pre != nil {
		if err := s.Pre(ctx, fields); err != nil {
			return nil, err
		}
	}

	req, err := types.ToStruct[Req](fields)
	if err != nil {
		return nil, err
	}
	if err := validator.ValidateRequest(req); err != nil {
		return nil, err
	}

	wire, err := types.ToMap(req)
	if err != nil {
		return nil, err
	}

	payload := Payload{Fields: lo.Assign(wire)}
	if s.Post != nil {
		payload, err = s.Post(ctx, lo.Assign(wire))
		if err != nil {
			return nil, err
		}
	}

	return &Prepared{
		Request:    &req,
		Values:     wire,
		PathParams: s.PathParams,
		Payload:    payload,
	}, nil
}

func (s *Schema[Req, Resp, Fail]) ParseResponse(_ context.Context, resp *httpclient.Response) (*Parsed, error) {
	decode := s.Decode
	if decode == nil {
		decode = decodeJSON
	}

	if resp.StatusCode < http.StatusBadRequest {
		var out Resp
		if err := decodeBody(decode, resp.Body, &out); err != nil {
			return nil, invalidResponse(s.Gateway, resp, err)
		}
		parsed := &Parsed{Result: &out}
		if s.Check != nil {
			parsed.Error = s.Check(&out)
		}
		return parsed, nil
	}

	var fail Fail
	if err := decodeBody(decode, resp.Body, &fail); err != nil {
		return nil, invalidResponse(s.Gateway, resp, err)
	}

	var gwErr *GatewayError
	if s.Failure != nil {
		gwErr = s.Failure(resp.StatusCode, &fail)
	}
	if gwErr == nil {
		gwErr = statusError(s.Gateway, resp.StatusCode)
	}
	return &Parsed{Result: &fail, Error: gwErr}, nil
}

// passthrough is the schemaless handler: arguments go out verbatim and JSON
// responses come back as maps.
type passthrough struct {
	gateway GatewayType
}

// Passthrough returns the default handler used when an endpoint declares none
func Passthrough(gateway GatewayType) Handler {
	return &passthrough{gateway: gateway}
}

func (p *passthrough) BuildRequest(_ context.Context, params any) (*Prepared, error) {
	fields, err := toFields(params)
	if err != nil {
		return nil, err
	}
	return &Prepared{
		Request: fields,
		Values:  fields,
		Payload: Payload{Fields: lo.Assign(fields)},
	}, nil
}

func (p *passthrough) ParseResponse(_ context.Context, resp *httpclient.Response) (*Parsed, error) {
	var result any
	if len(resp.Body) > 0 {
		if err := types.WireJSON.Unmarshal(resp.Body, &result); err != nil {
			result = string(resp.Body)
		}
	}

	parsed := &Parsed{Result: result}
	if resp.StatusCode >= http.StatusBadRequest {
		parsed.Error = statusError(p.gateway, resp.StatusCode)
	}
	return parsed, nil
}

// SetDefault sets fields[key] unless the caller already supplied a non-empty value
func SetDefault(fields map[string]any, key string, value any) {
	if value == nil || value == "" {
		return
	}
	if current, ok := fields[key]; ok && current != nil && current != "" {
		return
	}
	fields[key] = value
}

// toFields turns call arguments into a fresh field map
func toFields(params any) (map[string]any, error) {
	switch p := params.(type) {
	case nil:
		return map[string]any{}, nil
	case Params:
		return lo.Assign(map[string]any(p)), nil
	case map[string]any:
		return lo.Assign(p), nil
	default:
		return types.ToMap(params)
	}
}

// DecodeKeyValue decodes KEY=VALUE pairs separated by & or newlines, as sent
// by CGI style gateways. Lines without a pair are ignored.
func DecodeKeyValue(body []byte, out any) error {
	fields := make(map[string]any)

	scanner := bufio.NewScanner(bytes.NewReader(body))
	// a whole body may arrive on one line
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), max(len(body)+1, bufio.MaxScanTokenSize))
	for scanner.Scan() {
		for _, pair := range strings.Split(scanner.Text(), "&") {
			key, value, found := strings.Cut(strings.TrimSpace(pair), "=")
			if !found || key == "" {
				continue
			}
			if unescaped, err := url.QueryUnescape(value); err == nil {
				value = unescaped
			}
			fields[key] = value
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	return types.Decode(fields, out)
}

func decodeJSON(body []byte, out any) error {
	return types.WireJSON.Unmarshal(body, out)
}

func decodeBody(decode DecodeFunc, body []byte, out any) error {
	if len(body) == 0 {
		return nil
	}
	return decode(body, out)
}

func invalidResponse(gateway GatewayType, resp *httpclient.Response, err error) error {
	return ierr.WithError(err).
		WithHintf("Invalid response from %s", gateway).
		WithReportableDetails(map[string]any{
			"gateway":       gateway,
			"status_code":   resp.StatusCode,
			"response_body": string(resp.Body),
		}).
		Mark(ierr.ErrValidation)
}

func statusError(gateway GatewayType, statusCode int) *GatewayError {
	return &GatewayError{
		Gateway: string(gateway),
		Code:    strconv.Itoa(statusCode),
		Message: http.StatusText(statusCode),
	}
}
