package api

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	v1 "github.com/flexprice/azpay/internal/api/v1"
	"github.com/flexprice/azpay/internal/config"
	"github.com/flexprice/azpay/internal/httpclient"
	"github.com/flexprice/azpay/internal/integration"
	"github.com/flexprice/azpay/internal/security"
	"github.com/flexprice/azpay/internal/testutil"
	"github.com/flexprice/azpay/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	testutil.BaseGatewayTestSuite
	router *gin.Engine
	signer *security.DigestSigner
}

func TestRouter(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.BaseGatewayTestSuite.SetupTest()
	gin.SetMode(gin.TestMode)

	cfg := s.GetConfig()
	cfg.Gateways.EPoint = config.EPointConfig{
		Enabled:    true,
		PublicKey:  "i000000001",
		PrivateKey: "priv",
		Language:   "az",
		Currency:   "AZN",
	}

	s.router = s.newRouter(cfg, s.GetTransport())

	var err error
	s.signer, err = security.NewDigestSigner("priv")
	s.Require().NoError(err)
}

func (s *RouterSuite) newRouter(cfg *config.Configuration, transport httpclient.Client) *gin.Engine {
	manager, err := integration.NewFactory(cfg, s.GetLogger(), transport).NewManager()
	s.Require().NoError(err)

	return NewRouter(Handlers{
		Health:   v1.NewHealthHandler(manager),
		Gateway:  v1.NewGatewayHandler(manager, s.GetLogger()),
		Callback: v1.NewCallbackHandler(manager, s.GetLogger()),
	}, s.GetLogger())
}

func (s *RouterSuite) credentialConfig() *config.Configuration {
	cfg := config.GetDefaultConfig()
	cfg.Gateways.Kapital = config.KapitalConfig{
		Enabled:  true,
		Username: "TerminalSys/kapital",
		Password: "kapital123",
	}
	cfg.Gateways.PostaGuvercini = config.PostaGuverciniConfig{
		Enabled:  true,
		BaseURL:  "https://sms.test/api_http",
		User:     "u",
		Password: "S3cretPass",
	}
	return cfg
}

func (s *RouterSuite) do(method, target, contentType, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder) map[string]any {
	var out map[string]any
	s.Require().NoError(types.WireJSON.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *RouterSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", "")
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok","gateways":1}`, w.Body.String())
	s.NotEmpty(w.Header().Get(types.HeaderRequestID))
}

func (s *RouterSuite) TestRequestIDIsEchoed() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(types.HeaderRequestID, "req_fixed")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal("req_fixed", w.Header().Get(types.HeaderRequestID))
}

func (s *RouterSuite) TestListGateways() {
	w := s.do(http.MethodGet, "/v1/gateways", "", "")
	s.Require().Equal(http.StatusOK, w.Code)

	out := s.decode(w)
	gateways := out["gateways"].([]any)
	s.Require().Len(gateways, 1)

	epoint := gateways[0].(map[string]any)
	s.Equal("epoint", epoint["gateway"])
	s.Equal(true, epoint["callbacks"])
	s.Contains(epoint["operations"], "pay")
}

func (s *RouterSuite) TestInvoke() {
	s.GetTransport().RegisterJSONResponse("/request", http.StatusOK,
		`{"status":"success","transaction":"te001","redirect_url":"https://epoint.az/checkout/te001"}`)

	w := s.do(http.MethodPost, "/v1/gateways/epoint/pay", "application/json", `{"amount":10.5,"order_id":"ORD-1"}`)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	out := s.decode(w)
	s.Equal(true, out["ok"])
	s.Equal(1, s.GetTransport().Calls())
}

func (s *RouterSuite) TestInvokeDryRun() {
	w := s.do(http.MethodPost, "/v1/gateways/epoint/pay?dry_run=true", "application/json", `{"amount":"10.50","order_id":"ORD-1"}`)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Zero(s.GetTransport().Calls())

	dryRun := s.decode(w)["dry_run"].(map[string]any)
	s.Equal("https://epoint.az/api/1/request", dryRun["url"])
	fields := dryRun["fields"].(map[string]any)
	s.Contains(fields, security.FieldData)
	s.Contains(fields, security.FieldSignature)
}

func (s *RouterSuite) TestInvokeErrors() {
	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{name: "unknown gateway", target: "/v1/gateways/paypal/pay", body: `{}`, status: http.StatusNotFound},
		{name: "unknown operation", target: "/v1/gateways/epoint/capture", body: `{}`, status: http.StatusNotFound},
		{name: "malformed body", target: "/v1/gateways/epoint/pay", body: `{"amount":`, status: http.StatusBadRequest},
		{name: "bad dry_run flag", target: "/v1/gateways/epoint/pay?dry_run=maybe", body: `{}`, status: http.StatusBadRequest},
		{name: "missing order id", target: "/v1/gateways/epoint/pay", body: `{"amount":1}`, status: http.StatusBadRequest},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			w := s.do(http.MethodPost, tt.target, "application/json", tt.body)
			s.Equal(tt.status, w.Code, w.Body.String())

			out := s.decode(w)
			s.Equal(false, out["success"])
			s.NotEmpty(out["error"].(map[string]any)["message"])
		})
	}
	s.Zero(s.GetTransport().Calls())
}

func (s *RouterSuite) TestRenderForm() {
	w := s.do(http.MethodPost, "/v1/gateways/epoint/pay/form", "application/json", `{"amount":"10.50","order_id":"ORD-1"}`)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	s.Contains(w.Header().Get("Content-Type"), "text/html")
	s.Contains(w.Body.String(), `action="https://epoint.az/api/1/request"`)
	s.Contains(w.Body.String(), `name="signature"`)
	s.Zero(s.GetTransport().Calls())
}

func (s *RouterSuite) TestCallback() {
	data, signature, err := s.signer.Seal(map[string]any{
		"order_id":    "ORD-1",
		"status":      "success",
		"transaction": "te001",
	})
	s.Require().NoError(err)

	form := url.Values{security.FieldData: {data}, security.FieldSignature: {signature}}
	w := s.do(http.MethodPost, "/v1/callbacks/epoint", "application/x-www-form-urlencoded", form.Encode())
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	out := s.decode(w)
	s.Equal(true, out["verified"])
	s.Equal("te001", out["payload"].(map[string]any)["transaction"])
}

func (s *RouterSuite) TestCallbackSignatureMismatch() {
	data, _, err := s.signer.Seal(map[string]any{"order_id": "ORD-1", "status": "success"})
	s.Require().NoError(err)

	form := url.Values{security.FieldData: {data}, security.FieldSignature: {"forged"}}
	w := s.do(http.MethodPost, "/v1/callbacks/epoint", "application/x-www-form-urlencoded", form.Encode())
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *RouterSuite) TestCallbackUnknownGateway() {
	w := s.do(http.MethodPost, "/v1/callbacks/lsim", "application/x-www-form-urlencoded", "")
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *RouterSuite) TestDryRunHidesAuthorization() {
	router := s.newRouter(s.credentialConfig(), s.GetTransport())

	req := httptest.NewRequest(http.MethodPost, "/v1/gateways/kapital/get_order?dry_run=true", strings.NewReader(`{"order_id":"42"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Zero(s.GetTransport().Calls())

	s.NotContains(w.Body.String(), "VGVybWluYWxTeXMva2FwaXRhbDprYXBpdGFsMTIz")
	s.NotContains(w.Body.String(), "Basic ")

	headers := s.decode(w)["dry_run"].(map[string]any)["headers"].(map[string]any)
	s.Equal(httpclient.Redacted, headers["Authorization"])
}

func (s *RouterSuite) TestDryRunHidesQueryCredentials() {
	router := s.newRouter(s.credentialConfig(), s.GetTransport())

	req := httptest.NewRequest(http.MethodPost, "/v1/gateways/posta_guvercini/credit?dry_run=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.NotContains(w.Body.String(), "S3cretPass")
}

func (s *RouterSuite) TestTransportFailureHidesQueryCredentials() {
	cfg := s.credentialConfig()
	cfg.Gateways.PostaGuvercini.BaseURL = "http://127.0.0.1:1"
	router := s.newRouter(cfg, httpclient.NewClient(httpclient.ClientConfig{Timeout: time.Second}))

	req := httptest.NewRequest(http.MethodPost, "/v1/gateways/posta_guvercini/credit", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	s.Equal(http.StatusBadGateway, w.Code)
	s.NotContains(w.Body.String(), "S3cretPass")
}

func (s *RouterSuite) TestRenderFormRejectsNonFormEndpoints() {
	router := s.newRouter(s.credentialConfig(), s.GetTransport())

	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{name: "json endpoint", target: "/v1/gateways/kapital/get_order/form", body: `{"order_id":"42"}`, status: http.StatusBadRequest},
		{name: "query endpoint", target: "/v1/gateways/posta_guvercini/credit/form", body: `{}`, status: http.StatusBadRequest},
		{name: "unknown operation", target: "/v1/gateways/kapital/nope/form", body: `{}`, status: http.StatusNotFound},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := httptest.NewRequest(http.MethodPost, tt.target, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			s.Equal(tt.status, w.Code, w.Body.String())
			s.NotContains(w.Header().Get("Content-Type"), "text/html")
		})
	}
	s.Zero(s.GetTransport().Calls())
}
