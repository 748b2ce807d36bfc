package base

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/cockroachdb/errors"
	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/httpclient"
	"github.com/flexprice/azpay/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type ClientSuite struct {
	testutil.BaseGatewayTestSuite
	client *Client
}

func TestClient(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	s.BaseGatewayTestSuite.SetupTest()
	s.client = NewClient("test",
		WithBaseURL("https://api.test/v1"),
		WithTransport(s.GetTransport()),
		WithLogger(s.GetLogger()),
		WithAuth(AuthConfig{Type: AuthTypeBasicAuth, Username: "user", Password: "pass"}),
		WithHeader("X-Client", "azpay"),
	)
	s.client.MustRegister(
		Endpoint{Name: "create_order", Path: "/order", Method: http.MethodPost},
		Endpoint{Name: "get_order", Path: "/order/{order_id}", Method: http.MethodGet},
		Endpoint{Name: "refund", Path: "/order/{order_id}/refund", Method: http.MethodPost, Encoding: EncodingForm},
		Endpoint{Name: "checkout", Path: "/checkout", Method: http.MethodPost, Encoding: EncodingForm, DryRun: true},
	)
}

func (s *ClientSuite) TestOperations() {
	s.Equal([]string{"checkout", "create_order", "get_order", "refund"}, s.client.Operations())
}

func (s *ClientSuite) TestDispatchesToRegisteredEndpoint() {
	s.GetTransport().RegisterJSONResponse("/order", http.StatusOK, `{"id":"1"}`)
	s.GetTransport().RegisterJSONResponse("/order/42", http.StatusOK, `{"id":"42"}`)

	env, err := s.client.Invoke(s.GetContext(), "create_order", Params{"amount": "10"})
	s.Require().NoError(err)
	s.True(env.OK)
	s.Equal(map[string]any{"id": "1"}, env.Result)

	req := s.GetTransport().LastRequest()
	s.Equal(http.MethodPost, req.Method)
	s.Equal("https://api.test/v1/order", req.URL)
	s.JSONEq(`{"amount":"10"}`, string(req.Body))
	s.Equal("application/json", req.Headers["Content-Type"])
	s.Equal("Basic dXNlcjpwYXNz", req.Headers["Authorization"])
	s.Equal("azpay", req.Headers["X-Client"])

	env, err = s.client.Invoke(s.GetContext(), "get_order", Params{"order_id": "42", "lang": "az"})
	s.Require().NoError(err)
	s.Equal(map[string]any{"id": "42"}, env.Result)

	req = s.GetTransport().LastRequest()
	s.Equal(http.MethodGet, req.Method)
	s.Equal("https://api.test/v1/order/42?lang=az", req.URL)
	s.Nil(req.Body)
}

func (s *ClientSuite) TestPathParamsAreNotResent() {
	s.GetTransport().RegisterJSONResponse("/refund", http.StatusOK, `{}`)

	_, err := s.client.Invoke(s.GetContext(), "refund", Params{"order_id": "7", "amount": "1.50"})
	s.Require().NoError(err)

	req := s.GetTransport().LastRequest()
	s.Equal("https://api.test/v1/order/7/refund", req.URL)
	s.Equal("application/x-www-form-urlencoded", req.Headers["Content-Type"])
	values, err := url.ParseQuery(string(req.Body))
	s.Require().NoError(err)
	s.Equal(url.Values{"amount": {"1.50"}}, values)
}

func (s *ClientSuite) TestUnknownOperation() {
	_, err := s.client.Invoke(s.GetContext(), "capture", nil)
	s.Require().Error(err)
	s.True(ierr.IsNotFound(err))
	s.Zero(s.GetTransport().Calls())
}

func (s *ClientSuite) TestDuplicateRegistrationLastWins() {
	s.client.MustRegister(Endpoint{Name: "create_order", Path: "/orders/v2", Method: http.MethodPost})
	s.GetTransport().RegisterJSONResponse("/orders/v2", http.StatusOK, `{}`)

	_, err := s.client.Invoke(s.GetContext(), "create_order", nil)
	s.Require().NoError(err)
	s.Equal("https://api.test/v1/orders/v2", s.GetTransport().LastRequest().URL)
}

func (s *ClientSuite) TestRegisterRejectsInvalidEndpoints() {
	s.True(ierr.IsConfiguration(s.client.Register(Endpoint{Name: "x", Path: "/x", Method: http.MethodPut})))
	s.True(ierr.IsConfiguration(s.client.Register(Endpoint{Name: "x", Method: http.MethodGet})))
	s.True(ierr.IsConfiguration(s.client.Register(Endpoint{Path: "/x", Method: http.MethodGet})))
}

func (s *ClientSuite) TestMissingBaseURL() {
	client := NewClient("bare", WithTransport(s.GetTransport()), WithLogger(s.GetLogger()))
	client.MustRegister(Endpoint{Name: "ping", Path: "/ping", Method: http.MethodGet})

	_, err := client.Invoke(s.GetContext(), "ping", nil)
	s.Require().Error(err)
	s.True(ierr.IsConfiguration(err))

	s.GetTransport().RegisterJSONResponse("/ping", http.StatusOK, `{}`)
	env, err := client.Invoke(s.GetContext(), "ping", nil, CallBaseURL("https://other.test"))
	s.Require().NoError(err)
	s.True(env.OK)
	s.Equal("https://other.test/ping", s.GetTransport().LastRequest().URL)
}

func (s *ClientSuite) TestMissingPathParam() {
	_, err := s.client.Invoke(s.GetContext(), "get_order", nil)
	s.Require().Error(err)
	s.True(ierr.IsConfiguration(err))
	s.Zero(s.GetTransport().Calls())
}

func (s *ClientSuite) TestEndpointDryRunPerformsNoIO() {
	env, err := s.client.Invoke(s.GetContext(), "checkout", Params{"amount": "10.00", "order": "ORD-1"})
	s.Require().NoError(err)
	s.Zero(s.GetTransport().Calls())

	s.True(env.OK)
	s.Require().NotNil(env.DryRun)
	s.Equal("https://api.test/v1/checkout", env.DryRun.URL)
	s.Equal(http.MethodPost, env.DryRun.Method)
	s.Equal(map[string]string{"amount": "10.00", "order": "ORD-1"}, env.DryRun.Fields)
	s.Equal("amount=10.00&order=ORD-1", env.DryRun.Body)
}

func (s *ClientSuite) TestClientWideDryRun() {
	client := NewClient("test",
		WithBaseURL("https://api.test/v1"),
		WithTransport(s.GetTransport()),
		WithLogger(s.GetLogger()),
		WithDryRun(true),
	)
	client.MustRegister(Endpoint{Name: "create_order", Path: "/order", Method: http.MethodPost})

	for _, op := range client.Operations() {
		env, err := client.Invoke(s.GetContext(), op, Params{"amount": "1"})
		s.Require().NoError(err)
		s.NotNil(env.DryRun)
	}
	s.Zero(s.GetTransport().Calls())
}

func (s *ClientSuite) TestCallDryRunOverride() {
	env, err := s.client.Invoke(s.GetContext(), "create_order", Params{"amount": "1"}, CallDryRun(true))
	s.Require().NoError(err)
	s.JSONEq(`{"amount":"1"}`, env.DryRun.Body)
	s.Zero(s.GetTransport().Calls())

	s.GetTransport().RegisterJSONResponse("/checkout", http.StatusOK, `{}`)
	env, err = s.client.Invoke(s.GetContext(), "checkout", nil, CallDryRun(false))
	s.Require().NoError(err)
	s.Nil(env.DryRun)
	s.Equal(1, s.GetTransport().Calls())
}

func (s *ClientSuite) TestDryRunMasksCredentials() {
	env, err := s.client.Invoke(s.GetContext(), "get_order", Params{"order_id": 42, "user": "u", "password": "S3cretPass"}, CallDryRun(true))
	s.Require().NoError(err)
	s.Zero(s.GetTransport().Calls())

	dryRun := env.DryRun
	s.Require().NotNil(dryRun)
	s.Equal(httpclient.Redacted, dryRun.Headers["Authorization"])
	s.Equal("azpay", dryRun.Headers["X-Client"])
	s.Equal("https://api.test/v1/order/42?password=%5BREDACTED%5D&user=u", dryRun.URL)
	s.Equal(map[string]string{"user": "u", "password": httpclient.Redacted}, dryRun.Fields)
}

func (s *ClientSuite) TestDryRunMasksCustomAuthHeader() {
	client := NewClient("test",
		WithBaseURL("https://api.test/v1"),
		WithTransport(s.GetTransport()),
		WithLogger(s.GetLogger()),
		WithAuth(AuthConfig{Type: AuthTypeHeader, Header: "X-Api-Key", Token: "k-123"}),
		WithDryRun(true),
	)
	client.MustRegister(Endpoint{Name: "checkout", Path: "/checkout", Method: http.MethodPost, Encoding: EncodingForm})

	env, err := client.Invoke(s.GetContext(), "checkout", Params{"order": "ORD-1", "secret": "sss"})
	s.Require().NoError(err)
	s.Equal(httpclient.Redacted, env.DryRun.Headers["X-Api-Key"])
	s.NotContains(env.DryRun.Body, "sss")
	s.Equal("order=ORD-1&secret=%5BREDACTED%5D", env.DryRun.Body)
}

func (s *ClientSuite) TestCallHeader() {
	s.GetTransport().RegisterJSONResponse("/order", http.StatusOK, `{}`)

	_, err := s.client.Invoke(s.GetContext(), "create_order", nil, CallHeader("Idempotency-Key", "abc"))
	s.Require().NoError(err)
	s.Equal("abc", s.GetTransport().LastRequest().Headers["Idempotency-Key"])
}

func (s *ClientSuite) TestNon2xxIsEnvelopeNotError() {
	s.GetTransport().RegisterJSONResponse("/order", http.StatusBadRequest, `{"message":"bad"}`)

	env, err := s.client.Invoke(s.GetContext(), "create_order", nil)
	s.Require().NoError(err)
	s.False(env.OK)
	s.Equal(http.StatusBadRequest, env.StatusCode)
	s.Require().NotNil(env.Error)
	s.Equal("400", env.Error.Code)
	s.Equal("test", env.Error.Gateway)
}

func (s *ClientSuite) TestTransportFailure() {
	s.GetTransport().FailWith(errors.New("connection refused"))

	_, err := s.client.Invoke(s.GetContext(), "create_order", nil)
	s.Require().Error(err)
	s.True(ierr.IsHTTPClient(err))
}

func (s *ClientSuite) TestTransportFailureHidesCredentials() {
	s.GetTransport().FailWith(errors.New("connection refused"))

	_, err := s.client.Invoke(s.GetContext(), "get_order", Params{"order_id": 1, "password": "S3cretPass"})
	s.Require().Error(err)
	s.True(ierr.IsHTTPClient(err))

	var payloads []string
	for _, sd := range errors.GetAllSafeDetails(err) {
		payloads = append(payloads, sd.SafeDetails...)
	}
	s.NotEmpty(payloads)
	for _, payload := range payloads {
		s.NotContains(payload, "S3cretPass")
	}
}

func (s *ClientSuite) TestInvokeAsync() {
	s.GetTransport().RegisterJSONResponse("/order", http.StatusOK, `{"id":"1"}`)

	future := s.client.InvokeAsync(s.GetContext(), "create_order", nil)
	env, err := future.Wait(s.GetContext())
	s.Require().NoError(err)
	s.True(env.OK)

	select {
	case <-future.Done():
	default:
		s.Fail("future should be done")
	}
}

func (s *ClientSuite) TestInvokeAsyncRecoversPanics() {
	s.client.MustRegister(Endpoint{Name: "boom", Path: "/boom", Method: http.MethodPost, Handler: panicHandler{}})

	_, err := s.client.InvokeAsync(s.GetContext(), "boom", nil).Wait(s.GetContext())
	s.Require().Error(err)
	s.True(errors.Is(err, ierr.ErrSystem))
}

func (s *ClientSuite) TestInvokeAllKeepsOrder() {
	s.GetTransport().RegisterJSONResponse("/order/1", http.StatusOK, `{"id":"1"}`)
	s.GetTransport().RegisterJSONResponse("/order/2", http.StatusOK, `{"id":"2"}`)

	results := s.client.InvokeAll(s.GetContext(), []BatchCall{
		{Operation: "get_order", Params: Params{"order_id": "1"}},
		{Operation: "missing"},
		{Operation: "get_order", Params: Params{"order_id": "2"}},
	}, 2)

	s.Require().Len(results, 3)
	s.Equal(map[string]any{"id": "1"}, results[0].Envelope.Result)
	s.True(ierr.IsNotFound(results[1].Err))
	s.Equal(map[string]any{"id": "2"}, results[2].Envelope.Result)
}

func (s *ClientSuite) TestTypedResult() {
	s.client.MustRegister(Endpoint{
		Name:    "typed",
		Path:    "/typed",
		Method:  http.MethodPost,
		Handler: &Schema[testOrderRequest, testOrderResponse, testErrorResponse]{Gateway: "test"},
	})
	s.GetTransport().RegisterJSONResponse("/typed", http.StatusOK, `{"id":"9","status":"approved"}`)

	env, err := s.client.Invoke(s.GetContext(), "typed", Params{"order_id": "9", "amount": "1", "currency": "AZN"})
	s.Require().NoError(err)

	resp, err := ResultAs[*testOrderResponse](env)
	s.Require().NoError(err)
	s.Equal("9", resp.ID)

	_, err = ResultAs[*testErrorResponse](env)
	s.Error(err)
}

type panicHandler struct{}

func (panicHandler) BuildRequest(context.Context, any) (*Prepared, error) {
	panic("handler exploded")
}

func (panicHandler) ParseResponse(context.Context, *httpclient.Response) (*Parsed, error) {
	return nil, nil
}
