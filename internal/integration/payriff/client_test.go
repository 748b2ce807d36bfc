package payriff

import (
	"net/http"
	"testing"

	"github.com/flexprice/azpay/internal/config"
	ierr "github.com/flexprice/azpay/internal/errors"
	"github.com/flexprice/azpay/internal/integration/base"
	"github.com/flexprice/azpay/internal/testutil"
	"github.com/shopspring/decimal"
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

	var err error
	s.client, err = New(config.PayriffConfig{
		Enabled:     true,
		SecretKey:   "sk_test_123",
		Language:    "AZ",
		Currency:    "AZN",
		CallbackURL: "https://shop.test/payriff/callback",
	}, s.GetLogger(), base.WithTransport(s.GetTransport()))
	s.Require().NoError(err)
}

func (s *ClientSuite) TestNewRequiresSecret() {
	_, err := New(config.PayriffConfig{}, s.GetLogger())
	s.True(ierr.IsConfiguration(err))
}

func (s *ClientSuite) TestCreateOrder() {
	s.GetTransport().RegisterJSONResponse("/orders", http.StatusOK, `{
		"code":"00000",
		"message":"Operation performed successfully",
		"payload":{"orderId":"f4bc2a0d","paymentUrl":"https://pay.payriff.com/f4bc2a0d","transactionId":991}
	}`)

	resp, env, err := s.client.CreateOrder(s.GetContext(), CreateOrderRequest{
		Amount:      decimal.RequireFromString("12.30"),
		Description: "Order 1",
		CardSave:    true,
	})
	s.Require().NoError(err)
	s.True(env.OK)
	s.Equal("https://pay.payriff.com/f4bc2a0d", resp.Payload.PaymentURL)

	req := s.GetTransport().LastRequest()
	s.Equal(DefaultBaseURL+"/orders", req.URL)
	s.Equal("sk_test_123", req.Headers["Authorization"])
	s.JSONEq(`{
		"amount":12.3,
		"language":"AZ",
		"currency":"AZN",
		"description":"Order 1",
		"callbackUrl":"https://shop.test/payriff/callback",
		"cardSave":true,
		"operation":"PURCHASE"
	}`, string(req.Body))
}

func (s *ClientSuite) TestBodyCodeDiscriminant() {
	s.GetTransport().RegisterJSONResponse("/refund", http.StatusOK,
		`{"code":"14013","message":"Amount is bigger than paid amount","internalMessage":"refund limit"}`)

	resp, env, err := s.client.Refund(s.GetContext(), TransactionRequest{OrderID: "f4bc2a0d", Amount: decimal.NewFromInt(100)})
	s.Require().NoError(err)
	s.Equal("14013", resp.Code)
	s.False(env.OK)
	s.Equal(http.StatusOK, env.StatusCode)
	s.Require().NotNil(env.Error)
	s.Equal("14013", env.Error.Code)
	s.Equal("Invalid amount", env.Error.Message)
	s.Equal("refund limit", env.Error.Details["internal_message"])
}

func (s *ClientSuite) TestUnknownCodeKeepsProviderMessage() {
	s.GetTransport().RegisterJSONResponse("/complete", http.StatusOK, `{"code":"19999","message":"Something new"}`)

	_, env, err := s.client.Complete(s.GetContext(), TransactionRequest{OrderID: "1", Amount: decimal.NewFromInt(1)})
	s.Require().NoError(err)
	s.Equal("Something new", env.Error.Message)
}

func (s *ClientSuite) TestGetOrder() {
	s.GetTransport().RegisterJSONResponse("/orders/f4bc2a0d", http.StatusOK, `{
		"code":"00000","message":"OK",
		"payload":{"orderId":"f4bc2a0d","amount":12.3,"paymentStatus":"APPROVED","transactions":[{"uuid":"t1","status":"APPROVED"}]}
	}`)

	resp, env, err := s.client.GetOrder(s.GetContext(), GetOrderRequest{OrderID: "f4bc2a0d"})
	s.Require().NoError(err)
	s.True(env.OK)
	s.Equal("APPROVED", resp.Payload.PaymentStatus)
	s.Len(resp.Payload.Transactions, 1)

	req := s.GetTransport().LastRequest()
	s.Equal(DefaultBaseURL+"/orders/f4bc2a0d", req.URL)
	s.Nil(req.Body)
}

func (s *ClientSuite) TestUnauthorized() {
	s.GetTransport().RegisterJSONResponse("/autoPay", http.StatusUnauthorized, `{"code":"14030","message":"Unauthorized"}`)

	_, env, err := s.client.AutoPay(s.GetContext(), AutoPayRequest{
		CardUUID:    "c1",
		Amount:      decimal.NewFromInt(5),
		Description: "subscription",
	})
	s.Require().NoError(err)
	s.False(env.OK)
	s.Equal(http.StatusUnauthorized, env.StatusCode)
	s.Equal("14030", env.Error.Code)
}

func (s *ClientSuite) TestReverseValidation() {
	_, _, err := s.client.Reverse(s.GetContext(), TransactionRequest{OrderID: "1"})
	s.Require().Error(err)
	s.True(ierr.IsValidation(err))
	s.Zero(s.GetTransport().Calls())
}
