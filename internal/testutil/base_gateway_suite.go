package testutil

import (
	"context"
	"time"

	"github.com/flexprice/azpay/internal/config"
	"github.com/flexprice/azpay/internal/logger"
	"github.com/flexprice/azpay/internal/validator"
	"github.com/stretchr/testify/suite"
)

// BaseGatewayTestSuite provides common functionality for gateway binding tests
type BaseGatewayTestSuite struct {
	suite.Suite
	ctx       context.Context
	config    *config.Configuration
	logger    *logger.Logger
	transport *MockHTTPClient
	now       time.Time
}

// SetupSuite is called once before any tests in the suite
func (s *BaseGatewayTestSuite) SetupSuite() {
	s.config = config.GetDefaultConfig()
	s.logger = logger.NewNopLogger()
	validator.NewValidator()
}

// SetupTest is called before each test
func (s *BaseGatewayTestSuite) SetupTest() {
	s.ctx = SetupContext()
	s.transport = NewMockHTTPClient()
	s.now = time.Date(2024, time.January, 31, 12, 30, 45, 0, time.UTC)
}

// TearDownTest is called after each test
func (s *BaseGatewayTestSuite) TearDownTest() {
	s.transport.Clear()
}

func (s *BaseGatewayTestSuite) GetContext() context.Context {
	return s.ctx
}

func (s *BaseGatewayTestSuite) GetConfig() *config.Configuration {
	return s.config
}

func (s *BaseGatewayTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetTransport returns the recording transport shared by the test
func (s *BaseGatewayTestSuite) GetTransport() *MockHTTPClient {
	return s.transport
}

// GetNow returns a fixed clock value so timestamps in signatures are stable
func (s *BaseGatewayTestSuite) GetNow() time.Time {
	return s.now
}
