package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/DanielPopoola/payments-gateway/internal/application"
	"github.com/DanielPopoola/payments-gateway/internal/application/mocks"
	"github.com/DanielPopoola/payments-gateway/internal/application/services"
	"github.com/DanielPopoola/payments-gateway/internal/application/services/testhelpers"
	"github.com/DanielPopoola/payments-gateway/internal/domain"
	"github.com/DanielPopoola/payments-gateway/internal/infrastructure/bank"
	"github.com/DanielPopoola/payments-gateway/internal/observability/metricstest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthorizeServiceTestSuite struct {
	suite.Suite
	store      *mocks.MockPaymentStore
	authorizer *mocks.MockAuthorizer
	orphans    *mocks.MockOrphanReporter
	metrics    *metricstest.Recorder
	service    *services.AuthorizeService
}

func TestAuthorizeServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthorizeServiceTestSuite))
}

// SetupTest runs before each test
func (suite *AuthorizeServiceTestSuite) SetupTest() {
	suite.store = mocks.NewMockPaymentStore(suite.T())
	suite.authorizer = mocks.NewMockAuthorizer(suite.T())
	suite.orphans = mocks.NewMockOrphanReporter(suite.T())
	suite.metrics = metricstest.New(suite.T())
	suite.service = services.NewAuthorizeService(
		suite.store,
		suite.authorizer,
		suite.orphans,
		testhelpers.FixedClock{At: testhelpers.DefaultNow},
		suite.metrics.Metrics,
		0,
		testhelpers.DiscardLogger(),
	)
}

// ============================================================================
// HAPPY PATH TESTS
// ============================================================================

func (suite *AuthorizeServiceTestSuite) Test_Authorize_Authorized() {
	t := suite.T()
	cmd := testhelpers.DefaultAuthorizeCommand(testhelpers.DefaultNow)

	suite.authorizer.EXPECT().
		Authorize(mock.Anything, mock.Anything).
		Return(&application.AuthorizationResponse{Authorized: true, AuthorizationCode: "auth-123"}, nil).
		Once()

	suite.store.EXPECT().
		Create(mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Status() == domain.StatusAuthorized
		})).
		Return(nil).
		Once()

	payment, err := suite.service.Authorize(context.Background(), cmd)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAuthorized, payment.Status())
	assert.Equal(t, int64(1000), payment.Amount())
	assert.Equal(t, "GBP", payment.Currency())
	assert.Equal(t, "1213", payment.LastFourCardDigits())
	assert.Equal(t, testhelpers.DefaultNow, payment.DateCreated())
	require.NotNil(t, payment.AuthorizationCode())
	assert.Equal(t, "auth-123", *payment.AuthorizationCode())

	snapshot := suite.metrics.Snapshot()
	assert.Equal(t, int64(1), snapshot.PaymentsReceived)
	assert.Equal(t, int64(1), snapshot.PaymentsAuthorized)
	assert.Equal(t, int64(0), snapshot.PaymentsDeclined)
}

func (suite *AuthorizeServiceTestSuite) Test_Authorize_Declined() {
	t := suite.T()
	cmd := testhelpers.DefaultAuthorizeCommand(testhelpers.DefaultNow)

	suite.authorizer.EXPECT().
		Authorize(mock.Anything, mock.Anything).
		Return(&application.AuthorizationResponse{Authorized: false}, nil).
		Once()

	suite.store.EXPECT().
		Create(mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Status() == domain.StatusDeclined
		})).
		Return(nil).
		Once()

	payment, err := suite.service.Authorize(context.Background(), cmd)

	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeclined, payment.Status())
	assert.Nil(t, payment.AuthorizationCode())
	assert.Equal(t, int64(1), suite.metrics.Snapshot().PaymentsDeclined)
}

func (suite *AuthorizeServiceTestSuite) Test_Authorize_SendsCanonicalRequestToBank() {
	t := suite.T()
	cmd := testhelpers.DefaultAuthorizeCommand(testhelpers.DefaultNow)
	cmd.Currency = "gbp"
	cmd.ExpiryMonth = 4
	cmd.ExpiryYear = 2030

	suite.authorizer.EXPECT().
		Authorize(mock.Anything, application.AuthorizationRequest{
			CardNumber: "123456789101213",
			ExpiryDate: "4/2030",
			Currency:   "GBP",
			Amount:     1000,
			CVV:        "192",
		}).
		Return(&application.AuthorizationResponse{Authorized: true, AuthorizationCode: "code"}, nil).
		Once()
	suite.store.EXPECT().Create(mock.Anything, mock.Anything).Return(nil).Once()

	_, err := suite.service.Authorize(context.Background(), cmd)

	require.NoError(t, err)
}

// ============================================================================
// VALIDATION TESTS
// ============================================================================

func (suite *AuthorizeServiceTestSuite) Test_Authorize_ValidationFailure_NoExternalCalls() {
	tests := []struct {
		name  string
		edit  func(*services.AuthorizeCommand)
		field string
	}{
		{"short card number", func(c *services.AuthorizeCommand) { c.CardNumber = "1234" }, domain.FieldCardNumber},
		{"bad month", func(c *services.AuthorizeCommand) { c.ExpiryMonth = 13 }, domain.FieldExpiryMonth},
		{"expired card", func(c *services.AuthorizeCommand) { c.ExpiryYear = 2020 }, domain.FieldExpiryYear},
		{"unknown currency", func(c *services.AuthorizeCommand) { c.Currency = "ZZZ" }, domain.FieldCurrency},
		{"bad cvv", func(c *services.AuthorizeCommand) { c.CVV = "12a" }, domain.FieldCVV},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			cmd := testhelpers.DefaultAuthorizeCommand(testhelpers.DefaultNow)
			tt.edit(&cmd)

			payment, err := suite.service.Authorize(context.Background(), cmd)

			require.Error(t, err)
			assert.Nil(t, payment)
			svcErr, ok := application.IsServiceError(err)
			require.True(t, ok)
			assert.Equal(t, application.ErrorTypeValidation, svcErr.Type)
			assert.Equal(t, tt.field, svcErr.Field)
			assert.Equal(t, http.StatusBadRequest, application.ToHTTPStatus(err))
		})
	}

	assert.Equal(suite.T(), int64(len(tests)), suite.metrics.Snapshot().ValidationFailures)
}

// ============================================================================
// FAILURE TESTS
// ============================================================================

func (suite *AuthorizeServiceTestSuite) Test_Authorize_AuthorizerFault_NothingPersisted() {
	t := suite.T()
	cmd := testhelpers.DefaultAuthorizeCommand(testhelpers.DefaultNow)

	suite.authorizer.EXPECT().
		Authorize(mock.Anything, mock.Anything).
		Return(nil, &bank.BankError{Kind: bank.KindUnavailable, Message: "Bank is currently unavailable", StatusCode: 503}).
		Once()

	payment, err := suite.service.Authorize(context.Background(), cmd)

	require.Error(t, err)
	assert.Nil(t, payment)
	assert.True(t, application.IsAuthorizerFault(err))
	assert.Equal(t, application.ErrorTypeInternal, application.ToErrorType(err))
	assert.Equal(t, http.StatusInternalServerError, application.ToHTTPStatus(err))
	assert.Equal(t, int64(1), suite.metrics.Snapshot().AuthorizerFaults)
	suite.store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func (suite *AuthorizeServiceTestSuite) Test_Authorize_OrphanedAuthorization_ReportedOnce() {
	t := suite.T()
	cmd := testhelpers.DefaultAuthorizeCommand(testhelpers.DefaultNow)
	storeErr := errors.New("connection reset")

	suite.authorizer.EXPECT().
		Authorize(mock.Anything, mock.Anything).
		Return(&application.AuthorizationResponse{Authorized: true, AuthorizationCode: "auth-999"}, nil).
		Once()

	suite.store.EXPECT().
		Create(mock.Anything, mock.Anything).
		Return(storeErr).
		Once()

	var reported application.OrphanedAuthorization
	suite.orphans.EXPECT().
		ReportOrphanedAuthorization(mock.Anything, mock.Anything).
		Run(func(_ context.Context, orphan application.OrphanedAuthorization) {
			reported = orphan
		}).
		Return().
		Once()

	payment, err := suite.service.Authorize(context.Background(), cmd)

	require.Error(t, err)
	assert.Nil(t, payment)
	assert.True(t, application.IsOrphanedAuthorization(err))
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, application.ErrorTypeInternal, application.ToErrorType(err))
	assert.Equal(t, http.StatusInternalServerError, application.ToHTTPStatus(err))

	require.NotNil(t, reported.Payment)
	assert.Equal(t, domain.StatusAuthorized, reported.Payment.Status())
	require.NotNil(t, reported.Payment.AuthorizationCode())
	assert.Equal(t, "auth-999", *reported.Payment.AuthorizationCode())
	assert.Equal(t, storeErr, reported.Cause)
	assert.Equal(t, testhelpers.DefaultNow, reported.OccurredAt)

	snapshot := suite.metrics.Snapshot()
	assert.Equal(t, int64(1), snapshot.OrphanedAuthorizations)
	assert.Equal(t, int64(0), snapshot.PaymentsAuthorized)
}

func (suite *AuthorizeServiceTestSuite) Test_Authorize_DeclinedPersistenceFailure_IsNotOrphan() {
	t := suite.T()
	cmd := testhelpers.DefaultAuthorizeCommand(testhelpers.DefaultNow)

	suite.authorizer.EXPECT().
		Authorize(mock.Anything, mock.Anything).
		Return(&application.AuthorizationResponse{Authorized: false}, nil).
		Once()
	suite.store.EXPECT().
		Create(mock.Anything, mock.Anything).
		Return(errors.New("disk full")).
		Once()

	_, err := suite.service.Authorize(context.Background(), cmd)

	require.Error(t, err)
	assert.False(t, application.IsOrphanedAuthorization(err))
	assert.Equal(t, application.ErrorTypeInternal, application.ToErrorType(err))
	assert.Equal(t, int64(1), suite.metrics.Snapshot().PersistenceFailures)
	suite.orphans.AssertNotCalled(t, "ReportOrphanedAuthorization", mock.Anything, mock.Anything)
}

// ============================================================================
// CANCELLATION TESTS
// ============================================================================

func (suite *AuthorizeServiceTestSuite) Test_Authorize_CancelledBeforeAuthorization() {
	t := suite.T()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := suite.service.Authorize(ctx, testhelpers.DefaultAuthorizeCommand(testhelpers.DefaultNow))

	require.Error(t, err)
	assert.Equal(t, application.FaultRequestCancelled, application.ToFault(err))
	assert.Equal(t, http.StatusRequestTimeout, application.ToHTTPStatus(err))
	suite.authorizer.AssertNotCalled(t, "Authorize", mock.Anything, mock.Anything)
}

func (suite *AuthorizeServiceTestSuite) Test_Authorize_CancelledDuringAuthorization() {
	t := suite.T()
	ctx, cancel := context.WithCancel(context.Background())

	suite.authorizer.EXPECT().
		Authorize(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, application.AuthorizationRequest) (*application.AuthorizationResponse, error) {
			cancel()
			return nil, context.Canceled
		}).
		Once()

	_, err := suite.service.Authorize(ctx, testhelpers.DefaultAuthorizeCommand(testhelpers.DefaultNow))

	require.Error(t, err)
	assert.Equal(t, application.FaultRequestCancelled, application.ToFault(err))
	assert.Equal(t, int64(0), suite.metrics.Snapshot().AuthorizerFaults)
}

func (suite *AuthorizeServiceTestSuite) Test_Authorize_PersistsAfterCallerCancels() {
	t := suite.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	suite.authorizer.EXPECT().
		Authorize(mock.Anything, mock.Anything).
		RunAndReturn(func(context.Context, application.AuthorizationRequest) (*application.AuthorizationResponse, error) {
			cancel()
			return &application.AuthorizationResponse{Authorized: true, AuthorizationCode: "auth-1"}, nil
		}).
		Once()

	suite.store.EXPECT().
		Create(mock.Anything, mock.Anything).
		RunAndReturn(func(persistCtx context.Context, _ *domain.Payment) error {
			return persistCtx.Err()
		}).
		Once()

	payment, err := suite.service.Authorize(ctx, testhelpers.DefaultAuthorizeCommand(testhelpers.DefaultNow))

	require.NoError(t, err)
	assert.Equal(t, domain.StatusAuthorized, payment.Status())
}
