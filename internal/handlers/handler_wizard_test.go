package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ptairone/logistica-flash-sub000/internal/apperrors"
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portssvc "github.com/ptairone/logistica-flash-sub000/internal/core/ports/services"
	"github.com/ptairone/logistica-flash-sub000/internal/core/services"
	"github.com/ptairone/logistica-flash-sub000/internal/dto"
	"github.com/ptairone/logistica-flash-sub000/internal/handlers"
	"github.com/ptairone/logistica-flash-sub000/internal/middleware"
)

// --- Mock WizardService ---
type MockWizardService struct {
	mock.Mock
}

func (m *MockWizardService) StartSession(ctx context.Context, driverID string, userID string) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, driverID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) GetSession(ctx context.Context, sessionID string) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) ChangeDriver(ctx context.Context, sessionID string, driverID string) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) AbandonSession(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
func (m *MockWizardService) Advance(ctx context.Context, sessionID string) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) Back(ctx context.Context, sessionID string) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) ToggleTrip(ctx context.Context, sessionID string, tripID string, selected bool) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID, tripID, selected)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) ApproveExpense(ctx context.Context, sessionID string, expenseID string) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) RejectExpense(ctx context.Context, sessionID string, expenseID string) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID, expenseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) AdjustExpense(ctx context.Context, sessionID string, expenseID string, amount decimal.Decimal) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID, expenseID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) AddAdjustment(ctx context.Context, sessionID string, req dto.AddAdjustmentRequest) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) RemoveAdjustment(ctx context.Context, sessionID string, adjustmentID string) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID, adjustmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) ToggleDebt(ctx context.Context, sessionID string, debtID string, selected bool) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID, debtID, selected)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) SetDebtAmount(ctx context.Context, sessionID string, debtID string, amount decimal.Decimal) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID, debtID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) SetCalculationInputs(ctx context.Context, sessionID string, req dto.CalculationInputsRequest) (*domain.SettlementDraft, error) {
	args := m.Called(ctx, sessionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementDraft), args.Error(1)
}
func (m *MockWizardService) Submit(ctx context.Context, sessionID string, userID string) (*domain.Settlement, error) {
	args := m.Called(ctx, sessionID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Settlement), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.WizardSvcFacade = (*MockWizardService)(nil)

// --- Test Suite ---
type WizardHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockWizardService *MockWizardService
	jwtSecret         string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *WizardHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "acerto-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *WizardHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockWizardService = new(MockWizardService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterWizardRoutes(v1, suite.mockWizardService)
}

// sampleDraft builds a draft bound to a driver with one eligible trip.
func sampleDraft(sessionID, driverID string) *domain.SettlementDraft {
	draft := domain.NewSettlementDraft(sessionID)
	draft.DriverID = driverID
	draft.DriverName = "Carlos Pereira"
	draft.CommissionPercent = decimal.NewFromInt(10)
	draft.EligibleTrips = []domain.Trip{
		{
			TripID:         "trip-1",
			Code:           "VG-0001",
			DriverID:       driverID,
			Status:         domain.TripCompleted,
			DepartureDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			ArrivalDate:    time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
			FreightRevenue: decimal.NewFromInt(1500),
		},
	}
	draft.Recompute()
	return draft
}

func (suite *WizardHandlerTestSuite) doRequest(method, url string, body any, userID string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reqBody = bytes.NewBuffer(raw)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *WizardHandlerTestSuite) TestStartSession_Success() {
	driverID := uuid.NewString()
	userID := uuid.NewString()
	draft := sampleDraft(uuid.NewString(), driverID)

	suite.mockWizardService.On("StartSession", mock.Anything, driverID, userID).
		Return(draft, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard", dto.StartSessionRequest{DriverID: driverID}, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.WizardStateResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(draft.SessionID, resp.SessionID)
	suite.Equal(domain.StageTrips, resp.Stage)
	suite.Equal(driverID, resp.DriverID)
	suite.Len(resp.EligibleTrips, 1)

	suite.mockWizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestStartSession_DriverNotFound() {
	driverID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockWizardService.On("StartSession", mock.Anything, driverID, userID).
		Return(nil, fmt.Errorf("fetching driver: %w", apperrors.ErrNotFound)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard", dto.StartSessionRequest{DriverID: driverID}, userID)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockWizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestStartSession_MissingBody() {
	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard", map[string]string{}, uuid.NewString())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockWizardService.AssertNotCalled(suite.T(), "StartSession")
}

func (suite *WizardHandlerTestSuite) TestStartSession_Unauthorized() {
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/settlement-wizard", bytes.NewBufferString(`{"driverID":"d1"}`))
	req.Header.Set("Content-Type", "application/json")
	// No Authorization header

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockWizardService.AssertNotCalled(suite.T(), "StartSession")
}

func (suite *WizardHandlerTestSuite) TestGetSession_NotFound() {
	sessionID := uuid.NewString()

	suite.mockWizardService.On("GetSession", mock.Anything, sessionID).
		Return(nil, services.ErrSessionNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/settlement-wizard/"+sessionID, nil, uuid.NewString())

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockWizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestAbandonSession_Success() {
	sessionID := uuid.NewString()

	suite.mockWizardService.On("AbandonSession", mock.Anything, sessionID).
		Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/settlement-wizard/"+sessionID, nil, uuid.NewString())

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockWizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestAdvance_StageGuardBlocks() {
	sessionID := uuid.NewString()

	suite.mockWizardService.On("Advance", mock.Anything, sessionID).
		Return(nil, services.ErrStageGuard).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard/"+sessionID+"/advance", nil, uuid.NewString())

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockWizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestToggleTrip_Success() {
	sessionID := uuid.NewString()
	draft := sampleDraft(sessionID, uuid.NewString())
	draft.SelectTrip("trip-1")
	draft.Recompute()

	suite.mockWizardService.On("ToggleTrip", mock.Anything, sessionID, "trip-1", true).
		Return(draft, nil).Once()

	selected := true
	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard/"+sessionID+"/trips",
		dto.ToggleTripRequest{TripID: "trip-1", Selected: &selected}, uuid.NewString())

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.WizardStateResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal([]string{"trip-1"}, resp.SelectedTripIDs)
	suite.True(resp.Totals.RevenueTotal.Equal(decimal.NewFromInt(1500)))

	suite.mockWizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestToggleTrip_SelectedOmitted() {
	sessionID := uuid.NewString()

	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard/"+sessionID+"/trips",
		map[string]string{"tripID": "trip-1"}, uuid.NewString())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockWizardService.AssertNotCalled(suite.T(), "ToggleTrip")
}

func (suite *WizardHandlerTestSuite) TestReviewExpense_Adjust() {
	sessionID := uuid.NewString()
	draft := sampleDraft(sessionID, uuid.NewString())
	amount := decimal.NewFromInt(60)

	suite.mockWizardService.On("AdjustExpense", mock.Anything, sessionID, "exp-1",
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(amount) })).
		Return(draft, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard/"+sessionID+"/expenses",
		dto.ReviewExpenseRequest{ExpenseID: "exp-1", Action: "ADJUST", Amount: &amount}, uuid.NewString())

	suite.Equal(http.StatusOK, w.Code)
	suite.mockWizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestReviewExpense_AdjustWithoutAmount() {
	sessionID := uuid.NewString()

	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard/"+sessionID+"/expenses",
		dto.ReviewExpenseRequest{ExpenseID: "exp-1", Action: "ADJUST"}, uuid.NewString())

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockWizardService.AssertNotCalled(suite.T(), "AdjustExpense")
}

func (suite *WizardHandlerTestSuite) TestReviewExpense_UnknownExpense() {
	sessionID := uuid.NewString()

	suite.mockWizardService.On("RejectExpense", mock.Anything, sessionID, "nope").
		Return(nil, services.ErrUnknownExpense).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard/"+sessionID+"/expenses",
		dto.ReviewExpenseRequest{ExpenseID: "nope", Action: "REJECT"}, uuid.NewString())

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockWizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestAddAdjustment_NotPositive() {
	sessionID := uuid.NewString()
	req := dto.AddAdjustmentRequest{
		Type:        domain.AdjustmentBonus,
		Category:    "performance",
		Description: "Weekend haul bonus",
		Amount:      decimal.NewFromInt(-5),
	}

	suite.mockWizardService.On("AddAdjustment", mock.Anything, sessionID,
		mock.MatchedBy(func(r dto.AddAdjustmentRequest) bool { return r.Amount.Equal(req.Amount) })).
		Return(nil, services.ErrAdjustmentAmountNotPositive).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard/"+sessionID+"/adjustments", req, uuid.NewString())

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockWizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestSubmit_Success() {
	sessionID := uuid.NewString()
	userID := uuid.NewString()
	settlement := &domain.Settlement{
		SettlementID: uuid.NewString(),
		Code:         "AC-CARLOS-20250301-1",
		DriverID:     uuid.NewString(),
		Status:       domain.SettlementOpen,
		TotalPayable: decimal.NewFromInt(140),
		TripIDs:      []string{"trip-1"},
	}

	suite.mockWizardService.On("Submit", mock.Anything, sessionID, userID).
		Return(settlement, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard/"+sessionID+"/submit", nil, userID)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.SettlementResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(settlement.SettlementID, resp.SettlementID)
	suite.Equal(settlement.Code, resp.Code)
	suite.Equal(domain.SettlementOpen, resp.Status)

	suite.mockWizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestSubmit_NotAtPreview() {
	sessionID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockWizardService.On("Submit", mock.Anything, sessionID, userID).
		Return(nil, services.ErrNotAtPreview).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard/"+sessionID+"/submit", nil, userID)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
	suite.mockWizardService.AssertExpectations(suite.T())
}

func (suite *WizardHandlerTestSuite) TestSubmit_InFlight() {
	sessionID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockWizardService.On("Submit", mock.Anything, sessionID, userID).
		Return(nil, services.ErrSubmitInFlight).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/settlement-wizard/"+sessionID+"/submit", nil, userID)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockWizardService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestWizardHandler(t *testing.T) {
	suite.Run(t, new(WizardHandlerTestSuite))
}
