package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ptairone/logistica-flash-sub000/internal/apperrors"
	"github.com/ptairone/logistica-flash-sub000/internal/core/domain"
	portssvc "github.com/ptairone/logistica-flash-sub000/internal/core/ports/services"
	"github.com/ptairone/logistica-flash-sub000/internal/core/services"
)

// --- Mock SettlementRepository ---
type MockSettlementRepository struct {
	mock.Mock
}

func (m *MockSettlementRepository) FindSettlementByID(ctx context.Context, settlementID string) (*domain.Settlement, error) {
	args := m.Called(ctx, settlementID)
	var settlement *domain.Settlement
	if args.Get(0) != nil {
		settlement = args.Get(0).(*domain.Settlement)
	}
	return settlement, args.Error(1)
}

func (m *MockSettlementRepository) ListSettlements(ctx context.Context, driverID string, limit int, offset int) ([]domain.Settlement, error) {
	args := m.Called(ctx, driverID, limit, offset)
	var settlements []domain.Settlement
	if args.Get(0) != nil {
		settlements = args.Get(0).([]domain.Settlement)
	}
	return settlements, args.Error(1)
}

func (m *MockSettlementRepository) SaveSettlement(ctx context.Context, settlement domain.Settlement, adjustments []domain.Adjustment, reviews []domain.ExpenseReview, deductions []domain.DebtDeduction) error {
	args := m.Called(ctx, settlement, adjustments, reviews, deductions)
	return args.Error(0)
}

func (m *MockSettlementRepository) UpdateSettlementStatus(ctx context.Context, settlementID string, status domain.SettlementStatus, userID string, updatedAt time.Time) error {
	args := m.Called(ctx, settlementID, status, userID, updatedAt)
	return args.Error(0)
}

func (m *MockSettlementRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	var tx pgx.Tx
	if args.Get(0) != nil {
		tx = args.Get(0).(pgx.Tx)
	}
	return tx, args.Error(1)
}

func (m *MockSettlementRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockSettlementRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Test Suite ---
type SettlementServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSettlementRepository
	service  portssvc.SettlementSvcFacade
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettlementRepository)
	suite.service = services.NewSettlementService(suite.mockRepo)
}

// previewDraft builds a draft at the preview stage with one selected trip
// carrying an approved reimbursable expense and a non-reimbursable expense.
func previewDraft() *domain.SettlementDraft {
	draft := domain.NewSettlementDraft(uuid.NewString())
	draft.ResetForDriver(domain.Driver{
		DriverID:          "drv-1",
		Name:              "João Silva",
		CommissionPercent: decimal.NewFromInt(10),
	})
	draft.EligibleTrips = []domain.Trip{
		{
			TripID:         "trip-1",
			DriverID:       "drv-1",
			Status:         domain.TripCompleted,
			DepartureDate:  time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC),
			ArrivalDate:    time.Date(2025, 3, 2, 18, 0, 0, 0, time.UTC),
			FreightRevenue: decimal.NewFromInt(1000),
			Expenses: []domain.Expense{
				{ExpenseID: "exp-1", TripID: "trip-1", ExpenseType: domain.ExpenseToll, Amount: decimal.NewFromInt(50), Reimbursable: true},
				{ExpenseID: "exp-2", TripID: "trip-1", ExpenseType: domain.ExpenseFuel, Amount: decimal.NewFromInt(100), Reimbursable: false},
			},
		},
	}
	draft.SelectTrip("trip-1")
	draft.Reviews.Approve("exp-1")
	draft.Reviews.Approve("exp-2")
	draft.Stage = domain.StagePreview
	draft.Recompute()
	return draft
}

// --- FinalizeDraft Tests ---

func (suite *SettlementServiceTestSuite) TestFinalizeDraft_Success() {
	ctx := context.Background()
	draft := previewDraft()
	creatorID := uuid.NewString()

	suite.mockRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.DriverID == "drv-1" &&
			s.Status == domain.SettlementOpen &&
			s.Code == "AC-JOAO-20250301-1" &&
			s.CommissionBase.Equal(decimal.NewFromInt(900)) &&
			s.CommissionValue.Equal(decimal.NewFromInt(90)) &&
			s.TotalReimbursements.Equal(decimal.NewFromInt(50)) &&
			s.TotalPayable.Equal(decimal.NewFromInt(140)) &&
			len(s.TripIDs) == 1 && s.TripIDs[0] == "trip-1"
	}), mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	settlement, err := suite.service.FinalizeDraft(ctx, draft, creatorID)

	suite.Require().NoError(err)
	suite.Require().NotNil(settlement)
	suite.Equal(domain.SettlementOpen, settlement.Status)
	suite.Equal(creatorID, settlement.CreatedBy)
	suite.Equal(draft.DriverID, settlement.DriverID)
	suite.True(settlement.PeriodStart.Equal(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)))
	suite.True(settlement.PeriodEnd.Equal(settlement.PeriodStart))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestFinalizeDraft_PersistsReviewsAndDeductions() {
	ctx := context.Background()
	draft := previewDraft()
	draft.Reviews.Reject("exp-2")
	draft.OpenDebts = []domain.Debt{
		{DebtID: "debt-1", DriverID: "drv-1", OriginalAmount: decimal.NewFromInt(500), AmountPaid: decimal.NewFromInt(200)},
	}
	draft.DebtSelection.Toggle(draft.OpenDebts[0], true)

	suite.mockRepo.On("SaveSettlement", ctx, mock.AnythingOfType("domain.Settlement"),
		mock.Anything,
		mock.MatchedBy(func(reviews []domain.ExpenseReview) bool {
			if len(reviews) != 2 {
				return false
			}
			byID := map[string]domain.ExpenseReview{}
			for _, r := range reviews {
				byID[r.ExpenseID] = r
			}
			return byID["exp-1"].Status == domain.ReviewApproved &&
				byID["exp-2"].Status == domain.ReviewRejected
		}),
		mock.MatchedBy(func(deductions []domain.DebtDeduction) bool {
			return len(deductions) == 1 &&
				deductions[0].DebtID == "debt-1" &&
				deductions[0].Amount.Equal(decimal.NewFromInt(300))
		})).Return(nil).Once()

	settlement, err := suite.service.FinalizeDraft(ctx, draft, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(settlement.TotalDebtsDeducted.Equal(decimal.NewFromInt(300)))
	suite.True(settlement.TotalRejected.Equal(decimal.NewFromInt(100)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestFinalizeDraft_StampsAdjustments() {
	ctx := context.Background()
	draft := previewDraft()
	draft.Adjustments.Add(domain.Adjustment{
		AdjustmentID: "adj-1",
		Type:         domain.AdjustmentBonus,
		Category:     "meta",
		Description:  "Meta batida",
		Amount:       decimal.NewFromInt(75),
	})
	draft.Recompute()

	suite.mockRepo.On("SaveSettlement", ctx, mock.AnythingOfType("domain.Settlement"),
		mock.MatchedBy(func(adjustments []domain.Adjustment) bool {
			return len(adjustments) == 1 &&
				adjustments[0].AdjustmentID == "adj-1" &&
				adjustments[0].SettlementID != ""
		}),
		mock.Anything, mock.Anything).Return(nil).Once()

	settlement, err := suite.service.FinalizeDraft(ctx, draft, uuid.NewString())

	suite.Require().NoError(err)
	suite.True(settlement.TotalBonuses.Equal(decimal.NewFromInt(75)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestFinalizeDraft_RegeneratesCodeOnCollision() {
	ctx := context.Background()
	draft := previewDraft()

	suite.mockRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return s.Code == "AC-JOAO-20250301-1"
	}), mock.Anything, mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate).Once()
	suite.mockRepo.On("SaveSettlement", ctx, mock.MatchedBy(func(s domain.Settlement) bool {
		return len(s.Code) > len("AC-JOAO-20250301-1") && s.Code[:len("AC-JOAO-20250301-1")] == "AC-JOAO-20250301-1"
	}), mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	settlement, err := suite.service.FinalizeDraft(ctx, draft, uuid.NewString())

	suite.Require().NoError(err)
	suite.NotEqual("AC-JOAO-20250301-1", settlement.Code)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestFinalizeDraft_NoDriver() {
	ctx := context.Background()
	draft := domain.NewSettlementDraft(uuid.NewString())

	settlement, err := suite.service.FinalizeDraft(ctx, draft, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, services.ErrDraftNoDriver)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSettlement", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestFinalizeDraft_NoTrips() {
	ctx := context.Background()
	draft := domain.NewSettlementDraft(uuid.NewString())
	draft.ResetForDriver(domain.Driver{DriverID: "drv-1", Name: "João", CommissionPercent: decimal.NewFromInt(10)})

	settlement, err := suite.service.FinalizeDraft(ctx, draft, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, services.ErrDraftNoTrips)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveSettlement", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestFinalizeDraft_SaveError() {
	ctx := context.Background()
	draft := previewDraft()
	expectedErr := assert.AnError

	suite.mockRepo.On("SaveSettlement", ctx, mock.AnythingOfType("domain.Settlement"), mock.Anything, mock.Anything, mock.Anything).Return(expectedErr).Once()

	settlement, err := suite.service.FinalizeDraft(ctx, draft, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, expectedErr)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Lifecycle Tests ---

func (suite *SettlementServiceTestSuite) TestCloseSettlement_Success() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	userID := uuid.NewString()
	open := &domain.Settlement{SettlementID: settlementID, Status: domain.SettlementOpen}

	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(open, nil).Once()
	suite.mockRepo.On("UpdateSettlementStatus", ctx, settlementID, domain.SettlementClosed, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	settlement, err := suite.service.CloseSettlement(ctx, settlementID, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SettlementClosed, settlement.Status)
	suite.Equal(userID, settlement.LastUpdatedBy)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestCloseSettlement_AlreadyClosed() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	closed := &domain.Settlement{SettlementID: settlementID, Status: domain.SettlementClosed}

	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(closed, nil).Once()

	settlement, err := suite.service.CloseSettlement(ctx, settlementID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, services.ErrInvalidStatusTransition)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateSettlementStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SettlementServiceTestSuite) TestMarkSettlementPaid_Success() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	userID := uuid.NewString()
	closed := &domain.Settlement{SettlementID: settlementID, Status: domain.SettlementClosed}

	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(closed, nil).Once()
	suite.mockRepo.On("UpdateSettlementStatus", ctx, settlementID, domain.SettlementPaid, userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	settlement, err := suite.service.MarkSettlementPaid(ctx, settlementID, userID)

	suite.Require().NoError(err)
	suite.Equal(domain.SettlementPaid, settlement.Status)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *SettlementServiceTestSuite) TestMarkSettlementPaid_StillOpen() {
	ctx := context.Background()
	settlementID := uuid.NewString()
	open := &domain.Settlement{SettlementID: settlementID, Status: domain.SettlementOpen}

	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(open, nil).Once()

	settlement, err := suite.service.MarkSettlementPaid(ctx, settlementID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, services.ErrInvalidStatusTransition)
}

func (suite *SettlementServiceTestSuite) TestGetSettlementByID_NotFound() {
	ctx := context.Background()
	settlementID := uuid.NewString()

	suite.mockRepo.On("FindSettlementByID", ctx, settlementID).Return(nil, apperrors.ErrNotFound).Once()

	settlement, err := suite.service.GetSettlementByID(ctx, settlementID)

	suite.Require().Error(err)
	suite.Nil(settlement)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *SettlementServiceTestSuite) TestListSettlements_Success() {
	ctx := context.Background()
	expected := []domain.Settlement{{SettlementID: uuid.NewString()}, {SettlementID: uuid.NewString()}}

	suite.mockRepo.On("ListSettlements", ctx, "drv-1", 20, 0).Return(expected, nil).Once()

	settlements, err := suite.service.ListSettlements(ctx, "drv-1", 20, 0)

	suite.Require().NoError(err)
	suite.Len(settlements, 2)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Run Suite ---
func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
