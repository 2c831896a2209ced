package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/ScaffRent/rental_logistics_app/internal/apperrors"
	"github.com/ScaffRent/rental_logistics_app/internal/core/domain"
	portsrepo "github.com/ScaffRent/rental_logistics_app/internal/core/ports/repositories"
	"github.com/ScaffRent/rental_logistics_app/internal/core/services"
	"github.com/ScaffRent/rental_logistics_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockRefundRepository is a mock type for the RefundRepositoryFacade interface
type MockRefundRepository struct {
	mock.Mock
}

func (m *MockRefundRepository) SaveRefund(ctx context.Context, refund domain.Refund) (*domain.Refund, error) {
	args := m.Called(ctx, refund)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockRefundRepository) FindRefundByID(ctx context.Context, refundID string) (*domain.Refund, error) {
	args := m.Called(ctx, refundID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockRefundRepository) ListRefunds(ctx context.Context, filter portsrepo.RefundFilter) ([]domain.Refund, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Refund), args.Error(1)
}

func (m *MockRefundRepository) MarkRefundApproved(ctx context.Context, refundID, approvedBy string) (*domain.Refund, error) {
	args := m.Called(ctx, refundID, approvedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

func (m *MockRefundRepository) MarkRefundRejected(ctx context.Context, refundID, rejectedBy, rejectionReason string) (*domain.Refund, error) {
	args := m.Called(ctx, refundID, rejectedBy, rejectionReason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Refund), args.Error(1)
}

// MockCreditNoteRepository is a mock type for the CreditNoteRepositoryFacade interface
type MockCreditNoteRepository struct {
	mock.Mock
}

func (m *MockCreditNoteRepository) SaveCreditNote(ctx context.Context, creditNote domain.CreditNote) (*domain.CreditNote, error) {
	args := m.Called(ctx, creditNote)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) FindCreditNoteByID(ctx context.Context, creditNoteID string) (*domain.CreditNote, error) {
	args := m.Called(ctx, creditNoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) ListCreditNotes(ctx context.Context, filter portsrepo.CreditNoteFilter) ([]domain.CreditNote, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) SumApprovedBySource(ctx context.Context, sourceID string) (decimal.Decimal, error) {
	args := m.Called(ctx, sourceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockCreditNoteRepository) MarkCreditNoteApproved(ctx context.Context, creditNoteID, approvedBy string) (*domain.CreditNote, error) {
	args := m.Called(ctx, creditNoteID, approvedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

func (m *MockCreditNoteRepository) MarkCreditNoteRejected(ctx context.Context, creditNoteID, rejectedBy, rejectionReason string) (*domain.CreditNote, error) {
	args := m.Called(ctx, creditNoteID, rejectedBy, rejectionReason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CreditNote), args.Error(1)
}

// --- Test Suite Setup ---

type RefundServiceTestSuite struct {
	suite.Suite
	mockRefundRepo     *MockRefundRepository
	mockCreditNoteRepo *MockCreditNoteRepository
	service            *services.RefundService
}

func (suite *RefundServiceTestSuite) SetupTest() {
	suite.mockRefundRepo = new(MockRefundRepository)
	suite.mockCreditNoteRepo = new(MockCreditNoteRepository)
	suite.service = services.NewRefundService(suite.mockRefundRepo, suite.mockCreditNoteRepo)
}

func strPtr(s string) *string { return &s }

func validCreateRefundRequest() dto.CreateRefundRequest {
	return dto.CreateRefundRequest{
		InvoiceType:     "deposit",
		SourceID:        "INV-2024-001",
		OriginalInvoice: "INV-2024-001",
		CustomerName:    "Acme Scaffolding Sdn Bhd",
		CustomerID:      "CUST-001",
		Amount:          decimal.NewFromInt(500),
		Status:          "Draft",
	}
}

// --- Test Cases ---

func (suite *RefundServiceTestSuite) TestCreateRefund_Success() {
	ctx := context.Background()
	req := validCreateRefundRequest()
	createdBy := "finance@example.com"

	suite.mockCreditNoteRepo.On("SumApprovedBySource", ctx, req.SourceID).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockRefundRepo.On("SaveRefund", ctx, mock.MatchedBy(func(r domain.Refund) bool {
		return r.SourceID == req.SourceID &&
			r.Status == domain.RefundStatusDraft &&
			r.InvoiceType == domain.InvoiceTypeDeposit &&
			r.Amount.Equal(req.Amount) &&
			r.CreatedBy == createdBy &&
			r.RefundID != ""
	})).Return(&domain.Refund{RefundID: uuid.NewString(), RefundNumber: "REF-2026-001", Status: domain.RefundStatusDraft}, nil).Once()

	refund, err := suite.service.CreateRefund(ctx, req, createdBy)

	suite.Require().NoError(err)
	suite.Require().NotNil(refund)
	suite.Equal("REF-2026-001", refund.RefundNumber)

	suite.mockRefundRepo.AssertExpectations(suite.T())
	suite.mockCreditNoteRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestCreateRefund_MissingRequiredFields() {
	ctx := context.Background()

	cases := []struct {
		field  string
		mutate func(*dto.CreateRefundRequest)
	}{
		{"invoiceType", func(r *dto.CreateRefundRequest) { r.InvoiceType = "" }},
		{"sourceId", func(r *dto.CreateRefundRequest) { r.SourceID = "   " }},
		{"originalInvoice", func(r *dto.CreateRefundRequest) { r.OriginalInvoice = "" }},
		{"customerName", func(r *dto.CreateRefundRequest) { r.CustomerName = "" }},
		{"customerId", func(r *dto.CreateRefundRequest) { r.CustomerID = "" }},
	}

	for _, tc := range cases {
		req := validCreateRefundRequest()
		tc.mutate(&req)

		refund, err := suite.service.CreateRefund(ctx, req, "someone")

		suite.Require().Error(err, "field %s", tc.field)
		suite.Nil(refund)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Contains(err.Error(), "Missing required field: "+tc.field)
	}

	// Validation failed before any repository call
	suite.mockRefundRepo.AssertNotCalled(suite.T(), "SaveRefund", mock.Anything, mock.Anything)
	suite.mockCreditNoteRepo.AssertNotCalled(suite.T(), "SumApprovedBySource", mock.Anything, mock.Anything)
}

func (suite *RefundServiceTestSuite) TestCreateRefund_NonPositiveAmount() {
	ctx := context.Background()

	for _, amount := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-10)} {
		req := validCreateRefundRequest()
		req.Amount = amount

		refund, err := suite.service.CreateRefund(ctx, req, "someone")

		suite.Require().Error(err)
		suite.Nil(refund)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Contains(err.Error(), "Refund amount must be a positive number")
	}

	suite.mockCreditNoteRepo.AssertNotCalled(suite.T(), "SumApprovedBySource", mock.Anything, mock.Anything)
}

func (suite *RefundServiceTestSuite) TestCreateRefund_AmountExceedsCreditedTotal() {
	ctx := context.Background()
	req := validCreateRefundRequest()
	req.Amount = decimal.RequireFromString("1000.01")

	suite.mockCreditNoteRepo.On("SumApprovedBySource", ctx, req.SourceID).Return(decimal.NewFromInt(1000), nil).Once()

	refund, err := suite.service.CreateRefund(ctx, req, "someone")

	suite.Require().Error(err)
	suite.Nil(refund)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "cannot exceed total credited amount (RM1000.00)")

	suite.mockRefundRepo.AssertNotCalled(suite.T(), "SaveRefund", mock.Anything, mock.Anything)
	suite.mockCreditNoteRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestCreateRefund_AmountEqualToCreditedTotal() {
	ctx := context.Background()
	req := validCreateRefundRequest()
	req.Amount = decimal.NewFromInt(1000)

	suite.mockCreditNoteRepo.On("SumApprovedBySource", ctx, req.SourceID).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockRefundRepo.On("SaveRefund", ctx, mock.AnythingOfType("domain.Refund")).
		Return(&domain.Refund{RefundID: uuid.NewString(), RefundNumber: "REF-2026-002"}, nil).Once()

	refund, err := suite.service.CreateRefund(ctx, req, "someone")

	suite.Require().NoError(err)
	suite.Require().NotNil(refund)

	suite.mockRefundRepo.AssertExpectations(suite.T())
	suite.mockCreditNoteRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestCreateRefund_PendingApprovalRequiresReason() {
	ctx := context.Background()

	for _, reason := range []*string{nil, strPtr(""), strPtr("   ")} {
		req := validCreateRefundRequest()
		req.Status = "Pending Approval"
		req.Reason = reason

		suite.mockCreditNoteRepo.On("SumApprovedBySource", ctx, req.SourceID).Return(decimal.NewFromInt(1000), nil).Once()

		refund, err := suite.service.CreateRefund(ctx, req, "someone")

		suite.Require().Error(err)
		suite.Nil(refund)
		suite.ErrorIs(err, apperrors.ErrValidation)
		suite.Contains(err.Error(), "Reason is required when submitting a refund for approval")
	}

	suite.mockRefundRepo.AssertNotCalled(suite.T(), "SaveRefund", mock.Anything, mock.Anything)
}

func (suite *RefundServiceTestSuite) TestCreateRefund_CoercesUnknownStatusAndInvoiceType() {
	ctx := context.Background()
	req := validCreateRefundRequest()
	req.Status = "Approved" // not creatable, coerces to Draft
	req.InvoiceType = "somethingElse"

	suite.mockCreditNoteRepo.On("SumApprovedBySource", ctx, req.SourceID).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockRefundRepo.On("SaveRefund", ctx, mock.MatchedBy(func(r domain.Refund) bool {
		return r.Status == domain.RefundStatusDraft && r.InvoiceType == domain.InvoiceTypeDeposit
	})).Return(&domain.Refund{RefundID: uuid.NewString(), Status: domain.RefundStatusDraft}, nil).Once()

	refund, err := suite.service.CreateRefund(ctx, req, "someone")

	suite.Require().NoError(err)
	suite.Require().NotNil(refund)

	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestCreateRefund_AttachmentsCarriedThrough() {
	ctx := context.Background()
	req := validCreateRefundRequest()
	req.Attachments = []dto.AttachmentInput{
		{FileName: "receipt.pdf", FileURL: "https://files.example.com/receipt.pdf", FileSize: 2048},
		{FileName: "bank-slip.png", FileURL: "https://files.example.com/slip.png", FileSize: 512},
	}

	suite.mockCreditNoteRepo.On("SumApprovedBySource", ctx, req.SourceID).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockRefundRepo.On("SaveRefund", ctx, mock.MatchedBy(func(r domain.Refund) bool {
		if len(r.Attachments) != 2 {
			return false
		}
		for _, a := range r.Attachments {
			if a.AttachmentID == "" || a.RefundID != r.RefundID || a.UploadedAt.IsZero() {
				return false
			}
		}
		return r.Attachments[0].FileName == "receipt.pdf" && r.Attachments[1].FileSize == int64(512)
	})).Return(&domain.Refund{RefundID: uuid.NewString()}, nil).Once()

	refund, err := suite.service.CreateRefund(ctx, req, "someone")

	suite.Require().NoError(err)
	suite.Require().NotNil(refund)

	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestCreateRefund_SumRepoError() {
	ctx := context.Background()
	req := validCreateRefundRequest()
	expectedErr := assert.AnError

	suite.mockCreditNoteRepo.On("SumApprovedBySource", ctx, req.SourceID).Return(decimal.Zero, expectedErr).Once()

	refund, err := suite.service.CreateRefund(ctx, req, "someone")

	suite.Require().Error(err)
	suite.Nil(refund)
	suite.ErrorIs(err, expectedErr)

	suite.mockRefundRepo.AssertNotCalled(suite.T(), "SaveRefund", mock.Anything, mock.Anything)
}

func (suite *RefundServiceTestSuite) TestCreateRefund_SaveError() {
	ctx := context.Background()
	req := validCreateRefundRequest()
	expectedErr := assert.AnError

	suite.mockCreditNoteRepo.On("SumApprovedBySource", ctx, req.SourceID).Return(decimal.NewFromInt(1000), nil).Once()
	suite.mockRefundRepo.On("SaveRefund", ctx, mock.AnythingOfType("domain.Refund")).Return(nil, expectedErr).Once()

	refund, err := suite.service.CreateRefund(ctx, req, "someone")

	suite.Require().Error(err)
	suite.Nil(refund)
	suite.ErrorIs(err, expectedErr)

	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestListRefunds_Success() {
	ctx := context.Background()
	status := "Draft"
	filter := portsrepo.RefundFilter{Status: &status}
	expected := []domain.Refund{
		{RefundID: uuid.NewString(), RefundNumber: "REF-2026-001"},
		{RefundID: uuid.NewString(), RefundNumber: "REF-2026-002"},
	}

	suite.mockRefundRepo.On("ListRefunds", ctx, filter).Return(expected, nil).Once()

	refunds, err := suite.service.ListRefunds(ctx, filter)

	suite.Require().NoError(err)
	suite.Equal(expected, refunds)

	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestListRefunds_Empty() {
	ctx := context.Background()
	var expected []domain.Refund

	suite.mockRefundRepo.On("ListRefunds", ctx, portsrepo.RefundFilter{}).Return(expected, nil).Once()

	refunds, err := suite.service.ListRefunds(ctx, portsrepo.RefundFilter{})

	suite.Require().NoError(err)
	suite.NotNil(refunds) // empty slice, not nil
	suite.Empty(refunds)

	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestApproveRefund_Success() {
	ctx := context.Background()
	refundID := uuid.NewString()
	approvedBy := "finance@example.com"
	expected := &domain.Refund{RefundID: refundID, Status: domain.RefundStatusApproved}

	suite.mockRefundRepo.On("MarkRefundApproved", ctx, refundID, approvedBy).Return(expected, nil).Once()

	refund, err := suite.service.ApproveRefund(ctx, refundID, approvedBy)

	suite.Require().NoError(err)
	suite.Equal(expected, refund)

	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestApproveRefund_NotPending() {
	ctx := context.Background()
	refundID := uuid.NewString()

	suite.mockRefundRepo.On("MarkRefundApproved", ctx, refundID, "someone").Return(nil, apperrors.ErrConflict).Once()

	refund, err := suite.service.ApproveRefund(ctx, refundID, "someone")

	suite.Require().Error(err)
	suite.Nil(refund)
	suite.ErrorIs(err, apperrors.ErrConflict)

	suite.mockRefundRepo.AssertExpectations(suite.T())
}

func (suite *RefundServiceTestSuite) TestRejectRefund_RequiresReason() {
	ctx := context.Background()

	refund, err := suite.service.RejectRefund(ctx, uuid.NewString(), "someone", "   ")

	suite.Require().Error(err)
	suite.Nil(refund)
	suite.ErrorIs(err, apperrors.ErrValidation)

	suite.mockRefundRepo.AssertNotCalled(suite.T(), "MarkRefundRejected", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *RefundServiceTestSuite) TestRejectRefund_Success() {
	ctx := context.Background()
	refundID := uuid.NewString()
	now := time.Now()
	expected := &domain.Refund{
		RefundID:        refundID,
		Status:          domain.RefundStatusRejected,
		RejectionReason: strPtr("Amount disputed"),
		RejectedAt:      &now,
	}

	suite.mockRefundRepo.On("MarkRefundRejected", ctx, refundID, "someone", "Amount disputed").Return(expected, nil).Once()

	refund, err := suite.service.RejectRefund(ctx, refundID, "someone", "Amount disputed")

	suite.Require().NoError(err)
	suite.Equal(expected, refund)

	suite.mockRefundRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---

func TestRefundService(t *testing.T) {
	suite.Run(t, new(RefundServiceTestSuite))
}
