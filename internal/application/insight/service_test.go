package insight

import (
	"context"
	"testing"
	"time"

	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/domain/finance"
	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/kpi"
	"github.com/bizhub/backend/internal/domain/payroll"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockSaleRepository is a mock implementation of finance.SaleRepository
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) Save(ctx context.Context, sale *finance.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Sale, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Sale), args.Error(1)
}

func (m *MockSaleRepository) FindAllByBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Sale], error) {
	args := m.Called(ctx, businessID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[finance.Sale]), args.Error(1)
}

func (m *MockSaleRepository) Update(ctx context.Context, sale *finance.Sale) error {
	args := m.Called(ctx, sale)
	return args.Error(0)
}

func (m *MockSaleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSaleRepository) SumByPeriod(ctx context.Context, businessID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, businessID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockExpenditureRepository is a mock implementation of finance.ExpenditureRepository
type MockExpenditureRepository struct {
	mock.Mock
}

func (m *MockExpenditureRepository) Save(ctx context.Context, expenditure *finance.Expenditure) error {
	args := m.Called(ctx, expenditure)
	return args.Error(0)
}

func (m *MockExpenditureRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Expenditure, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Expenditure), args.Error(1)
}

func (m *MockExpenditureRepository) FindAllByBusiness(ctx context.Context, businessID uuid.UUID, filter shared.Filter) (*shared.Paginated[finance.Expenditure], error) {
	args := m.Called(ctx, businessID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.Paginated[finance.Expenditure]), args.Error(1)
}

func (m *MockExpenditureRepository) Update(ctx context.Context, expenditure *finance.Expenditure) error {
	args := m.Called(ctx, expenditure)
	return args.Error(0)
}

func (m *MockExpenditureRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockExpenditureRepository) SumByPeriod(ctx context.Context, businessID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, businessID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockBatchRepository is a mock implementation of payroll.BatchRepository
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) CreateWithItems(ctx context.Context, batch *payroll.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*payroll.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByIDWithItems(ctx context.Context, id uuid.UUID) (*payroll.Batch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindByPeriod(ctx context.Context, businessID uuid.UUID, period time.Time) (*payroll.Batch, error) {
	args := m.Called(ctx, businessID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindLatest(ctx context.Context, businessID uuid.UUID) (*payroll.Batch, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]payroll.Batch, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]payroll.Batch), args.Error(1)
}

func (m *MockBatchRepository) Update(ctx context.Context, batch *payroll.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) FindItemByID(ctx context.Context, itemID uuid.UUID) (*payroll.Item, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payroll.Item), args.Error(1)
}

func (m *MockBatchRepository) UpdateItem(ctx context.Context, item *payroll.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockKPIRepository is a mock implementation of kpi.Repository
type MockKPIRepository struct {
	mock.Mock
}

func (m *MockKPIRepository) Save(ctx context.Context, target *kpi.KPI) error {
	args := m.Called(ctx, target)
	return args.Error(0)
}

func (m *MockKPIRepository) FindByID(ctx context.Context, id uuid.UUID) (*kpi.KPI, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kpi.KPI), args.Error(1)
}

func (m *MockKPIRepository) FindAllByBusiness(ctx context.Context, businessID uuid.UUID) ([]kpi.KPI, error) {
	args := m.Called(ctx, businessID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kpi.KPI), args.Error(1)
}

func (m *MockKPIRepository) FindByPeriod(ctx context.Context, businessID uuid.UUID, period time.Time) ([]kpi.KPI, error) {
	args := m.Called(ctx, businessID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kpi.KPI), args.Error(1)
}

func (m *MockKPIRepository) Update(ctx context.Context, target *kpi.KPI) error {
	args := m.Called(ctx, target)
	return args.Error(0)
}

func (m *MockKPIRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// capturingGenerator records the prompts it receives and echoes canned text
type capturingGenerator struct {
	system string
	user   string
	text   string
	err    error
}

func (g *capturingGenerator) GenerateText(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	g.system = systemPrompt
	g.user = userPrompt
	return g.text, g.err
}

func adminCtx(businessID uuid.UUID) appidentity.BusinessContext {
	return appidentity.BusinessContext{UserID: uuid.New(), BusinessID: businessID, Role: identity.RoleAdmin}
}

func newInsightService(
	saleRepo *MockSaleRepository,
	expenditureRepo *MockExpenditureRepository,
	batchRepo *MockBatchRepository,
	kpiRepo *MockKPIRepository,
	generator TextGenerator,
) *Service {
	return NewService(saleRepo, expenditureRepo, batchRepo, kpiRepo, generator, zap.NewNop())
}

func TestInsightService_Generate_DigestContents(t *testing.T) {
	ctx := context.Background()
	saleRepo := new(MockSaleRepository)
	expenditureRepo := new(MockExpenditureRepository)
	batchRepo := new(MockBatchRepository)
	kpiRepo := new(MockKPIRepository)

	businessID := uuid.New()
	from := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	saleRepo.On("SumByPeriod", ctx, businessID, from, to).Return(decimal.NewFromInt(80000), nil)
	expenditureRepo.On("SumByPeriod", ctx, businessID, from, to).Return(decimal.NewFromInt(30000), nil)

	batch, err := payroll.NewBatch(businessID, from)
	require.NoError(t, err)
	_, err = batch.AddItem(uuid.New(), decimal.NewFromInt(45000))
	require.NoError(t, err)
	batchRepo.On("FindLatest", ctx, businessID).Return(batch, nil)

	target, err := kpi.NewKPI(businessID, "Store visits", decimal.NewFromInt(1000), from, nil)
	require.NoError(t, err)
	require.NoError(t, target.RecordProgress(decimal.NewFromInt(600)))
	kpiRepo.On("FindByPeriod", ctx, businessID, from).Return([]kpi.KPI{*target}, nil)

	generator := &capturingGenerator{text: "April was a solid month."}
	service := newInsightService(saleRepo, expenditureRepo, batchRepo, kpiRepo, generator)

	resp, err := service.Generate(ctx, adminCtx(businessID), time.Date(2025, 4, 18, 9, 0, 0, 0, time.UTC))

	require.NoError(t, err)
	assert.Equal(t, "2025-04", resp.Month)
	assert.Equal(t, "April was a solid month.", resp.Text)
	assert.Contains(t, generator.user, "Revenue: 80000.00")
	assert.Contains(t, generator.user, "Expenditure: 30000.00")
	assert.Contains(t, generator.user, "Net: 50000.00")
	assert.Contains(t, generator.user, "pending 45000.00")
	assert.Contains(t, generator.user, `KPI "Store visits": 600.00 of 1000.00 (60.0%)`)
	assert.Contains(t, generator.system, "business analyst")
}

func TestInsightService_Generate_NoDataMonth(t *testing.T) {
	ctx := context.Background()
	saleRepo := new(MockSaleRepository)
	expenditureRepo := new(MockExpenditureRepository)
	batchRepo := new(MockBatchRepository)
	kpiRepo := new(MockKPIRepository)

	businessID := uuid.New()
	saleRepo.On("SumByPeriod", ctx, businessID, mock.Anything, mock.Anything).Return(decimal.Zero, nil)
	expenditureRepo.On("SumByPeriod", ctx, businessID, mock.Anything, mock.Anything).Return(decimal.Zero, nil)
	batchRepo.On("FindLatest", ctx, businessID).Return(nil, shared.ErrNotFound)
	kpiRepo.On("FindByPeriod", ctx, businessID, mock.Anything).Return([]kpi.KPI{}, nil)

	generator := &capturingGenerator{text: "Nothing recorded yet."}
	service := newInsightService(saleRepo, expenditureRepo, batchRepo, kpiRepo, generator)

	resp, err := service.Generate(ctx, adminCtx(businessID), time.Now())

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Text)
	assert.Contains(t, generator.user, "no batches yet")
	assert.Contains(t, generator.user, "none set for this month")
}

func TestInsightService_Generate_StaffForbidden(t *testing.T) {
	ctx := context.Background()
	service := newInsightService(new(MockSaleRepository), new(MockExpenditureRepository),
		new(MockBatchRepository), new(MockKPIRepository), &capturingGenerator{})

	staffID := uuid.New()
	bctx := appidentity.BusinessContext{
		UserID:     uuid.New(),
		BusinessID: uuid.New(),
		Role:       identity.RoleStaff,
		StaffID:    &staffID,
	}

	_, err := service.Generate(ctx, bctx, time.Now())
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestInsightService_Generate_BackendFailureWrapped(t *testing.T) {
	ctx := context.Background()
	saleRepo := new(MockSaleRepository)
	expenditureRepo := new(MockExpenditureRepository)
	batchRepo := new(MockBatchRepository)
	kpiRepo := new(MockKPIRepository)

	businessID := uuid.New()
	saleRepo.On("SumByPeriod", ctx, businessID, mock.Anything, mock.Anything).Return(decimal.Zero, nil)
	expenditureRepo.On("SumByPeriod", ctx, businessID, mock.Anything, mock.Anything).Return(decimal.Zero, nil)
	batchRepo.On("FindLatest", ctx, businessID).Return(nil, shared.ErrNotFound)
	kpiRepo.On("FindByPeriod", ctx, businessID, mock.Anything).Return([]kpi.KPI{}, nil)

	generator := &capturingGenerator{err: context.DeadlineExceeded}
	service := newInsightService(saleRepo, expenditureRepo, batchRepo, kpiRepo, generator)

	_, err := service.Generate(ctx, adminCtx(businessID), time.Now())

	require.Error(t, err)
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, "INSIGHT_UNAVAILABLE", derr.Code)
}
