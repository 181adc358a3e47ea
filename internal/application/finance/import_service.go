package finance

import (
	"context"
	"io"
	"strings"
	"time"

	appidentity "github.com/bizhub/backend/internal/application/identity"
	"github.com/bizhub/backend/internal/domain/finance"
	"github.com/bizhub/backend/internal/domain/shared"
	csvimport "github.com/bizhub/backend/internal/infrastructure/import"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// importDateLayout is the expected occurred_at format in uploaded files.
const importDateLayout = "2006-01-02"

// maxImportFileSize caps uploads at 5 MiB.
const maxImportFileSize = 5 * 1024 * 1024

// ImportService bulk-loads sales and expenditures from uploaded CSV files.
// Files are validated in full before anything is inserted; a file with any
// invalid row is rejected whole so a partial import never happens.
type ImportService struct {
	saleRepo        finance.SaleRepository
	expenditureRepo finance.ExpenditureRepository
	sessions        csvimport.SessionStore
	processor       *csvimport.ImportProcessor
	logger          *zap.Logger
}

func NewImportService(
	saleRepo finance.SaleRepository,
	expenditureRepo finance.ExpenditureRepository,
	sessions csvimport.SessionStore,
	logger *zap.Logger,
) *ImportService {
	return &ImportService{
		saleRepo:        saleRepo,
		expenditureRepo: expenditureRepo,
		sessions:        sessions,
		processor:       csvimport.NewImportProcessor(),
		logger:          logger,
	}
}

// ImportRequest describes an uploaded CSV file.
type ImportRequest struct {
	Entity       string
	FileName     string
	FileSize     int64
	Reader       io.Reader
	ValidateOnly bool
}

// Import validates the uploaded file and, unless ValidateOnly is set,
// inserts every row. Only roles that manage finances may import.
func (s *ImportService) Import(ctx context.Context, bctx appidentity.BusinessContext, req ImportRequest) (*csvimport.ImportSession, error) {
	if !bctx.Role.CanManageFinances() {
		return nil, shared.ErrForbidden
	}
	if !csvimport.IsValidEntityType(req.Entity) {
		return nil, shared.NewDomainError("INVALID_IMPORT_ENTITY", "Importable entities are: sales, expenditures")
	}
	if req.FileSize > maxImportFileSize {
		return nil, shared.NewDomainError("INVALID_IMPORT_FILE", "File exceeds the 5 MiB import limit")
	}

	entity := csvimport.EntityType(req.Entity)
	session := csvimport.NewImportSession(bctx.BusinessID, bctx.UserID, entity, req.FileName, req.FileSize)

	result, rows, err := s.processor.Validate(ctx, session, req.Reader, s.rulesFor(entity))
	if err != nil {
		_ = s.sessions.Save(session)
		return nil, shared.NewDomainError("INVALID_IMPORT_FILE", err.Error())
	}

	if result.IsValid() && !req.ValidateOnly {
		session.UpdateState(csvimport.StateImporting)
		if err := s.insertRows(ctx, bctx, entity, rows); err != nil {
			session.UpdateState(csvimport.StateFailed)
			_ = s.sessions.Save(session)
			return nil, err
		}
		session.UpdateState(csvimport.StateCompleted)

		s.logger.Info("CSV import completed",
			zap.String("session_id", session.ID.String()),
			zap.String("business_id", bctx.BusinessID.String()),
			zap.String("entity", req.Entity),
			zap.Int("rows", len(rows)),
		)
	}

	if err := s.sessions.Save(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns an import session. Sessions of other businesses resolve to
// NOT_FOUND, as do expired ones.
func (s *ImportService) Get(ctx context.Context, bctx appidentity.BusinessContext, id uuid.UUID) (*csvimport.ImportSession, error) {
	if !bctx.Role.CanManageFinances() {
		return nil, shared.ErrForbidden
	}

	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if session == nil || session.BusinessID != bctx.BusinessID {
		return nil, shared.ErrNotFound
	}
	return session, nil
}

// List returns the business's recent import sessions.
func (s *ImportService) List(ctx context.Context, bctx appidentity.BusinessContext) ([]*csvimport.ImportSession, error) {
	if !bctx.Role.CanManageFinances() {
		return nil, shared.ErrForbidden
	}
	return s.sessions.GetByBusiness(bctx.BusinessID, 20)
}

func (s *ImportService) rulesFor(entity csvimport.EntityType) []csvimport.FieldRule {
	rules := []csvimport.FieldRule{
		csvimport.Field("description").Required().MaxLength(500).Build(),
		csvimport.Field("amount").Required().Decimal().MinValue(decimal.New(1, -2)).Build(),
		csvimport.Field("occurred_at").Date().DateFormat(importDateLayout).Build(),
	}
	if entity == csvimport.EntityExpenditures {
		rules = append(rules, csvimport.Field("category").Custom(func(value string) error {
			category := finance.ExpenditureCategory(strings.ToUpper(value))
			if !category.IsValid() {
				return shared.NewDomainError("INVALID_CATEGORY", "Unknown expenditure category: "+value)
			}
			return nil
		}).Build())
	}
	return rules
}

func (s *ImportService) insertRows(ctx context.Context, bctx appidentity.BusinessContext, entity csvimport.EntityType, rows []*csvimport.Row) error {
	for _, row := range rows {
		// Validated by the processor, so these cannot fail to parse.
		amount, err := decimal.NewFromString(row.Get("amount"))
		if err != nil {
			return shared.NewDomainError("INVALID_IMPORT_FILE", "row "+row.Get("amount")+": bad amount")
		}

		var occurredAt time.Time
		if raw := row.Get("occurred_at"); raw != "" {
			occurredAt, err = time.Parse(importDateLayout, raw)
			if err != nil {
				return shared.NewDomainError("INVALID_IMPORT_FILE", "row "+raw+": bad date")
			}
		}

		switch entity {
		case csvimport.EntitySales:
			sale, err := finance.NewSale(bctx.BusinessID, bctx.UserID, row.Get("description"), amount, occurredAt)
			if err != nil {
				return err
			}
			if err := s.saleRepo.Save(ctx, sale); err != nil {
				return err
			}
		case csvimport.EntityExpenditures:
			category := finance.ExpenditureCategory(strings.ToUpper(row.Get("category")))
			expenditure, err := finance.NewExpenditure(bctx.BusinessID, bctx.UserID, row.Get("description"), category, amount, occurredAt)
			if err != nil {
				return err
			}
			if err := s.expenditureRepo.Save(ctx, expenditure); err != nil {
				return err
			}
		}
	}
	return nil
}
