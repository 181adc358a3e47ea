package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	payrollapp "github.com/bizhub/backend/internal/application/payroll"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/bizhub/backend/internal/infrastructure/cache"
	"github.com/bizhub/backend/internal/infrastructure/event"
	"github.com/bizhub/backend/internal/infrastructure/persistence"
	"github.com/bizhub/backend/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newBatchService(db *gorm.DB) *payrollapp.BatchService {
	return payrollapp.NewBatchService(
		persistence.NewGormPayrollBatchRepository(db),
		persistence.NewGormStaffRepository(db),
		cache.NewInMemorySummaryCache(),
		event.NewInMemoryEventBus(zap.NewNop()),
		zap.NewNop(),
	)
}

// TestPayrollBatchLifecycle drives a full payroll run through real
// repositories: open the batch, record amounts, lock, verify the lock
// holds, unlock and pay out the rest.
func TestPayrollBatchLifecycle(t *testing.T) {
	db := newTestDB(t)
	biz := seedBusiness(t, db, "Acme Traders")
	svc := newBatchService(db)
	ctx := context.Background()

	march := time.Date(2026, time.March, 15, 9, 30, 0, 0, time.UTC)

	batch, err := svc.CreateBatch(ctx, biz.AdminCtx, march)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", batch.Period)
	assert.False(t, batch.Locked)
	require.Len(t, batch.Items, 2, "every employed staff member gets a line")
	for _, item := range batch.Items {
		assert.True(t, item.Amount.IsZero())
		assert.False(t, item.Paid)
	}

	itemFor := func(staffID uuid.UUID) uuid.UUID {
		for _, item := range batch.Items {
			if item.StaffID == staffID {
				return item.ID
			}
		}
		t.Fatalf("no item for staff %s", staffID)
		return uuid.Nil
	}
	itemA := itemFor(biz.StaffA.ID)
	itemB := itemFor(biz.StaffB.ID)

	t.Run("duplicate period conflicts", func(t *testing.T) {
		sameMonth := time.Date(2026, time.March, 28, 0, 0, 0, 0, time.UTC)
		_, err := svc.CreateBatch(ctx, biz.AdminCtx, sameMonth)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CONFLICT", domainErr.Code)
	})

	t.Run("staff cannot open batches", func(t *testing.T) {
		_, err := svc.CreateBatch(ctx, biz.StaffACtx, march.AddDate(0, 1, 0))
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin records amounts", func(t *testing.T) {
		amountA := decimal.NewFromInt(90000)
		paid := true
		updated, err := svc.UpdateItem(ctx, biz.AdminCtx, batch.ID, itemA, payrollapp.UpdateItemRequest{
			Amount: &amountA,
			Paid:   &paid,
		})
		require.NoError(t, err)
		assert.True(t, updated.Amount.Equal(amountA))
		assert.True(t, updated.Paid)

		amountB := decimal.NewFromInt(70000)
		_, err = svc.UpdateItem(ctx, biz.AdminCtx, batch.ID, itemB, payrollapp.UpdateItemRequest{
			Amount: &amountB,
		})
		require.NoError(t, err)
	})

	t.Run("locked batch rejects item edits", func(t *testing.T) {
		locked, err := svc.LockBatch(ctx, biz.AdminCtx, batch.ID)
		require.NoError(t, err)
		assert.True(t, locked.Locked)

		// Idempotent: locking again is not an error.
		_, err = svc.LockBatch(ctx, biz.AdminCtx, batch.ID)
		require.NoError(t, err)

		amount := decimal.NewFromInt(95000)
		_, err = svc.UpdateItem(ctx, biz.AdminCtx, batch.ID, itemA, payrollapp.UpdateItemRequest{Amount: &amount})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "BATCH_LOCKED", domainErr.Code)
	})

	t.Run("unlock reopens the batch", func(t *testing.T) {
		unlocked, err := svc.UnlockBatch(ctx, biz.AdminCtx, batch.ID)
		require.NoError(t, err)
		assert.False(t, unlocked.Locked)

		paid := true
		updated, err := svc.UpdateItem(ctx, biz.AdminCtx, batch.ID, itemB, payrollapp.UpdateItemRequest{Paid: &paid})
		require.NoError(t, err)
		assert.True(t, updated.Paid)
	})

	t.Run("admin summary totals", func(t *testing.T) {
		summary, err := svc.Summary(ctx, biz.AdminCtx)
		require.NoError(t, err)
		require.NotNil(t, summary.LatestPeriod)
		assert.Equal(t, "2026-03-01", *summary.LatestPeriod)
		assert.True(t, summary.TotalPaid.Equal(decimal.NewFromInt(160000)))
		assert.True(t, summary.TotalPending.IsZero())
		assert.Nil(t, summary.Self)
	})
}

// TestPayrollStaffVisibility checks the restricted projection: staff
// see batch existence and their own line, never other people's pay.
func TestPayrollStaffVisibility(t *testing.T) {
	db := newTestDB(t)
	biz := seedBusiness(t, db, "Blue Bakery")
	svc := newBatchService(db)
	ctx := context.Background()

	batch, err := svc.CreateBatch(ctx, biz.AdminCtx, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var itemA, itemB uuid.UUID
	for _, item := range batch.Items {
		switch item.StaffID {
		case biz.StaffA.ID:
			itemA = item.ID
		case biz.StaffB.ID:
			itemB = item.ID
		}
	}

	amount := decimal.NewFromInt(85000)
	_, err = svc.UpdateItem(ctx, biz.AdminCtx, batch.ID, itemA, payrollapp.UpdateItemRequest{Amount: &amount})
	require.NoError(t, err)

	t.Run("staff get batch sees only own line", func(t *testing.T) {
		got, err := svc.GetBatch(ctx, biz.StaffACtx, batch.ID)
		require.NoError(t, err)
		assert.Nil(t, got.TotalPaid)
		assert.Nil(t, got.TotalPending)
		require.Len(t, got.Items, 1)
		assert.Equal(t, biz.StaffA.ID, got.Items[0].StaffID)
		assert.True(t, got.Items[0].Amount.Equal(amount))
	})

	t.Run("staff list is the restricted projection", func(t *testing.T) {
		list, err := svc.ListBatches(ctx, biz.StaffACtx)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Nil(t, list[0].TotalPaid)
		assert.Empty(t, list[0].Items)
	})

	t.Run("staff reads own line directly", func(t *testing.T) {
		item, err := svc.GetItem(ctx, biz.StaffACtx, batch.ID, itemA)
		require.NoError(t, err)
		assert.True(t, item.Amount.Equal(amount))

		_, err = svc.GetItem(ctx, biz.StaffACtx, batch.ID, itemB)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("staff cannot edit another staff member's line", func(t *testing.T) {
		bump := decimal.NewFromInt(1)
		_, err := svc.UpdateItem(ctx, biz.StaffACtx, batch.ID, itemB, payrollapp.UpdateItemRequest{Amount: &bump})
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("staff summary carries only self", func(t *testing.T) {
		summary, err := svc.Summary(ctx, biz.StaffACtx)
		require.NoError(t, err)
		require.NotNil(t, summary.Self)
		assert.True(t, summary.Self.Amount.Equal(amount))
		assert.True(t, summary.TotalPaid.IsZero(), "business totals stay hidden")
	})
}

// TestPayrollEventsReachSubscribers: batch lifecycle events fan out to
// bus subscribers with the owning business attached.
func TestPayrollEventsReachSubscribers(t *testing.T) {
	db := newTestDB(t)
	biz := seedBusiness(t, db, "Sunrise Motors")
	ctx := context.Background()

	bus := event.NewInMemoryEventBus(zap.NewNop())
	handler := testutil.NewMockEventHandler("payroll.batch.created", "payroll.batch.locked")
	bus.Subscribe(handler)

	svc := payrollapp.NewBatchService(
		persistence.NewGormPayrollBatchRepository(db),
		persistence.NewGormStaffRepository(db),
		cache.NewInMemorySummaryCache(),
		bus,
		zap.NewNop(),
	)

	batch, err := svc.CreateBatch(ctx, biz.AdminCtx, time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = svc.LockBatch(ctx, biz.AdminCtx, batch.ID)
	require.NoError(t, err)

	require.True(t, testutil.WaitForEventCount(t, handler, 2, time.Second))
	handled := handler.Handled()
	assert.Equal(t, "payroll.batch.created", handled[0].EventType())
	assert.Equal(t, "payroll.batch.locked", handled[1].EventType())
	for _, evt := range handled {
		assert.Equal(t, biz.Business.ID, evt.BusinessID())
	}

	// Locking an already locked batch publishes nothing new.
	_, err = svc.LockBatch(ctx, biz.AdminCtx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, handler.HandledCount())
}

// TestPayrollBusinessIsolation verifies that one business's batches are
// invisible to another business, id in hand or not.
func TestPayrollBusinessIsolation(t *testing.T) {
	db := newTestDB(t)
	bizA := seedBusiness(t, db, "North Stores")
	bizB := seedBusiness(t, db, "South Stores")
	svc := newBatchService(db)
	ctx := context.Background()

	period := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	batchA, err := svc.CreateBatch(ctx, bizA.AdminCtx, period)
	require.NoError(t, err)

	// Same period in another business is not a conflict.
	batchB, err := svc.CreateBatch(ctx, bizB.AdminCtx, period)
	require.NoError(t, err)

	t.Run("foreign batch resolves to not found", func(t *testing.T) {
		_, err := svc.GetBatch(ctx, bizB.AdminCtx, batchA.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)

		_, err = svc.LockBatch(ctx, bizB.AdminCtx, batchA.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("foreign item cannot be patched through own batch", func(t *testing.T) {
		require.NotEmpty(t, batchA.Items)
		amount := decimal.NewFromInt(50000)
		_, err := svc.UpdateItem(ctx, bizB.AdminCtx, batchB.ID, batchA.Items[0].ID, payrollapp.UpdateItemRequest{Amount: &amount})
		require.Error(t, err)
		assert.True(t, errors.Is(err, shared.ErrNotFound))
	})

	t.Run("lists stay scoped", func(t *testing.T) {
		listA, err := svc.ListBatches(ctx, bizA.AdminCtx)
		require.NoError(t, err)
		require.Len(t, listA, 1)
		assert.Equal(t, batchA.ID, listA[0].ID)

		listB, err := svc.ListBatches(ctx, bizB.AdminCtx)
		require.NoError(t, err)
		require.Len(t, listB, 1)
		assert.Equal(t, batchB.ID, listB[0].ID)
	})
}
