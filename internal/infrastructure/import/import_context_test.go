package csvimport

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expenditureRules() []FieldRule {
	return []FieldRule{
		Field("description").Required().MaxLength(500).Build(),
		Field("amount").Required().Decimal().MinValue(decimal.NewFromInt(0)).Build(),
		Field("category").Pattern("^(RENT|SUPPLIES|UTILITIES|SALARIES|OTHER)$", "a known category").Build(),
		Field("occurred_at").Date().Build(),
	}
}

func TestEntityTypes(t *testing.T) {
	assert.True(t, IsValidEntityType("sales"))
	assert.True(t, IsValidEntityType("expenditures"))
	assert.False(t, IsValidEntityType("products"))
	assert.False(t, IsValidEntityType(""))
	assert.Len(t, ValidEntityTypes(), 2)
}

func TestImportSession_Lifecycle(t *testing.T) {
	businessID := uuid.New()
	userID := uuid.New()

	session := NewImportSession(businessID, userID, EntityExpenditures, "spend.csv", 2048)

	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.Equal(t, businessID, session.BusinessID)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, EntityExpenditures, session.EntityType)
	assert.Equal(t, StateCreated, session.State)
	assert.Nil(t, session.CompletedAt)

	session.UpdateState(StateValidating)
	assert.Equal(t, StateValidating, session.State)
	assert.Nil(t, session.CompletedAt)

	session.UpdateState(StateCompleted)
	assert.Equal(t, StateCompleted, session.State)
	require.NotNil(t, session.CompletedAt)
}

func TestImportSession_SetValidationResult(t *testing.T) {
	session := NewImportSession(uuid.New(), uuid.New(), EntitySales, "sales.csv", 1024)

	result := NewValidationResult(session.ID.String())
	result.SetCounts(5, 4, 1)
	ec := NewErrorCollection(10)
	ec.AddRequiredError(3, "description")
	result.SetErrors(ec)

	session.SetValidationResult(result)

	assert.Equal(t, 5, session.TotalRows)
	assert.Equal(t, 4, session.ValidRows)
	assert.Equal(t, 1, session.ErrorRows)
	assert.Len(t, session.Errors, 1)
	assert.False(t, session.IsValid())
}

func TestImportProcessor_Validate(t *testing.T) {
	ctx := context.Background()

	t.Run("All rows valid", func(t *testing.T) {
		csv := "description,amount,category,occurred_at\n" +
			"Shop rent,200000,RENT,2025-03-01\n" +
			"Cleaning supplies,4500,SUPPLIES,2025-03-04\n" +
			"Electricity,12000,,2025-03-10\n"
		session := NewImportSession(uuid.New(), uuid.New(), EntityExpenditures, "spend.csv", int64(len(csv)))

		processor := NewImportProcessor()
		result, rows, err := processor.Validate(ctx, session, strings.NewReader(csv), expenditureRules())

		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalRows)
		assert.Equal(t, 3, result.ValidRows)
		assert.Equal(t, 0, result.ErrorRows)
		assert.Len(t, rows, 3)
		assert.Equal(t, StateValidated, session.State)
		assert.Equal(t, "Shop rent", rows[0].Get("description"))
	})

	t.Run("Invalid rows are reported with line numbers", func(t *testing.T) {
		csv := "description,amount,category,occurred_at\n" +
			"Shop rent,200000,RENT,2025-03-01\n" +
			",4500,SUPPLIES,2025-03-04\n" +
			"Electricity,not-a-number,UTILITIES,2025-03-10\n"
		session := NewImportSession(uuid.New(), uuid.New(), EntityExpenditures, "spend.csv", int64(len(csv)))

		processor := NewImportProcessor()
		result, rows, err := processor.Validate(ctx, session, strings.NewReader(csv), expenditureRules())

		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalRows)
		assert.Equal(t, 1, result.ValidRows)
		assert.Equal(t, 2, result.ErrorRows)
		assert.Len(t, rows, 1)
		assert.Equal(t, StateFailed, session.State)

		lines := make([]int, 0, len(result.Errors))
		for _, e := range result.Errors {
			lines = append(lines, e.Row)
		}
		assert.ElementsMatch(t, []int{3, 4}, lines)
	})

	t.Run("Missing required column fails fast", func(t *testing.T) {
		csv := "description,category\nShop rent,RENT\n"
		session := NewImportSession(uuid.New(), uuid.New(), EntityExpenditures, "spend.csv", int64(len(csv)))

		processor := NewImportProcessor()
		_, _, err := processor.Validate(ctx, session, strings.NewReader(csv), expenditureRules())

		require.Error(t, err)
		var rowErr RowError
		require.ErrorAs(t, err, &rowErr)
		assert.Equal(t, ErrCodeImportInvalidHeader, rowErr.Code)
		assert.Equal(t, "amount", rowErr.Column)
		assert.Equal(t, StateFailed, session.State)
	})

	t.Run("File with only a header fails", func(t *testing.T) {
		csv := "description,amount,category,occurred_at\n"
		session := NewImportSession(uuid.New(), uuid.New(), EntityExpenditures, "spend.csv", int64(len(csv)))

		processor := NewImportProcessor()
		_, _, err := processor.Validate(ctx, session, strings.NewReader(csv), expenditureRules())

		assert.ErrorIs(t, err, ErrNoDataRows)
		assert.Equal(t, StateFailed, session.State)
	})

	t.Run("Row cap is enforced", func(t *testing.T) {
		var sb strings.Builder
		sb.WriteString("description,amount\n")
		for i := 0; i < 5; i++ {
			sb.WriteString("Counter sale,1500\n")
		}
		session := NewImportSession(uuid.New(), uuid.New(), EntitySales, "sales.csv", int64(sb.Len()))

		processor := NewImportProcessor(WithMaxRows(3))
		result, _, err := processor.Validate(ctx, session, strings.NewReader(sb.String()), []FieldRule{
			Field("description").Required().Build(),
			Field("amount").Required().Decimal().Build(),
		})

		require.NoError(t, err)
		assert.Equal(t, StateFailed, session.State)
		require.NotEmpty(t, result.Errors)
		assert.Equal(t, ErrCodeImportValidation, result.Errors[len(result.Errors)-1].Code)
	})

	t.Run("Preview is capped", func(t *testing.T) {
		var sb strings.Builder
		sb.WriteString("description,amount\n")
		for i := 0; i < 10; i++ {
			sb.WriteString("Counter sale,1500\n")
		}
		session := NewImportSession(uuid.New(), uuid.New(), EntitySales, "sales.csv", int64(sb.Len()))

		processor := NewImportProcessor(WithPreviewRows(2))
		result, rows, err := processor.Validate(ctx, session, strings.NewReader(sb.String()), []FieldRule{
			Field("description").Required().Build(),
		})

		require.NoError(t, err)
		assert.Len(t, result.Preview, 2)
		assert.Len(t, rows, 10)
	})

	t.Run("Cancelled context aborts", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(context.Background())
		cancel()

		csv := "description,amount\nCounter sale,1500\n"
		session := NewImportSession(uuid.New(), uuid.New(), EntitySales, "sales.csv", int64(len(csv)))

		processor := NewImportProcessor()
		_, _, err := processor.Validate(cancelled, session, strings.NewReader(csv), []FieldRule{
			Field("description").Required().Build(),
		})

		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, StateCancelled, session.State)
	})
}

func TestInMemorySessionStore(t *testing.T) {
	t.Run("Save and Get", func(t *testing.T) {
		store := NewInMemorySessionStore(time.Minute)
		defer store.Stop()

		session := NewImportSession(uuid.New(), uuid.New(), EntitySales, "sales.csv", 1024)
		require.NoError(t, store.Save(session))

		got, err := store.Get(session.ID)
		require.NoError(t, err)
		assert.Equal(t, session, got)
	})

	t.Run("Get unknown returns nil", func(t *testing.T) {
		store := NewInMemorySessionStore(time.Minute)
		defer store.Stop()

		got, err := store.Get(uuid.New())
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Expired sessions are invisible", func(t *testing.T) {
		store := NewInMemorySessionStore(time.Nanosecond)
		defer store.Stop()

		session := NewImportSession(uuid.New(), uuid.New(), EntitySales, "sales.csv", 1024)
		require.NoError(t, store.Save(session))
		time.Sleep(time.Millisecond)

		got, err := store.Get(session.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("GetByBusiness filters by business", func(t *testing.T) {
		store := NewInMemorySessionStore(time.Minute)
		defer store.Stop()

		businessID := uuid.New()
		s1 := NewImportSession(businessID, uuid.New(), EntitySales, "a.csv", 1)
		s2 := NewImportSession(businessID, uuid.New(), EntityExpenditures, "b.csv", 2)
		other := NewImportSession(uuid.New(), uuid.New(), EntitySales, "c.csv", 3)
		require.NoError(t, store.Save(s1))
		require.NoError(t, store.Save(s2))
		require.NoError(t, store.Save(other))

		sessions, err := store.GetByBusiness(businessID, 10)
		require.NoError(t, err)
		assert.Len(t, sessions, 2)
	})

	t.Run("GetByBusiness respects limit", func(t *testing.T) {
		store := NewInMemorySessionStore(time.Minute)
		defer store.Stop()

		businessID := uuid.New()
		for i := 0; i < 5; i++ {
			require.NoError(t, store.Save(NewImportSession(businessID, uuid.New(), EntitySales, "a.csv", 1)))
		}

		sessions, err := store.GetByBusiness(businessID, 3)
		require.NoError(t, err)
		assert.Len(t, sessions, 3)
	})

	t.Run("Delete removes session", func(t *testing.T) {
		store := NewInMemorySessionStore(time.Minute)
		defer store.Stop()

		session := NewImportSession(uuid.New(), uuid.New(), EntitySales, "sales.csv", 1024)
		require.NoError(t, store.Save(session))
		require.NoError(t, store.Delete(session.ID))

		got, err := store.Get(session.ID)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Cleanup evicts expired sessions", func(t *testing.T) {
		store := NewInMemorySessionStore(time.Nanosecond)
		defer store.Stop()

		session := NewImportSession(uuid.New(), uuid.New(), EntitySales, "sales.csv", 1024)
		require.NoError(t, store.Save(session))
		time.Sleep(time.Millisecond)

		store.Cleanup()

		store.mu.RLock()
		_, exists := store.sessions[session.ID]
		store.mu.RUnlock()
		assert.False(t, exists)
	})
}
