package payroll

import (
	"time"

	"github.com/bizhub/backend/internal/domain/payroll"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PeriodLayout is the wire format for batch periods. Periods are always
// the first day of a month; any date inside the month is accepted on
// input and normalized.
const PeriodLayout = "2006-01-02"

// CreateBatchRequest opens a payroll run for one calendar month.
type CreateBatchRequest struct {
	Period string `json:"period" binding:"required"`
}

// UpdateItemRequest is a merge patch: absent fields stay untouched.
type UpdateItemRequest struct {
	Amount *decimal.Decimal `json:"amount"`
	Paid   *bool            `json:"paid"`
}

// ToPatch converts the request into the domain patch form.
func (r UpdateItemRequest) ToPatch() payroll.ItemPatch {
	return payroll.ItemPatch{Amount: r.Amount, Paid: r.Paid}
}

// ItemResponse is one payroll line in API responses.
type ItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	StaffID   uuid.UUID       `json:"staff_id"`
	Amount    decimal.Decimal `json:"amount"`
	Paid      bool            `json:"paid"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func ToItemResponse(item *payroll.Item) *ItemResponse {
	return &ItemResponse{
		ID:        item.ID,
		StaffID:   item.StaffID,
		Amount:    item.Amount,
		Paid:      item.Paid,
		UpdatedAt: item.UpdatedAt,
	}
}

// BatchResponse is a payroll batch in API responses. Financial fields
// are only populated for admins; the restricted projection carries just
// id, period and locked.
type BatchResponse struct {
	ID           uuid.UUID        `json:"id"`
	Period       string           `json:"period"`
	Locked       bool             `json:"locked"`
	TotalPaid    *decimal.Decimal `json:"total_paid,omitempty"`
	TotalPending *decimal.Decimal `json:"total_pending,omitempty"`
	Items        []ItemResponse   `json:"items,omitempty"`
	CreatedAt    *time.Time       `json:"created_at,omitempty"`
}

// ToBatchResponse builds the full admin projection, totals included.
// Items are only present when they were loaded.
func ToBatchResponse(b *payroll.Batch) *BatchResponse {
	totalPaid := b.TotalPaid()
	totalPending := b.TotalPending()
	createdAt := b.CreatedAt

	resp := &BatchResponse{
		ID:           b.ID,
		Period:       b.Period.Format(PeriodLayout),
		Locked:       b.Locked,
		TotalPaid:    &totalPaid,
		TotalPending: &totalPending,
		CreatedAt:    &createdAt,
	}
	for i := range b.Items {
		resp.Items = append(resp.Items, *ToItemResponse(&b.Items[i]))
	}
	return resp
}

// ToRestrictedBatchResponse builds the non-admin projection: no amounts,
// no items.
func ToRestrictedBatchResponse(b *payroll.Batch) *BatchResponse {
	return &BatchResponse{
		ID:     b.ID,
		Period: b.Period.Format(PeriodLayout),
		Locked: b.Locked,
	}
}

// SelfItem is a staff member's own payroll line inside the summary.
type SelfItem struct {
	Amount decimal.Decimal `json:"amount"`
	Paid   bool            `json:"paid"`
}

// SummaryResponse describes the most recent batch. With no batches yet
// it degrades to the well-formed empty shape rather than an error.
// Totals are zero for non-admin callers; Self is nil for admins.
type SummaryResponse struct {
	LatestPeriod *string         `json:"latest_period"`
	Locked       bool            `json:"locked"`
	TotalPaid    decimal.Decimal `json:"total_paid"`
	TotalPending decimal.Decimal `json:"total_pending"`
	Self         *SelfItem       `json:"self"`
}

func emptySummary() *SummaryResponse {
	return &SummaryResponse{
		TotalPaid:    decimal.Zero,
		TotalPending: decimal.Zero,
	}
}

// PayslipResponse carries a short-lived download URL for a rendered
// payslip document.
type PayslipResponse struct {
	DownloadURL string    `json:"download_url"`
	ExpiresAt   time.Time `json:"expires_at"`
}
