package printing

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPayslipHTML(t *testing.T) {
	base := PayslipData{
		BusinessName: "Mama Nkechi Stores",
		StaffName:    "Chidi Eze",
		Position:     "Shop Assistant",
		Department:   "Front of House",
		Period:       time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		Amount:       decimal.NewFromFloat(85000.50),
		Paid:         true,
		GeneratedAt:  time.Date(2026, 7, 2, 9, 30, 0, 0, time.UTC),
	}

	t.Run("renders all fields", func(t *testing.T) {
		html, err := RenderPayslipHTML(base)
		require.NoError(t, err)

		assert.Contains(t, html, "Mama Nkechi Stores")
		assert.Contains(t, html, "Chidi Eze")
		assert.Contains(t, html, "Shop Assistant")
		assert.Contains(t, html, "Front of House")
		assert.Contains(t, html, "June 2026")
		assert.Contains(t, html, "85000.50")
		assert.Contains(t, html, `class="status paid"`)
	})

	t.Run("pending status", func(t *testing.T) {
		data := base
		data.Paid = false
		html, err := RenderPayslipHTML(data)
		require.NoError(t, err)
		assert.Contains(t, html, `class="status pending"`)
	})

	t.Run("optional fields omitted", func(t *testing.T) {
		data := base
		data.Position = ""
		data.Department = ""
		html, err := RenderPayslipHTML(data)
		require.NoError(t, err)
		assert.NotContains(t, html, "Position")
		assert.NotContains(t, html, "Department")
	})

	t.Run("escapes markup in names", func(t *testing.T) {
		data := base
		data.StaffName = "<script>alert(1)</script>"
		html, err := RenderPayslipHTML(data)
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>alert(1)</script>")
	})
}

func TestCompleteDocument(t *testing.T) {
	t.Run("wraps bare fragment", func(t *testing.T) {
		out := completeDocument(&RenderRequest{HTML: "<p>hello</p>", Title: "Payslip"})
		assert.Contains(t, out, "<!DOCTYPE html>")
		assert.Contains(t, out, "<title>Payslip</title>")
		assert.Contains(t, out, "<p>hello</p>")
	})

	t.Run("leaves full document alone", func(t *testing.T) {
		doc := "<!DOCTYPE html><html><body>x</body></html>"
		assert.Equal(t, doc, completeDocument(&RenderRequest{HTML: doc}))
	})
}

func TestRenderValidation(t *testing.T) {
	r := &ChromedpRenderer{config: &ChromedpConfig{DefaultTimeout: time.Second}}

	t.Run("nil request", func(t *testing.T) {
		_, err := r.Render(context.Background(), nil)
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})

	t.Run("blank HTML", func(t *testing.T) {
		_, err := r.Render(context.Background(), &RenderRequest{HTML: "   "})
		var renderErr *RenderError
		require.ErrorAs(t, err, &renderErr)
		assert.Equal(t, ErrCodeInvalidHTML, renderErr.Code)
	})
}
