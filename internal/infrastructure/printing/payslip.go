package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

// PayslipData feeds the payslip template for a single staff member in
// a payroll batch.
type PayslipData struct {
	BusinessName string
	StaffName    string
	Position     string
	Department   string
	Period       time.Time
	Amount       decimal.Decimal
	Paid         bool
	GeneratedAt  time.Time
}

const payslipTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Payslip {{.Period.Format "January 2006"}}</title>
<style>
  body { font-family: 'Helvetica Neue', Arial, sans-serif; color: #1a1a2e; margin: 0; }
  .header { border-bottom: 2px solid #1a1a2e; padding-bottom: 12px; margin-bottom: 24px; }
  .header h1 { margin: 0; font-size: 22px; }
  .header .period { color: #555; font-size: 14px; }
  table { width: 100%; border-collapse: collapse; }
  td { padding: 8px 4px; border-bottom: 1px solid #e0e0e0; font-size: 14px; }
  td.label { color: #555; width: 40%; }
  .amount { font-size: 20px; font-weight: bold; margin-top: 24px; }
  .status { display: inline-block; padding: 2px 10px; border-radius: 10px; font-size: 12px; }
  .status.paid { background: #d4edda; color: #155724; }
  .status.pending { background: #fff3cd; color: #856404; }
  .footer { margin-top: 40px; font-size: 11px; color: #999; }
</style>
</head>
<body>
<div class="header">
  <h1>{{.BusinessName}}</h1>
  <div class="period">Payslip for {{.Period.Format "January 2006"}}</div>
</div>
<table>
  <tr><td class="label">Employee</td><td>{{.StaffName}}</td></tr>
  {{if .Position}}<tr><td class="label">Position</td><td>{{.Position}}</td></tr>{{end}}
  {{if .Department}}<tr><td class="label">Department</td><td>{{.Department}}</td></tr>{{end}}
  <tr><td class="label">Status</td><td>
    {{if .Paid}}<span class="status paid">Paid</span>{{else}}<span class="status pending">Pending</span>{{end}}
  </td></tr>
</table>
<div class="amount">Net pay: {{.Amount.StringFixed 2}}</div>
<div class="footer">Generated {{.GeneratedAt.Format "2 Jan 2006 15:04 MST"}}</div>
</body>
</html>`

var payslipTmpl = template.Must(template.New("payslip").Parse(payslipTemplate))

// RenderPayslipHTML produces the payslip document body for PDF
// rendering.
func RenderPayslipHTML(data PayslipData) (string, error) {
	var buf bytes.Buffer
	if err := payslipTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute payslip template: %w", err)
	}
	return buf.String(), nil
}
