package printing

import (
	"context"
)

// StubRenderer rejects every render request. It stands in for Chrome in
// deployments that have payslip rendering turned off.
type StubRenderer struct{}

var _ PDFRenderer = (*StubRenderer)(nil)

func NewStubRenderer() *StubRenderer {
	return &StubRenderer{}
}

func (r *StubRenderer) Render(ctx context.Context, req *RenderRequest) (*RenderResult, error) {
	return nil, NewRenderError("RENDERER_DISABLED", "PDF rendering is not enabled on this server", nil)
}

func (r *StubRenderer) Close() error {
	return nil
}
