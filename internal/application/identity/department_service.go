package identity

import (
	"context"
	"errors"

	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DepartmentService manages a business's departments. Names are unique
// per business after Unicode lowercase folding, so "Sales" and "sales"
// collide.
type DepartmentService struct {
	departmentRepo identity.DepartmentRepository
}

func NewDepartmentService(departmentRepo identity.DepartmentRepository) *DepartmentService {
	return &DepartmentService{departmentRepo: departmentRepo}
}

func (s *DepartmentService) Create(ctx context.Context, bctx BusinessContext, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	if !bctx.Role.CanManageMembers() {
		return nil, shared.ErrForbidden
	}

	normalized := identity.NormalizeDepartmentName(req.Name)
	if _, err := s.departmentRepo.FindByNormalizedName(ctx, bctx.BusinessID, normalized); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A department with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	department, err := identity.NewDepartment(bctx.BusinessID, req.Name, req.Description)
	if err != nil {
		return nil, err
	}

	// The partial unique index backs up this pre-check under
	// concurrency; Save surfaces the race as CONFLICT.
	if err := s.departmentRepo.Save(ctx, department); err != nil {
		return nil, err
	}

	return ToDepartmentResponse(department), nil
}

func (s *DepartmentService) List(ctx context.Context, bctx BusinessContext) ([]DepartmentResponse, error) {
	departments, err := s.departmentRepo.FindAllByBusiness(ctx, bctx.BusinessID)
	if err != nil {
		return nil, err
	}

	responses := make([]DepartmentResponse, len(departments))
	for i := range departments {
		responses[i] = *ToDepartmentResponse(&departments[i])
	}
	return responses, nil
}

func (s *DepartmentService) Update(ctx context.Context, bctx BusinessContext, id uuid.UUID, req CreateDepartmentRequest) (*DepartmentResponse, error) {
	if !bctx.Role.CanManageMembers() {
		return nil, shared.ErrForbidden
	}

	department, err := s.findOwned(ctx, bctx, id)
	if err != nil {
		return nil, err
	}

	normalized := identity.NormalizeDepartmentName(req.Name)
	if existing, err := s.departmentRepo.FindByNormalizedName(ctx, bctx.BusinessID, normalized); err == nil && existing.ID != id {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A department with this name already exists")
	} else if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	if err := department.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := s.departmentRepo.Update(ctx, department); err != nil {
		return nil, err
	}

	return ToDepartmentResponse(department), nil
}

func (s *DepartmentService) Delete(ctx context.Context, bctx BusinessContext, id uuid.UUID) error {
	if !bctx.Role.CanManageMembers() {
		return shared.ErrForbidden
	}

	if _, err := s.findOwned(ctx, bctx, id); err != nil {
		return err
	}
	return s.departmentRepo.Delete(ctx, id)
}

// findOwned maps cross-tenant ids to NOT_FOUND.
func (s *DepartmentService) findOwned(ctx context.Context, bctx BusinessContext, id uuid.UUID) (*identity.Department, error) {
	department, err := s.departmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !department.BelongsTo(bctx.BusinessID) {
		return nil, shared.ErrNotFound
	}
	return department, nil
}
