package identity

import (
	"context"
	"errors"

	"github.com/bizhub/backend/internal/domain/identity"
	"github.com/bizhub/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StaffService manages business memberships.
type StaffService struct {
	staffRepo      identity.StaffRepository
	userRepo       identity.UserRepository
	departmentRepo identity.DepartmentRepository
	logger         *zap.Logger
}

func NewStaffService(
	staffRepo identity.StaffRepository,
	userRepo identity.UserRepository,
	departmentRepo identity.DepartmentRepository,
	logger *zap.Logger,
) *StaffService {
	return &StaffService{
		staffRepo:      staffRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

// List returns the roster. Salary is included only for callers who can
// manage payroll.
func (s *StaffService) List(ctx context.Context, bctx BusinessContext) ([]StaffResponse, error) {
	staff, err := s.staffRepo.FindAllByBusiness(ctx, bctx.BusinessID)
	if err != nil {
		return nil, err
	}

	includeSalary := bctx.Role.CanManagePayroll()
	responses := make([]StaffResponse, 0, len(staff))
	for i := range staff {
		responses = append(responses, s.toResponse(ctx, &staff[i], includeSalary))
	}
	return responses, nil
}

// Get returns one staff member, cross-tenant ids resolving to
// NOT_FOUND.
func (s *StaffService) Get(ctx context.Context, bctx BusinessContext, id uuid.UUID) (*StaffResponse, error) {
	staff, err := s.findOwned(ctx, bctx, id)
	if err != nil {
		return nil, err
	}
	resp := s.toResponse(ctx, staff, bctx.Role.CanManagePayroll())
	return &resp, nil
}

// Update patches department assignment, position, and salary.
func (s *StaffService) Update(ctx context.Context, bctx BusinessContext, id uuid.UUID, req UpdateStaffRequest) (*StaffResponse, error) {
	if !bctx.Role.CanManageMembers() {
		return nil, shared.ErrForbidden
	}

	staff, err := s.findOwned(ctx, bctx, id)
	if err != nil {
		return nil, err
	}

	if req.DepartmentID != nil {
		department, err := s.departmentRepo.FindByID(ctx, *req.DepartmentID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_DEPARTMENT", "Department not found")
			}
			return nil, err
		}
		if !department.BelongsTo(bctx.BusinessID) {
			return nil, shared.NewDomainError("INVALID_DEPARTMENT", "Department not found")
		}
		staff.AssignDepartment(req.DepartmentID)
	}

	if req.Position != nil {
		if err := staff.UpdatePosition(*req.Position); err != nil {
			return nil, err
		}
	}

	if req.Salary != nil {
		if !bctx.Role.CanManagePayroll() {
			return nil, shared.ErrForbidden
		}
		if err := staff.UpdateSalary(*req.Salary); err != nil {
			return nil, err
		}
	}

	if err := s.staffRepo.Update(ctx, staff); err != nil {
		return nil, err
	}

	resp := s.toResponse(ctx, staff, bctx.Role.CanManagePayroll())
	return &resp, nil
}

// Remove soft-deletes the membership. Existing payroll items keep
// referencing the staff id.
func (s *StaffService) Remove(ctx context.Context, bctx BusinessContext, id uuid.UUID) error {
	if !bctx.Role.CanManageMembers() {
		return shared.ErrForbidden
	}

	staff, err := s.findOwned(ctx, bctx, id)
	if err != nil {
		return err
	}
	if bctx.StaffID != nil && *bctx.StaffID == staff.ID {
		return shared.NewDomainError("CANNOT_REMOVE_SELF", "You cannot remove your own membership")
	}

	if err := s.staffRepo.Delete(ctx, staff.ID); err != nil {
		return err
	}

	s.logger.Info("Staff removed",
		zap.String("staff_id", staff.ID.String()),
		zap.String("business_id", bctx.BusinessID.String()),
	)
	return nil
}

func (s *StaffService) findOwned(ctx context.Context, bctx BusinessContext, id uuid.UUID) (*identity.Staff, error) {
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !staff.BelongsTo(bctx.BusinessID) {
		return nil, shared.ErrNotFound
	}
	return staff, nil
}

func (s *StaffService) toResponse(ctx context.Context, staff *identity.Staff, includeSalary bool) StaffResponse {
	resp := StaffResponse{
		ID:           staff.ID,
		UserID:       staff.UserID,
		DepartmentID: staff.DepartmentID,
		Position:     staff.Position,
		CreatedAt:    staff.CreatedAt,
	}
	if includeSalary {
		salary := staff.Salary
		resp.Salary = &salary
	}

	// Best effort profile join; a missing user leaves the fields blank.
	if user, err := s.userRepo.FindByIDAny(ctx, staff.UserID); err == nil {
		resp.FullName = user.FullName
		resp.Email = user.Email
	}
	return resp
}
