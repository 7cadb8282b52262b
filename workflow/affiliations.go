// workflow/affiliations.go
package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
)

// Affiliations maintains the time-versioned HR/employee relationship.
// At most one active row may exist per (hrEmail, employeeEmail) pair.
type Affiliations struct {
	store       AffiliationStore
	users       UserStore
	assignments AssignmentStore
}

func NewAffiliations(store AffiliationStore, users UserStore, assignments AssignmentStore) *Affiliations {
	return &Affiliations{store: store, users: users, assignments: assignments}
}

// Affiliate creates an active affiliation between the acting HR principal
// and a registered employee. Fails with Conflict when an active row for
// the pair already exists.
func (s *Affiliations) Affiliate(ctx context.Context, hrEmail, employeeEmail string) (*models.Affiliation, error) {
	employeeEmail = strings.ToLower(strings.TrimSpace(employeeEmail))
	if hrEmail == "" || employeeEmail == "" {
		return nil, apperr.New(apperr.Validation, "hr and employee emails are required")
	}
	if hrEmail == employeeEmail {
		return nil, apperr.New(apperr.Validation, "cannot affiliate an account with itself")
	}

	hr, err := s.users.FindByEmail(ctx, hrEmail)
	if err != nil {
		return nil, err
	}
	if hr.Role != models.RoleHR {
		return nil, apperr.New(apperr.Forbidden, "only hr accounts can affiliate employees")
	}

	employee, err := s.users.FindByEmail(ctx, employeeEmail)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.New(apperr.NotFound, "employee is not registered")
		}
		return nil, err
	}
	if employee.Role != models.RoleEmployee {
		return nil, apperr.New(apperr.Validation, "target account is not an employee")
	}

	if _, err := s.store.FindActive(ctx, hrEmail, employeeEmail); err == nil {
		return nil, apperr.New(apperr.Conflict, "employee is already affiliated")
	} else if !apperr.Is(err, apperr.NotFound) {
		return nil, err
	}

	aff := &models.Affiliation{
		HREmail:         hrEmail,
		EmployeeEmail:   employeeEmail,
		EmployeeName:    employee.Name,
		CompanyName:     hr.CompanyName,
		CompanyLogo:     hr.CompanyLogo,
		AffiliationDate: time.Now().UTC(),
		Status:          models.AffiliationStatusActive,
	}
	if err := s.store.Insert(ctx, aff); err != nil {
		// The partial unique index turns the check-then-insert race into
		// a duplicate-key error here.
		if apperr.Is(err, apperr.Conflict) {
			return nil, apperr.New(apperr.Conflict, "employee is already affiliated")
		}
		return nil, err
	}

	if err := s.users.SetEmployeeCompany(ctx, employeeEmail, hr.CompanyID, hr.CompanyName, models.EmployeeStatusAffiliated); err != nil {
		return nil, err
	}
	return aff, nil
}

// EnsureAffiliated is the idempotent variant used by request approval: an
// existing active affiliation is success, not a conflict.
func (s *Affiliations) EnsureAffiliated(ctx context.Context, hrEmail, employeeEmail string) error {
	affiliated, err := s.IsAffiliated(ctx, hrEmail, employeeEmail)
	if err != nil {
		return err
	}
	if affiliated {
		return nil
	}
	_, err = s.Affiliate(ctx, hrEmail, employeeEmail)
	if apperr.Is(err, apperr.Conflict) {
		return nil
	}
	return err
}

func (s *Affiliations) IsAffiliated(ctx context.Context, hrEmail, employeeEmail string) (bool, error) {
	_, err := s.store.FindActive(ctx, hrEmail, employeeEmail)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Deactivate soft-deletes the active row for the pair and reverts the
// employee account to unassigned. Fails with NotFound when no active
// affiliation exists.
func (s *Affiliations) Deactivate(ctx context.Context, hrEmail, employeeEmail string) error {
	employeeEmail = strings.ToLower(strings.TrimSpace(employeeEmail))
	if hrEmail == "" || employeeEmail == "" {
		return apperr.New(apperr.Validation, "hr and employee emails are required")
	}
	matched, err := s.store.Deactivate(ctx, hrEmail, employeeEmail)
	if err != nil {
		return err
	}
	if !matched {
		return apperr.New(apperr.NotFound, "no active affiliation for this employee")
	}
	return s.users.SetEmployeeCompany(ctx, employeeEmail, "", "", models.EmployeeStatusUnassigned)
}

// TeamMember is the HR-facing read model: the affiliation joined with how
// many assets the employee currently holds from this HR.
type TeamMember struct {
	models.Affiliation
	AssignedAssets int64 `json:"assignedAssets"`
}

// ListActiveForHR reads the current team. Counts are read-consistent at
// call time only; no snapshot isolation across members.
func (s *Affiliations) ListActiveForHR(ctx context.Context, hrEmail string) ([]TeamMember, error) {
	affs, err := s.store.ListActiveByHR(ctx, hrEmail)
	if err != nil {
		return nil, err
	}
	members := make([]TeamMember, 0, len(affs))
	for _, aff := range affs {
		count, err := s.assignments.CountAssigned(ctx, hrEmail, aff.EmployeeEmail)
		if err != nil {
			return nil, err
		}
		members = append(members, TeamMember{Affiliation: aff, AssignedAssets: count})
	}
	return members, nil
}

func (s *Affiliations) ListActiveForEmployee(ctx context.Context, employeeEmail string) ([]models.Affiliation, error) {
	return s.store.ListActiveByEmployee(ctx, employeeEmail)
}
