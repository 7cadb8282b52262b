// workflow/packages.go
package workflow

import (
	"context"
	"strings"
	"time"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
)

// DefaultFreePackage is the tier every HR account starts on and falls
// back to on downgrade. ActivatedAt is stamped at apply time.
var DefaultFreePackage = models.Package{
	Name:           "Default Free Package",
	EmployeesLimit: 5,
	Price:          0,
}

// Packages enforces the employee ceiling tied to an HR account's
// subscription and records package purchases.
type Packages struct {
	users        UserStore
	affiliations AffiliationStore
	payments     PaymentStore
	plans        PlanStore
}

func NewPackages(users UserStore, affiliations AffiliationStore, payments PaymentStore, plans PlanStore) *Packages {
	return &Packages{users: users, affiliations: affiliations, payments: payments, plans: plans}
}

type LimitStatus struct {
	WithinLimit bool  `json:"withinLimit"`
	Current     int64 `json:"current"`
	Limit       int   `json:"limit"`
}

// CheckEmployeeLimit compares the HR account's current active-employee
// count with its package ceiling. A pure gate: it never mutates anything.
func (s *Packages) CheckEmployeeLimit(ctx context.Context, hrEmail string) (LimitStatus, error) {
	hr, err := s.users.FindByEmail(ctx, hrEmail)
	if err != nil {
		return LimitStatus{}, err
	}
	if hr.Role != models.RoleHR {
		return LimitStatus{}, apperr.New(apperr.Forbidden, "account has no subscription package")
	}

	limit := 0
	if hr.Package != nil {
		limit = hr.Package.EmployeesLimit
	}
	current, err := s.affiliations.CountActiveByHR(ctx, hrEmail)
	if err != nil {
		return LimitStatus{}, err
	}
	return LimitStatus{WithinLimit: current < int64(limit), Current: current, Limit: limit}, nil
}

// ApplyPackage overwrites the HR account's package with a fresh
// activatedAt.
func (s *Packages) ApplyPackage(ctx context.Context, hrEmail, name string, employeesLimit int, price float64) error {
	return s.users.SetPackage(ctx, hrEmail, models.Package{
		Name:           name,
		EmployeesLimit: employeesLimit,
		Price:          price,
		ActivatedAt:    time.Now().UTC(),
	})
}

// DowngradeToFree puts the HR account back on the free tier and demotes
// the team down to the free ceiling. Survivors are chosen by seniority:
// active affiliations ordered by affiliationDate ascending, earliest
// kept, everything past the ceiling deactivated. Returns how many
// affiliations were deactivated.
func (s *Packages) DowngradeToFree(ctx context.Context, hrEmail string) (int, error) {
	hr, err := s.users.FindByEmail(ctx, hrEmail)
	if err != nil {
		return 0, err
	}
	if hr.Role != models.RoleHR {
		return 0, apperr.New(apperr.Forbidden, "only hr accounts hold packages")
	}

	free := DefaultFreePackage
	if err := s.ApplyPackage(ctx, hrEmail, free.Name, free.EmployeesLimit, free.Price); err != nil {
		return 0, err
	}

	active, err := s.affiliations.ListActiveByHR(ctx, hrEmail)
	if err != nil {
		return 0, err
	}
	demoted := 0
	for i := free.EmployeesLimit; i < len(active); i++ {
		if err := s.affiliations.DeactivateByID(ctx, active[i].ID); err != nil {
			return demoted, err
		}
		if err := s.users.SetEmployeeCompany(ctx, active[i].EmployeeEmail, "", "", models.EmployeeStatusUnassigned); err != nil {
			return demoted, err
		}
		demoted++
	}
	return demoted, nil
}

type RecordPaymentInput struct {
	TrackingID    string  `json:"trackingId"`
	TransactionID string  `json:"transactionId"`
	PackageName   string  `json:"packageName"`
	EmployeeLimit int     `json:"employeeLimit"`
	Amount        float64 `json:"amount"`
}

// RecordPayment is idempotent on trackingId: a retried confirmation
// returns the existing row without inserting again or reapplying the
// package. The bool reports whether a new payment was recorded.
func (s *Packages) RecordPayment(ctx context.Context, hrEmail string, in RecordPaymentInput) (*models.Payment, bool, error) {
	in.TrackingID = strings.TrimSpace(in.TrackingID)
	if in.TrackingID == "" || in.PackageName == "" {
		return nil, false, apperr.New(apperr.Validation, "trackingId and packageName are required")
	}
	if in.EmployeeLimit <= 0 || in.Amount < 0 {
		return nil, false, apperr.New(apperr.Validation, "invalid package limit or amount")
	}

	if existing, err := s.payments.FindByTrackingID(ctx, in.TrackingID); err == nil {
		return existing, false, nil
	} else if !apperr.Is(err, apperr.NotFound) {
		return nil, false, err
	}

	payment := &models.Payment{
		HREmail:       hrEmail,
		PackageName:   in.PackageName,
		EmployeeLimit: in.EmployeeLimit,
		Amount:        in.Amount,
		TrackingID:    in.TrackingID,
		TransactionID: in.TransactionID,
		PaymentDate:   time.Now().UTC(),
		Status:        "paid",
	}
	if err := s.payments.Insert(ctx, payment); err != nil {
		if apperr.Is(err, apperr.Conflict) {
			// Raced with a duplicate confirmation; the unique index on
			// trackingId makes the other insert authoritative.
			existing, ferr := s.payments.FindByTrackingID(ctx, in.TrackingID)
			if ferr != nil {
				return nil, false, ferr
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	if err := s.ApplyPackage(ctx, hrEmail, in.PackageName, in.EmployeeLimit, in.Amount); err != nil {
		return payment, true, err
	}
	return payment, true, nil
}

func (s *Packages) ListPlans(ctx context.Context) ([]models.PackagePlan, error) {
	return s.plans.List(ctx)
}

// GetPlan resolves a catalog tier by name, so checkout amounts come from
// the catalog and never from the client.
func (s *Packages) GetPlan(ctx context.Context, name string) (*models.PackagePlan, error) {
	if name == "" {
		return nil, apperr.New(apperr.Validation, "packageName is required")
	}
	return s.plans.FindByName(ctx, name)
}

func (s *Packages) PaymentHistory(ctx context.Context, hrEmail string) ([]models.Payment, error) {
	return s.payments.ListByHR(ctx, hrEmail)
}
