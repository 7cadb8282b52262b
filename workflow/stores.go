// Package workflow holds the asset lifecycle and request/approval engine.
// Services in this package own every invariant; handlers stay thin and
// stores stay dumb. The store interfaces below are defined here, on the
// consumer side, and implemented by the store package against MongoDB
// and by in-memory fakes in tests.
package workflow

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
)

// ParseID validates a client-supplied identifier before any lookup, so a
// malformed id is a 400 and never a 404.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, apperr.New(apperr.Validation, "invalid id format")
	}
	return id, nil
}

type UserStore interface {
	// Insert fails with Conflict when the email is already registered.
	Insert(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetPackage(ctx context.Context, email string, pkg models.Package) error
	// SetEmployeeCompany updates an employee's companyId/companyName and
	// affiliation status fields.
	SetEmployeeCompany(ctx context.Context, email, companyID, companyName, status string) error
}

type AssetFilter struct {
	HREmail string
	Search  string // case-insensitive substring on productName
	Limit   int64
	Skip    int64
}

type AssetPatch struct {
	ProductName       string
	ProductImage      string
	ProductType       string
	AvailableQuantity *int
}

type AssetStore interface {
	Insert(ctx context.Context, a *models.Asset) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error)
	List(ctx context.Context, f AssetFilter) ([]models.Asset, error)
	// Update and Delete fail with NotFound when the id does not resolve
	// to an asset owned by hrEmail.
	Update(ctx context.Context, id primitive.ObjectID, hrEmail string, patch AssetPatch) error
	Delete(ctx context.Context, id primitive.ObjectID, hrEmail string) error
	// DecrementAvailable atomically checks availableQuantity >= 1 on the
	// asset owned by hrEmail and decrements it, in one conditional
	// update. Fails with Unavailable when no stock or not owned.
	DecrementAvailable(ctx context.Context, id primitive.ObjectID, hrEmail string) error
	IncrementAvailable(ctx context.Context, id primitive.ObjectID) error
}

type AssignmentStore interface {
	Insert(ctx context.Context, a *models.AssetAssignment) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AssetAssignment, error)
	// MarkReturned transitions assigned -> returned as a compare-and-set:
	// the update matches only while status is still "assigned". Returns
	// false when another caller won the race or the record was already
	// returned.
	MarkReturned(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error)
	ListByEmployee(ctx context.Context, employeeEmail string) ([]models.AssetAssignment, error)
	ListByHR(ctx context.Context, hrEmail string) ([]models.AssetAssignment, error)
	CountAssigned(ctx context.Context, hrEmail, employeeEmail string) (int64, error)
}

type AffiliationStore interface {
	// Insert fails with Conflict when an active row for the pair already
	// exists (backed by a partial unique index, closing the
	// check-then-insert race).
	Insert(ctx context.Context, a *models.Affiliation) error
	FindActive(ctx context.Context, hrEmail, employeeEmail string) (*models.Affiliation, error)
	// Deactivate flips the active row for the pair to inactive. Returns
	// false when no active row exists.
	Deactivate(ctx context.Context, hrEmail, employeeEmail string) (bool, error)
	DeactivateByID(ctx context.Context, id primitive.ObjectID) error
	// ListActiveByHR returns rows sorted by affiliationDate ascending.
	ListActiveByHR(ctx context.Context, hrEmail string) ([]models.Affiliation, error)
	ListActiveByEmployee(ctx context.Context, employeeEmail string) ([]models.Affiliation, error)
	CountActiveByHR(ctx context.Context, hrEmail string) (int64, error)
}

type RequestStore interface {
	Insert(ctx context.Context, r *models.AssetRequest) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.AssetRequest, error)
	// MarkProcessed transitions pending -> approved|rejected as a
	// compare-and-set conditioned on the status still being pending.
	// Returns false when the request was already processed.
	MarkProcessed(ctx context.Context, id primitive.ObjectID, status, processedBy string, at time.Time) (bool, error)
	// Reopen reverts approved -> pending, clearing approvalDate and
	// processedBy. Compensation path only.
	Reopen(ctx context.Context, id primitive.ObjectID) error
	ListByHR(ctx context.Context, hrEmail, status string) ([]models.AssetRequest, error)
	ListByRequester(ctx context.Context, requesterEmail string) ([]models.AssetRequest, error)
}

type PaymentStore interface {
	// Insert fails with Conflict when the trackingId already exists.
	Insert(ctx context.Context, p *models.Payment) error
	FindByTrackingID(ctx context.Context, trackingID string) (*models.Payment, error)
	ListByHR(ctx context.Context, hrEmail string) ([]models.Payment, error)
}

type PlanStore interface {
	List(ctx context.Context) ([]models.PackagePlan, error)
	FindByName(ctx context.Context, name string) (*models.PackagePlan, error)
}
