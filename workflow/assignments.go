// workflow/assignments.go
package workflow

import (
	"context"
	"log"
	"time"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
)

// Assignments drives an assignment record through assigned -> returned.
// Non-returnable assets never leave "assigned".
type Assignments struct {
	assignments  AssignmentStore
	inventory    *Inventory
	affiliations *Affiliations
}

func NewAssignments(assignments AssignmentStore, inventory *Inventory, affiliations *Affiliations) *Assignments {
	return &Assignments{assignments: assignments, inventory: inventory, affiliations: affiliations}
}

// AssignDirect hands one unit of an asset to an affiliated employee.
// The caller must hold an active affiliation with the employee and own
// the asset with stock remaining.
func (s *Assignments) AssignDirect(ctx context.Context, assetIDHex, hrEmail, employeeEmail string) (*models.AssetAssignment, error) {
	if assetIDHex == "" || hrEmail == "" || employeeEmail == "" {
		return nil, apperr.New(apperr.Validation, "asset id and employee email are required")
	}
	assetID, err := ParseID(assetIDHex)
	if err != nil {
		return nil, err
	}

	aff, err := s.affiliations.store.FindActive(ctx, hrEmail, employeeEmail)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.New(apperr.Forbidden, "employee is not affiliated with your company")
		}
		return nil, err
	}

	asset, err := s.inventory.assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}

	// Conditional decrement covers both ownership and the quantity >= 1
	// check; a concurrent assignment for the last unit loses here.
	if err := s.inventory.Decrement(ctx, assetID, hrEmail); err != nil {
		return nil, err
	}

	assignment := &models.AssetAssignment{
		AssetID:        assetID,
		AssetName:      asset.ProductName,
		AssetType:      asset.ProductType,
		EmployeeEmail:  employeeEmail,
		EmployeeName:   aff.EmployeeName,
		HREmail:        hrEmail,
		CompanyName:    asset.CompanyName,
		AssignmentDate: time.Now().UTC(),
		Status:         models.AssignmentStatusAssigned,
	}
	if err := s.assignments.Insert(ctx, assignment); err != nil {
		// Give the unit back so a failed insert cannot leak stock.
		if incErr := s.inventory.Increment(ctx, assetID); incErr != nil {
			log.Printf("assign compensation failed for asset %s: %v", assetID.Hex(), incErr)
		}
		return nil, err
	}
	return assignment, nil
}

// Return moves an assignment to its terminal state and restores one unit
// of inventory. Only the employee holding the asset may return it.
func (s *Assignments) Return(ctx context.Context, assignmentIDHex, employeeEmail string) (*models.AssetAssignment, error) {
	id, err := ParseID(assignmentIDHex)
	if err != nil {
		return nil, err
	}

	assignment, err := s.assignments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment.EmployeeEmail != employeeEmail {
		return nil, apperr.New(apperr.Forbidden, "assignment does not belong to you")
	}
	if assignment.AssetType == models.AssetTypeNonReturnable {
		return nil, apperr.New(apperr.Forbidden, "non-returnable assets cannot be returned")
	}
	if assignment.Status != models.AssignmentStatusAssigned {
		return nil, apperr.New(apperr.Conflict, "asset already returned")
	}

	now := time.Now().UTC()
	matched, err := s.assignments.MarkReturned(ctx, id, now)
	if err != nil {
		return nil, err
	}
	if !matched {
		// Lost the race against a concurrent return.
		return nil, apperr.New(apperr.Conflict, "asset already returned")
	}

	if err := s.inventory.Increment(ctx, assignment.AssetID); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "return recorded but restock failed", err)
	}

	assignment.Status = models.AssignmentStatusReturned
	assignment.ReturnDate = &now
	return assignment, nil
}

func (s *Assignments) ListForEmployee(ctx context.Context, employeeEmail string) ([]models.AssetAssignment, error) {
	return s.assignments.ListByEmployee(ctx, employeeEmail)
}

func (s *Assignments) ListForHR(ctx context.Context, hrEmail string) ([]models.AssetAssignment, error) {
	return s.assignments.ListByHR(ctx, hrEmail)
}
