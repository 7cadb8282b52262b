// workflow/requests.go
package workflow

import (
	"context"
	"log"
	"time"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
)

// Requests drives asset requests through pending -> approved | rejected
// and orchestrates the side effects of an approval: inventory deduction,
// assignment creation and affiliation auto-creation.
type Requests struct {
	requests     RequestStore
	assets       AssetStore
	assignments  AssignmentStore
	users        UserStore
	affiliations *Affiliations
	packages     *Packages
}

func NewRequests(requests RequestStore, assets AssetStore, assignments AssignmentStore, users UserStore, affiliations *Affiliations, packages *Packages) *Requests {
	return &Requests{
		requests:     requests,
		assets:       assets,
		assignments:  assignments,
		users:        users,
		affiliations: affiliations,
		packages:     packages,
	}
}

type SubmitRequestInput struct {
	AssetID string `json:"assetId"`
	Note    string `json:"note"`
}

// Submit files a pending request for an asset on behalf of the
// authenticated requester. The target HR principal is the asset's owner.
func (s *Requests) Submit(ctx context.Context, requesterEmail, requesterName string, in SubmitRequestInput) (*models.AssetRequest, error) {
	if in.AssetID == "" || requesterEmail == "" {
		return nil, apperr.New(apperr.Validation, "assetId and requester email are required")
	}
	assetID, err := ParseID(in.AssetID)
	if err != nil {
		return nil, err
	}

	// Only employee accounts may request assets. Checking here keeps the
	// approval side effects (assignment, auto-affiliation) well-defined:
	// every approvable request has an affiliatable requester.
	requester, err := s.users.FindByEmail(ctx, requesterEmail)
	if err != nil {
		return nil, err
	}
	if requester.Role != models.RoleEmployee {
		return nil, apperr.New(apperr.Forbidden, "only employee accounts can request assets")
	}

	asset, err := s.assets.FindByID(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if asset.HREmail == "" {
		return nil, apperr.New(apperr.Validation, "asset has no owning hr account")
	}

	request := &models.AssetRequest{
		AssetID:        assetID,
		AssetName:      asset.ProductName,
		AssetType:      asset.ProductType,
		RequesterName:  requesterName,
		RequesterEmail: requesterEmail,
		HREmail:        asset.HREmail,
		CompanyName:    asset.CompanyName,
		RequestDate:    time.Now().UTC(),
		RequestStatus:  models.RequestStatusPending,
		Note:           in.Note,
	}
	if err := s.requests.Insert(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// Process resolves a pending request. action is "approved" or
// "rejected"; both outcomes are terminal. Only the HR principal the
// request was submitted to may process it, for rejection as much as for
// approval.
//
// Approval order is deliberate: the limit check runs before any mutation
// so a denied approval leaves no partial state and the request stays
// pending, retryable after an upgrade. The status transition is a
// compare-and-set so concurrent approvers cannot both win. Affiliation
// auto-creation runs last because it is additive and idempotent.
func (s *Requests) Process(ctx context.Context, requestIDHex, action, processingHrEmail string) (*models.AssetRequest, error) {
	if action != models.RequestStatusApproved && action != models.RequestStatusRejected {
		return nil, apperr.New(apperr.Validation, "action must be approved or rejected")
	}
	id, err := ParseID(requestIDHex)
	if err != nil {
		return nil, err
	}

	request, err := s.requests.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if request.HREmail != processingHrEmail {
		return nil, apperr.New(apperr.Forbidden, "request was not submitted to your company")
	}
	if request.RequestStatus != models.RequestStatusPending {
		return nil, apperr.New(apperr.Conflict, "request already processed")
	}

	now := time.Now().UTC()

	if action == models.RequestStatusRejected {
		matched, err := s.requests.MarkProcessed(ctx, id, models.RequestStatusRejected, processingHrEmail, now)
		if err != nil {
			return nil, err
		}
		if !matched {
			return nil, apperr.New(apperr.Conflict, "request already processed")
		}
		request.RequestStatus = models.RequestStatusRejected
		request.ApprovalDate = &now
		request.ProcessedBy = processingHrEmail
		return request, nil
	}

	// Gate before any mutation: at or over the package ceiling the
	// request must stay pending so it can be retried after an upgrade.
	limit, err := s.packages.CheckEmployeeLimit(ctx, processingHrEmail)
	if err != nil {
		return nil, err
	}
	if !limit.WithinLimit {
		return nil, apperr.Newf(apperr.LimitExceeded,
			"employee limit reached (%d of %d), upgrade your package", limit.Current, limit.Limit)
	}

	matched, err := s.requests.MarkProcessed(ctx, id, models.RequestStatusApproved, processingHrEmail, now)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, apperr.New(apperr.Conflict, "request already processed")
	}

	if err := s.assets.DecrementAvailable(ctx, request.AssetID, processingHrEmail); err != nil {
		// Stock ran out between the read and the decrement. Reopen the
		// request so the approval can be retried once stock exists.
		if roErr := s.requests.Reopen(ctx, id); roErr != nil {
			log.Printf("failed to reopen request %s after decrement failure: %v", id.Hex(), roErr)
		}
		return nil, err
	}

	assignment := &models.AssetAssignment{
		AssetID:        request.AssetID,
		AssetName:      request.AssetName,
		AssetType:      request.AssetType,
		EmployeeEmail:  request.RequesterEmail,
		EmployeeName:   request.RequesterName,
		HREmail:        processingHrEmail,
		CompanyName:    request.CompanyName,
		AssignmentDate: now,
		Status:         models.AssignmentStatusAssigned,
	}
	if err := s.assignments.Insert(ctx, assignment); err != nil {
		if incErr := s.assets.IncrementAvailable(ctx, request.AssetID); incErr != nil {
			log.Printf("approval compensation failed for asset %s: %v", request.AssetID.Hex(), incErr)
		}
		if roErr := s.requests.Reopen(ctx, id); roErr != nil {
			log.Printf("failed to reopen request %s after assignment failure: %v", id.Hex(), roErr)
		}
		return nil, err
	}

	if err := s.affiliations.EnsureAffiliated(ctx, processingHrEmail, request.RequesterEmail); err != nil {
		return nil, err
	}

	request.RequestStatus = models.RequestStatusApproved
	request.ApprovalDate = &now
	request.ProcessedBy = processingHrEmail
	return request, nil
}

func (s *Requests) ListForHR(ctx context.Context, hrEmail, status string) ([]models.AssetRequest, error) {
	if status != "" && status != models.RequestStatusPending &&
		status != models.RequestStatusApproved && status != models.RequestStatusRejected {
		return nil, apperr.New(apperr.Validation, "unknown request status filter")
	}
	return s.requests.ListByHR(ctx, hrEmail, status)
}

func (s *Requests) ListForRequester(ctx context.Context, requesterEmail string) ([]models.AssetRequest, error) {
	return s.requests.ListByRequester(ctx, requesterEmail)
}
