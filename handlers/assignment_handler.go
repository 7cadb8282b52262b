// handlers/assignment_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hashemm621/AssetVerse-Server/middleware"
	"github.com/hashemm621/AssetVerse-Server/models"
	"github.com/hashemm621/AssetVerse-Server/utils"
)

type assignAssetRequest struct {
	EmployeeEmail string `json:"employeeEmail"`
}

// AssignAsset hands one unit of the asset in the path directly to an
// affiliated employee.
func (h *Handler) AssignAsset(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)
	assetID := mux.Vars(r)["id"]

	var req assignAssetRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	assignment, err := h.Assignments.AssignDirect(ctx, assetID, principal, req.EmployeeEmail)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	h.Hub.SendAssetAssigned(principal, assignment, principal)
	utils.RespondWithJSON(w, http.StatusOK, assignment)
}

// ReturnAsset moves the caller's assignment to returned and restores one
// unit of stock.
func (h *Handler) ReturnAsset(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)
	assignmentID := mux.Vars(r)["id"]

	ctx, cancel := requestContext(r)
	defer cancel()

	assignment, err := h.Assignments.Return(ctx, assignmentID, principal)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	h.Hub.SendAssetReturned(assignment.HREmail, assignment, principal)
	utils.RespondWithJSON(w, http.StatusOK, assignment)
}

// GetAssignedAssets lists assignments: the employee's own, or every
// assignment issued by the HR principal.
func (h *Handler) GetAssignedAssets(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := h.Users.Get(ctx, principal)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	var assignments []models.AssetAssignment
	if user.Role == models.RoleHR {
		assignments, err = h.Assignments.ListForHR(ctx, user.Email)
	} else {
		assignments, err = h.Assignments.ListForEmployee(ctx, user.Email)
	}
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, assignments)
}
