// handlers/affiliation_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/middleware"
	"github.com/hashemm621/AssetVerse-Server/utils"
)

type createAffiliationRequest struct {
	EmployeeEmail string `json:"employeeEmail"`
}

// CreateAffiliation adds a registered employee to the acting HR
// principal's team, gated by the package employee ceiling.
func (h *Handler) CreateAffiliation(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)

	var req createAffiliationRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	limit, err := h.Packages.CheckEmployeeLimit(ctx, principal)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	if !limit.WithinLimit {
		utils.RespondError(w, r, apperr.Newf(apperr.LimitExceeded,
			"employee limit reached (%d of %d), upgrade your package", limit.Current, limit.Limit))
		return
	}

	aff, err := h.Affiliations.Affiliate(ctx, principal, req.EmployeeEmail)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, aff)
}

// GetHRTeam lists the HR principal's active team with per-member
// assignment counts.
func (h *Handler) GetHRTeam(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)

	ctx, cancel := requestContext(r)
	defer cancel()

	members, err := h.Affiliations.ListActiveForHR(ctx, principal)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, members)
}

// GetEmployeeTeam lists the companies the employee principal is actively
// affiliated with.
func (h *Handler) GetEmployeeTeam(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)

	ctx, cancel := requestContext(r)
	defer cancel()

	affs, err := h.Affiliations.ListActiveForEmployee(ctx, principal)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, affs)
}

// RemoveAffiliation deactivates the active affiliation with the employee
// in the path. History is preserved; the row is never deleted.
func (h *Handler) RemoveAffiliation(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)
	employeeEmail := mux.Vars(r)["employeeEmail"]

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := h.Affiliations.Deactivate(ctx, principal, employeeEmail); err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "employee removed from team"})
}
