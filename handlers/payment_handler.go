// handlers/payment_handler.go
package handlers

import (
	"net/http"

	"github.com/hashemm621/AssetVerse-Server/middleware"
	"github.com/hashemm621/AssetVerse-Server/models"
	"github.com/hashemm621/AssetVerse-Server/utils"
	"github.com/hashemm621/AssetVerse-Server/workflow"
)

// GetPackages lists the purchasable subscription tiers.
func (h *Handler) GetPackages(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()

	plans, err := h.Packages.ListPlans(ctx)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, plans)
}

type checkoutRequest struct {
	PackageName string `json:"packageName"`
}

// CreateCheckoutSession resolves the plan against the catalog and asks
// the payment collaborator for a redirect target. Price and limit come
// from the catalog, never the client.
func (h *Handler) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	plan, err := h.Packages.GetPlan(ctx, req.PackageName)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	session, err := h.Checkout.CreateSession(plan.Name, plan.Price, plan.EmployeesLimit)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, session)
}

// RecordPayment confirms a completed checkout. Idempotent on trackingId:
// a retried confirmation answers 200 without recording twice.
func (h *Handler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)

	var in workflow.RecordPaymentInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	hr, err := h.Users.Get(ctx, principal)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	if hr.Role != models.RoleHR {
		utils.RespondWithError(w, http.StatusForbidden, "only hr accounts purchase packages")
		return
	}

	payment, created, err := h.Packages.RecordPayment(ctx, hr.Email, in)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	status := http.StatusOK
	message := "payment already recorded"
	if created {
		status = http.StatusCreated
		message = "payment recorded successfully"
	}
	utils.RespondWithJSON(w, status, map[string]interface{}{
		"message": message,
		"payment": payment,
	})
}

func (h *Handler) PaymentHistory(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)

	ctx, cancel := requestContext(r)
	defer cancel()

	history, err := h.Packages.PaymentHistory(ctx, principal)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, history)
}

// DowngradeToFree reverts the HR principal to the free tier, demoting
// the newest affiliations beyond the free ceiling.
func (h *Handler) DowngradeToFree(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)

	ctx, cancel := requestContext(r)
	defer cancel()

	demoted, err := h.Packages.DowngradeToFree(ctx, principal)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"message": "downgraded to free package",
		"demoted": demoted,
	})
}
