// handlers/asset_handler.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/hashemm621/AssetVerse-Server/middleware"
	"github.com/hashemm621/AssetVerse-Server/models"
	"github.com/hashemm621/AssetVerse-Server/utils"
	"github.com/hashemm621/AssetVerse-Server/workflow"
)

// CreateAsset adds an asset to the acting HR principal's inventory. The
// owner and company come from the verified identity, never the payload.
func (h *Handler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)

	var in workflow.CreateAssetInput
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
		utils.RespondWithError(w, http.StatusForbidden, "only hr accounts can create assets")
		return
	}

	asset, err := h.Inventory.CreateAsset(ctx, hr.Email, hr.CompanyName, in)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, asset)
}

// ListAssets returns the principal's inventory. HR sees their own
// assets; an employee sees the inventories of the companies they are
// affiliated with.
func (h *Handler) ListAssets(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := h.Users.Get(ctx, principal)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	query := r.URL.Query()
	filter := workflow.AssetFilter{Search: query.Get("search")}
	if limit, err := strconv.ParseInt(query.Get("limit"), 10, 64); err == nil {
		filter.Limit = limit
	}
	if skip, err := strconv.ParseInt(query.Get("skip"), 10, 64); err == nil {
		filter.Skip = skip
	}

	if user.Role == models.RoleHR {
		filter.HREmail = user.Email
		assets, err := h.Inventory.ListAssets(ctx, filter)
		if err != nil {
			utils.RespondError(w, r, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, assets)
		return
	}

	affs, err := h.Affiliations.ListActiveForEmployee(ctx, user.Email)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	assets := []models.Asset{}
	for _, aff := range affs {
		filter.HREmail = aff.HREmail
		batch, err := h.Inventory.ListAssets(ctx, filter)
		if err != nil {
			utils.RespondError(w, r, err)
			return
		}
		assets = append(assets, batch...)
	}
	utils.RespondWithJSON(w, http.StatusOK, assets)
}

type updateAssetRequest struct {
	ProductName       string `json:"productName,omitempty"`
	ProductImage      string `json:"productImage,omitempty"`
	ProductType       string `json:"productType,omitempty"`
	AvailableQuantity *int   `json:"availableQuantity,omitempty"`
}

func (h *Handler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)
	assetID := mux.Vars(r)["id"]

	var req updateAssetRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	patch := workflow.AssetPatch{
		ProductName:       req.ProductName,
		ProductImage:      req.ProductImage,
		ProductType:       req.ProductType,
		AvailableQuantity: req.AvailableQuantity,
	}
	if err := h.Inventory.UpdateAsset(ctx, assetID, principal, patch); err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "asset updated successfully"})
}

func (h *Handler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)
	assetID := mux.Vars(r)["id"]

	ctx, cancel := requestContext(r)
	defer cancel()

	if err := h.Inventory.DeleteAsset(ctx, assetID, principal); err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "asset deleted successfully"})
}
