// handlers/user_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hashemm621/AssetVerse-Server/utils"
	"github.com/hashemm621/AssetVerse-Server/workflow"
)

// Register creates an account. HR accounts start on the default free
// package; employees start unassigned.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var in workflow.RegisterInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := h.Users.Register(ctx, in)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User created successfully",
		"user":    user,
	})
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := h.Users.Get(ctx, email)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

func (h *Handler) GetUserRole(w http.ResponseWriter, r *http.Request) {
	email := mux.Vars(r)["email"]

	ctx, cancel := requestContext(r)
	defer cancel()

	role, err := h.Users.Role(ctx, email)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"role": role})
}
