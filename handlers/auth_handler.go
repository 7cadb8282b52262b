// handlers/auth_handler.go
package handlers

import (
	"net/http"

	"github.com/hashemm621/AssetVerse-Server/utils"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. The token's email claim
// is the principal every protected endpoint acts as.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := utils.ParseJSON(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	user, err := h.Users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	token, err := h.Tokens.Generate(user.Email, user.Name, user.Role)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}
