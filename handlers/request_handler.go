// handlers/request_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hashemm621/AssetVerse-Server/middleware"
	"github.com/hashemm621/AssetVerse-Server/utils"
	"github.com/hashemm621/AssetVerse-Server/workflow"
)

// SubmitRequest files a pending asset request on behalf of the
// authenticated employee.
func (h *Handler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)

	var in workflow.SubmitRequestInput
	if err := utils.ParseJSON(r, &in); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	requester, err := h.Users.Get(ctx, principal)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	request, err := h.Requests.Submit(ctx, requester.Email, requester.Name, in)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	h.Hub.SendRequestSubmitted(request.HREmail, request, principal)
	utils.RespondWithJSON(w, http.StatusCreated, request)
}

// ListHRRequests lists requests submitted to the HR principal, with an
// optional status filter.
func (h *Handler) ListHRRequests(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)

	ctx, cancel := requestContext(r)
	defer cancel()

	requests, err := h.Requests.ListForHR(ctx, principal, r.URL.Query().Get("status"))
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, requests)
}

func (h *Handler) ListMyRequests(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)

	ctx, cancel := requestContext(r)
	defer cancel()

	requests, err := h.Requests.ListForRequester(ctx, principal)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, requests)
}

type processRequestBody struct {
	Action string `json:"action"` // "approved" or "rejected"
}

// ProcessRequest resolves a pending request. Only the HR principal the
// request was submitted to may process it.
func (h *Handler) ProcessRequest(w http.ResponseWriter, r *http.Request) {
	principal := middleware.PrincipalEmail(r)
	requestID := mux.Vars(r)["id"]

	var body processRequestBody
	if err := utils.ParseJSON(r, &body); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()

	request, err := h.Requests.Process(ctx, requestID, body.Action, principal)
	if err != nil {
		utils.RespondError(w, r, err)
		return
	}

	h.Hub.SendRequestProcessed(request.HREmail, request, principal)
	utils.RespondWithJSON(w, http.StatusOK, request)
}
