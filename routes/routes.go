package routes

import (
	"github.com/gorilla/mux"

	"github.com/hashemm621/AssetVerse-Server/handlers"
	"github.com/hashemm621/AssetVerse-Server/middleware"
)

// HTTP method constants for better maintainability
var (
	MethodsGetOnly    = []string{"GET", "OPTIONS"}
	MethodsPostOnly   = []string{"POST", "OPTIONS"}
	MethodsPatchOnly  = []string{"PATCH", "OPTIONS"}
	MethodsDeleteOnly = []string{"DELETE", "OPTIONS"}
)

func RegisterRoutes(r *mux.Router, h *handlers.Handler, verifier middleware.Verifier) {
	// ====================
	// PUBLIC ROUTES
	// ====================
	r.HandleFunc("/health", h.HealthCheck).Methods(MethodsGetOnly...)
	r.HandleFunc("/users", h.Register).Methods(MethodsPostOnly...)
	r.HandleFunc("/auth/login", h.Login).Methods(MethodsPostOnly...)
	r.HandleFunc("/packages", h.GetPackages).Methods(MethodsGetOnly...)
	// Checkout only resolves a catalog tier into a redirect URL; like
	// registration it happens before a session exists. Confirmation
	// (POST /payments) stays behind auth.
	r.HandleFunc("/create-checkout-session", h.CreateCheckoutSession).Methods(MethodsPostOnly...)

	// WebSocket activity feed (token passed as query param)
	r.Handle("/ws/activity", h.Hub).Methods("GET")

	// ====================
	// PROTECTED ROUTES (verified principal required)
	// ====================
	protected := r.NewRoute().Subrouter()
	protected.Use(middleware.Auth(verifier))

	// Users
	protected.HandleFunc("/users/{email}", h.GetUser).Methods(MethodsGetOnly...)
	protected.HandleFunc("/users/{email}/role", h.GetUserRole).Methods(MethodsGetOnly...)

	// Assets
	protected.HandleFunc("/assets", h.CreateAsset).Methods(MethodsPostOnly...)
	protected.HandleFunc("/assets", h.ListAssets).Methods(MethodsGetOnly...)
	protected.HandleFunc("/assets/assign/{id}", h.AssignAsset).Methods(MethodsPatchOnly...)
	protected.HandleFunc("/assets/return/{id}", h.ReturnAsset).Methods(MethodsPatchOnly...)
	protected.HandleFunc("/assets/{id}", h.UpdateAsset).Methods(MethodsPatchOnly...)
	protected.HandleFunc("/assets/{id}", h.DeleteAsset).Methods(MethodsDeleteOnly...)
	protected.HandleFunc("/assigned-assets", h.GetAssignedAssets).Methods(MethodsGetOnly...)

	// Affiliations
	protected.HandleFunc("/affiliations", h.CreateAffiliation).Methods(MethodsPostOnly...)
	protected.HandleFunc("/affiliations/hr", h.GetHRTeam).Methods(MethodsGetOnly...)
	protected.HandleFunc("/affiliations/employee-team", h.GetEmployeeTeam).Methods(MethodsGetOnly...)
	protected.HandleFunc("/affiliations/remove/{employeeEmail}", h.RemoveAffiliation).Methods(MethodsPatchOnly...)

	// Requests
	protected.HandleFunc("/requests", h.SubmitRequest).Methods(MethodsPostOnly...)
	protected.HandleFunc("/requests/hr", h.ListHRRequests).Methods(MethodsGetOnly...)
	protected.HandleFunc("/requests/my", h.ListMyRequests).Methods(MethodsGetOnly...)
	protected.HandleFunc("/requests/{id}", h.ProcessRequest).Methods(MethodsPatchOnly...)

	// Billing
	protected.HandleFunc("/payments", h.RecordPayment).Methods(MethodsPostOnly...)
	protected.HandleFunc("/payments/history", h.PaymentHistory).Methods(MethodsGetOnly...)
	protected.HandleFunc("/downgrade-to-free", h.DowngradeToFree).Methods(MethodsPostOnly...)
}
