// handlers/handler.go
package handlers

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hashemm621/AssetVerse-Server/auth"
	"github.com/hashemm621/AssetVerse-Server/payments"
	"github.com/hashemm621/AssetVerse-Server/websocket"
	"github.com/hashemm621/AssetVerse-Server/workflow"
)

const requestTimeout = 10 * time.Second

// Handler carries the injected services every endpoint needs. Built once
// in main and shared; no package-level state.
type Handler struct {
	Users        *workflow.Users
	Inventory    *workflow.Inventory
	Assignments  *workflow.Assignments
	Affiliations *workflow.Affiliations
	Requests     *workflow.Requests
	Packages     *workflow.Packages
	Tokens       *auth.TokenService
	Checkout     payments.CheckoutProvider
	Hub          *websocket.Hub
	Mongo        *mongo.Client
}

func requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), requestTimeout)
}
