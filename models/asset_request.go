// models/asset_request.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// AssetRequest is an employee's ask for an asset. Once approved or
// rejected the record is terminal.
type AssetRequest struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssetID        primitive.ObjectID `bson:"assetId" json:"assetId"`
	AssetName      string             `bson:"assetName" json:"assetName"`
	AssetType      string             `bson:"assetType" json:"assetType"`
	RequesterName  string             `bson:"requesterName" json:"requesterName"`
	RequesterEmail string             `bson:"requesterEmail" json:"requesterEmail"`
	HREmail        string             `bson:"hrEmail" json:"hrEmail"`
	CompanyName    string             `bson:"companyName" json:"companyName"`
	RequestDate    time.Time          `bson:"requestDate" json:"requestDate"`
	ApprovalDate   *time.Time         `bson:"approvalDate,omitempty" json:"approvalDate,omitempty"`
	RequestStatus  string             `bson:"requestStatus" json:"requestStatus"` // "pending", "approved", "rejected"
	Note           string             `bson:"note,omitempty" json:"note,omitempty"`
	ProcessedBy    string             `bson:"processedBy,omitempty" json:"processedBy,omitempty"`
}
