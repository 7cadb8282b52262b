// models/asset_assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AssignmentStatusAssigned = "assigned"
	AssignmentStatusReturned = "returned"
)

type AssetAssignment struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AssetID        primitive.ObjectID `bson:"assetId" json:"assetId"`
	AssetName      string             `bson:"assetName" json:"assetName"`
	AssetType      string             `bson:"assetType" json:"assetType"`
	EmployeeEmail  string             `bson:"employeeEmail" json:"employeeEmail"`
	EmployeeName   string             `bson:"employeeName" json:"employeeName"`
	HREmail        string             `bson:"hrEmail" json:"hrEmail"`
	CompanyName    string             `bson:"companyName" json:"companyName"`
	AssignmentDate time.Time          `bson:"assignmentDate" json:"assignmentDate"`
	ReturnDate     *time.Time         `bson:"returnDate,omitempty" json:"returnDate,omitempty"`
	Status         string             `bson:"status" json:"status"` // "assigned", "returned"
}
