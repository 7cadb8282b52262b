// models/affiliation.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AffiliationStatusActive   = "active"
	AffiliationStatusInactive = "inactive"
)

// Affiliation links an HR principal to an employee principal. Rows are
// soft-deleted (status flips to inactive), never removed, so history of
// past employment survives.
type Affiliation struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HREmail         string             `bson:"hrEmail" json:"hrEmail"`
	EmployeeEmail   string             `bson:"employeeEmail" json:"employeeEmail"`
	EmployeeName    string             `bson:"employeeName" json:"employeeName"`
	CompanyName     string             `bson:"companyName" json:"companyName"`
	CompanyLogo     string             `bson:"companyLogo,omitempty" json:"companyLogo,omitempty"`
	AffiliationDate time.Time          `bson:"affiliationDate" json:"affiliationDate"`
	Status          string             `bson:"status" json:"status"` // "active", "inactive"
}
