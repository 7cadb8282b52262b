// models/payment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PackagePlan is a purchasable subscription tier from the catalog.
type PackagePlan struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name" json:"name"`
	EmployeesLimit int                `bson:"employeesLimit" json:"employeesLimit"`
	Price          float64            `bson:"price" json:"price"`
}

// Payment records one confirmed subscription purchase. TrackingID is the
// idempotency key: a retried confirmation with the same trackingId must
// not produce a second row.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HREmail       string             `bson:"hrEmail" json:"hrEmail"`
	PackageName   string             `bson:"packageName" json:"packageName"`
	EmployeeLimit int                `bson:"employeeLimit" json:"employeeLimit"`
	Amount        float64            `bson:"amount" json:"amount"`
	TrackingID    string             `bson:"trackingId" json:"trackingId"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaymentDate   time.Time          `bson:"paymentDate" json:"paymentDate"`
	Status        string             `bson:"status" json:"status"`
}
