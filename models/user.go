// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleHR       = "hr"
	RoleEmployee = "employee"

	EmployeeStatusUnassigned = "unassigned"
	EmployeeStatusAffiliated = "affiliated"
)

// Package is the subscription tier attached to an HR user. It bounds how
// many active affiliations the HR principal may hold.
type Package struct {
	Name           string    `bson:"name" json:"name"`
	EmployeesLimit int       `bson:"employeesLimit" json:"employeesLimit"`
	Price          float64   `bson:"price" json:"price"`
	ActivatedAt    time.Time `bson:"activatedAt" json:"activatedAt"`
}

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Role         string             `bson:"role" json:"role"` // "hr", "employee"
	CompanyName  string             `bson:"companyName,omitempty" json:"companyName,omitempty"`
	CompanyLogo  string             `bson:"companyLogo,omitempty" json:"companyLogo,omitempty"`
	CompanyID    string             `bson:"companyId,omitempty" json:"companyId,omitempty"`
	Status       string             `bson:"status,omitempty" json:"status,omitempty"` // employees: "unassigned", "affiliated"
	Package      *Package           `bson:"package,omitempty" json:"package,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}
