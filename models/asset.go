// models/asset.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	AssetTypeReturnable    = "returnable"
	AssetTypeNonReturnable = "non-returnable"
)

type Asset struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ProductName       string             `bson:"productName" json:"productName"`
	ProductImage      string             `bson:"productImage" json:"productImage"`
	ProductType       string             `bson:"productType" json:"productType"` // "returnable", "non-returnable"
	HREmail           string             `bson:"hrEmail" json:"hrEmail"`
	CompanyName       string             `bson:"companyName" json:"companyName"`
	AvailableQuantity int                `bson:"availableQuantity" json:"availableQuantity"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
}
