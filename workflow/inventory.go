// workflow/inventory.go
package workflow

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
)

// Inventory owns available-quantity accounting per asset. Quantity moves
// down only when an assignment is created and up only when a returnable
// asset comes back, so it can never go negative.
type Inventory struct {
	assets AssetStore
}

func NewInventory(assets AssetStore) *Inventory {
	return &Inventory{assets: assets}
}

type CreateAssetInput struct {
	ProductName       string `json:"productName"`
	ProductImage      string `json:"productImage"`
	ProductType       string `json:"productType"`
	AvailableQuantity int    `json:"availableQuantity"`
}

func (s *Inventory) CreateAsset(ctx context.Context, hrEmail, companyName string, in CreateAssetInput) (*models.Asset, error) {
	if in.ProductName == "" || in.ProductImage == "" || in.ProductType == "" || hrEmail == "" || companyName == "" {
		return nil, apperr.New(apperr.Validation, "productName, productImage, productType, hrEmail and companyName are required")
	}
	if in.ProductType != models.AssetTypeReturnable && in.ProductType != models.AssetTypeNonReturnable {
		return nil, apperr.New(apperr.Validation, "productType must be returnable or non-returnable")
	}
	if in.AvailableQuantity < 0 {
		return nil, apperr.New(apperr.Validation, "availableQuantity cannot be negative")
	}

	asset := &models.Asset{
		ProductName:       in.ProductName,
		ProductImage:      in.ProductImage,
		ProductType:       in.ProductType,
		HREmail:           hrEmail,
		CompanyName:       companyName,
		AvailableQuantity: in.AvailableQuantity,
		CreatedAt:         time.Now().UTC(),
	}
	if err := s.assets.Insert(ctx, asset); err != nil {
		return nil, err
	}
	return asset, nil
}

func (s *Inventory) ListAssets(ctx context.Context, f AssetFilter) ([]models.Asset, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Skip < 0 {
		f.Skip = 0
	}
	return s.assets.List(ctx, f)
}

func (s *Inventory) GetAsset(ctx context.Context, idHex string) (*models.Asset, error) {
	id, err := ParseID(idHex)
	if err != nil {
		return nil, err
	}
	return s.assets.FindByID(ctx, id)
}

// UpdateAsset patches an asset owned by the acting HR principal.
func (s *Inventory) UpdateAsset(ctx context.Context, idHex, hrEmail string, patch AssetPatch) error {
	id, err := ParseID(idHex)
	if err != nil {
		return err
	}
	if patch.ProductType != "" &&
		patch.ProductType != models.AssetTypeReturnable && patch.ProductType != models.AssetTypeNonReturnable {
		return apperr.New(apperr.Validation, "productType must be returnable or non-returnable")
	}
	if patch.AvailableQuantity != nil && *patch.AvailableQuantity < 0 {
		return apperr.New(apperr.Validation, "availableQuantity cannot be negative")
	}
	if patch.ProductName == "" && patch.ProductImage == "" && patch.ProductType == "" && patch.AvailableQuantity == nil {
		return apperr.New(apperr.Validation, "no fields to update")
	}
	return s.assets.Update(ctx, id, hrEmail, patch)
}

func (s *Inventory) DeleteAsset(ctx context.Context, idHex, hrEmail string) error {
	id, err := ParseID(idHex)
	if err != nil {
		return err
	}
	return s.assets.Delete(ctx, id, hrEmail)
}

// Decrement consumes one unit of stock. The ownership and quantity check
// happen inside one conditional update at the store.
func (s *Inventory) Decrement(ctx context.Context, id primitive.ObjectID, hrEmail string) error {
	return s.assets.DecrementAvailable(ctx, id, hrEmail)
}

// Increment restores one unit. Only called on a confirmed return.
func (s *Inventory) Increment(ctx context.Context, id primitive.ObjectID) error {
	return s.assets.IncrementAvailable(ctx, id)
}
