package workflow

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
)

func TestCreateAssetValidation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	cases := []CreateAssetInput{
		{ProductImage: "img", ProductType: models.AssetTypeReturnable, AvailableQuantity: 1},  // no name
		{ProductName: "Laptop", ProductType: models.AssetTypeReturnable, AvailableQuantity: 1}, // no image
		{ProductName: "Laptop", ProductImage: "img", ProductType: "consumable"},                // unknown type
		{ProductName: "Laptop", ProductImage: "img", ProductType: models.AssetTypeReturnable, AvailableQuantity: -1},
	}
	for _, in := range cases {
		_, err := e.inventorySvc.CreateAsset(ctx, "hr@acme.com", "Acme", in)
		wantKind(t, err, apperr.Validation)
	}
}

func TestCreateAssetZeroQuantity(t *testing.T) {
	e := newEnv()

	// Zero stock is a legal state, it just cannot be assigned.
	asset, err := e.inventorySvc.CreateAsset(context.Background(), "hr@acme.com", "Acme", CreateAssetInput{
		ProductName:       "Projector",
		ProductImage:      "https://img.example.com/projector.png",
		ProductType:       models.AssetTypeReturnable,
		AvailableQuantity: 0,
	})
	if err != nil {
		t.Fatalf("CreateAsset: %v", err)
	}
	if asset.AvailableQuantity != 0 {
		t.Errorf("quantity = %d, want 0", asset.AvailableQuantity)
	}
}

func TestUpdateAssetValidation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	assetID := e.addAsset("hr@acme.com", "Acme", "Laptop", models.AssetTypeReturnable, 3)

	err := e.inventorySvc.UpdateAsset(ctx, "zzz", "hr@acme.com", AssetPatch{ProductName: "X"})
	wantKind(t, err, apperr.Validation)

	err = e.inventorySvc.UpdateAsset(ctx, assetID.Hex(), "hr@acme.com", AssetPatch{})
	wantKind(t, err, apperr.Validation)

	err = e.inventorySvc.UpdateAsset(ctx, assetID.Hex(), "hr@acme.com", AssetPatch{ProductType: "consumable"})
	wantKind(t, err, apperr.Validation)

	neg := -2
	err = e.inventorySvc.UpdateAsset(ctx, assetID.Hex(), "hr@acme.com", AssetPatch{AvailableQuantity: &neg})
	wantKind(t, err, apperr.Validation)
}

func TestUpdateAssetScopedToOwner(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	assetID := e.addAsset("hr@acme.com", "Acme", "Laptop", models.AssetTypeReturnable, 3)

	err := e.inventorySvc.UpdateAsset(ctx, assetID.Hex(), "hr@beta.com", AssetPatch{ProductName: "Stolen"})
	wantKind(t, err, apperr.NotFound)

	if err := e.inventorySvc.UpdateAsset(ctx, assetID.Hex(), "hr@acme.com", AssetPatch{ProductName: "MacBook"}); err != nil {
		t.Fatalf("UpdateAsset: %v", err)
	}
	if got := e.asset(assetID).ProductName; got != "MacBook" {
		t.Errorf("productName = %q, want MacBook", got)
	}
}

func TestDeleteAssetScopedToOwner(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	assetID := e.addAsset("hr@acme.com", "Acme", "Laptop", models.AssetTypeReturnable, 3)

	err := e.inventorySvc.DeleteAsset(ctx, assetID.Hex(), "hr@beta.com")
	wantKind(t, err, apperr.NotFound)

	if err := e.inventorySvc.DeleteAsset(ctx, assetID.Hex(), "hr@acme.com"); err != nil {
		t.Fatalf("DeleteAsset: %v", err)
	}
	_, err = e.inventorySvc.GetAsset(ctx, assetID.Hex())
	wantKind(t, err, apperr.NotFound)
}

func TestDecrementStopsAtZero(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	assetID := e.addAsset("hr@acme.com", "Acme", "Laptop", models.AssetTypeReturnable, 1)

	if err := e.inventorySvc.Decrement(ctx, assetID, "hr@acme.com"); err != nil {
		t.Fatalf("Decrement: %v", err)
	}
	err := e.inventorySvc.Decrement(ctx, assetID, "hr@acme.com")
	wantKind(t, err, apperr.Unavailable)

	if got := e.asset(assetID).AvailableQuantity; got != 0 {
		t.Errorf("quantity = %d, want 0 (never negative)", got)
	}
}

func TestGetAssetUnknownID(t *testing.T) {
	e := newEnv()

	_, err := e.inventorySvc.GetAsset(context.Background(), primitive.NewObjectID().Hex())
	wantKind(t, err, apperr.NotFound)
}
