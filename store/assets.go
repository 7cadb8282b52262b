// store/assets.go
package store

import (
	"context"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
	"github.com/hashemm621/AssetVerse-Server/workflow"
)

type Assets struct {
	col *mongo.Collection
}

func (s *Assets) Insert(ctx context.Context, a *models.Asset) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, a)
	return wrapErr(err, "asset not found")
}

func (s *Assets) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	var asset models.Asset
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&asset)
	if err != nil {
		return nil, wrapErr(err, "asset not found")
	}
	return &asset, nil
}

func (s *Assets) List(ctx context.Context, f workflow.AssetFilter) ([]models.Asset, error) {
	filter := bson.M{}
	if f.HREmail != "" {
		filter["hrEmail"] = f.HREmail
	}
	if f.Search != "" {
		filter["productName"] = bson.M{"$regex": regexp.QuoteMeta(f.Search), "$options": "i"}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(f.Limit).
		SetSkip(f.Skip)

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr(err, "asset not found")
	}
	defer cursor.Close(ctx)

	var assets []models.Asset
	if err = cursor.All(ctx, &assets); err != nil {
		return nil, wrapErr(err, "asset not found")
	}
	if assets == nil {
		assets = []models.Asset{}
	}
	return assets, nil
}

func (s *Assets) Update(ctx context.Context, id primitive.ObjectID, hrEmail string, patch workflow.AssetPatch) error {
	set := bson.M{}
	if patch.ProductName != "" {
		set["productName"] = patch.ProductName
	}
	if patch.ProductImage != "" {
		set["productImage"] = patch.ProductImage
	}
	if patch.ProductType != "" {
		set["productType"] = patch.ProductType
	}
	if patch.AvailableQuantity != nil {
		set["availableQuantity"] = *patch.AvailableQuantity
	}

	result, err := s.col.UpdateOne(ctx, bson.M{"_id": id, "hrEmail": hrEmail}, bson.M{"$set": set})
	if err != nil {
		return wrapErr(err, "asset not found")
	}
	if result.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "asset not found")
	}
	return nil
}

func (s *Assets) Delete(ctx context.Context, id primitive.ObjectID, hrEmail string) error {
	result, err := s.col.DeleteOne(ctx, bson.M{"_id": id, "hrEmail": hrEmail})
	if err != nil {
		return wrapErr(err, "asset not found")
	}
	if result.DeletedCount == 0 {
		return apperr.New(apperr.NotFound, "asset not found")
	}
	return nil
}

// DecrementAvailable takes one unit of stock. Ownership and the
// quantity >= 1 precondition sit in the update filter, so the check and
// the decrement are one atomic operation; two assignments racing for
// the last unit cannot both match.
func (s *Assets) DecrementAvailable(ctx context.Context, id primitive.ObjectID, hrEmail string) error {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "hrEmail": hrEmail, "availableQuantity": bson.M{"$gte": 1}},
		bson.M{"$inc": bson.M{"availableQuantity": -1}},
	)
	if err != nil {
		return wrapErr(err, "asset not found")
	}
	if result.MatchedCount == 0 {
		return apperr.New(apperr.Unavailable, "asset is out of stock")
	}
	return nil
}

func (s *Assets) IncrementAvailable(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"availableQuantity": 1}},
	)
	if err != nil {
		return wrapErr(err, "asset not found")
	}
	if result.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "asset not found")
	}
	return nil
}
