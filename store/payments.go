// store/payments.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hashemm621/AssetVerse-Server/models"
)

type Payments struct {
	col *mongo.Collection
}

// Insert fails with Conflict for a reused trackingId via the unique
// index; the workflow treats that as the idempotent-success path.
func (s *Payments) Insert(ctx context.Context, p *models.Payment) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, p)
	return wrapErr(err, "payment not found")
}

func (s *Payments) FindByTrackingID(ctx context.Context, trackingID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.col.FindOne(ctx, bson.M{"trackingId": trackingID}).Decode(&payment)
	if err != nil {
		return nil, wrapErr(err, "payment not found")
	}
	return &payment, nil
}

func (s *Payments) ListByHR(ctx context.Context, hrEmail string) ([]models.Payment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "paymentDate", Value: -1}})

	cursor, err := s.col.Find(ctx, bson.M{"hrEmail": hrEmail}, opts)
	if err != nil {
		return nil, wrapErr(err, "payment not found")
	}
	defer cursor.Close(ctx)

	var payments []models.Payment
	if err = cursor.All(ctx, &payments); err != nil {
		return nil, wrapErr(err, "payment not found")
	}
	if payments == nil {
		payments = []models.Payment{}
	}
	return payments, nil
}

type Plans struct {
	col *mongo.Collection
}

func (s *Plans) List(ctx context.Context) ([]models.PackagePlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "price", Value: 1}})

	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, wrapErr(err, "package not found")
	}
	defer cursor.Close(ctx)

	var plans []models.PackagePlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, wrapErr(err, "package not found")
	}
	if plans == nil {
		plans = []models.PackagePlan{}
	}
	return plans, nil
}

func (s *Plans) FindByName(ctx context.Context, name string) (*models.PackagePlan, error) {
	var plan models.PackagePlan
	err := s.col.FindOne(ctx, bson.M{"name": name}).Decode(&plan)
	if err != nil {
		return nil, wrapErr(err, "package not found")
	}
	return &plan, nil
}
