// store/affiliations.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
)

type Affiliations struct {
	col *mongo.Collection
}

// Insert relies on the partial unique index over active rows: a
// concurrent duplicate comes back as a duplicate-key error, which
// wrapErr maps to Conflict.
func (s *Affiliations) Insert(ctx context.Context, a *models.Affiliation) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, a)
	return wrapErr(err, "affiliation not found")
}

func (s *Affiliations) FindActive(ctx context.Context, hrEmail, employeeEmail string) (*models.Affiliation, error) {
	var aff models.Affiliation
	err := s.col.FindOne(ctx, bson.M{
		"hrEmail":       hrEmail,
		"employeeEmail": employeeEmail,
		"status":        models.AffiliationStatusActive,
	}).Decode(&aff)
	if err != nil {
		return nil, wrapErr(err, "affiliation not found")
	}
	return &aff, nil
}

// Deactivate soft-deletes; the row stays behind with status inactive so
// affiliation history survives.
func (s *Affiliations) Deactivate(ctx context.Context, hrEmail, employeeEmail string) (bool, error) {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"hrEmail": hrEmail, "employeeEmail": employeeEmail, "status": models.AffiliationStatusActive},
		bson.M{"$set": bson.M{"status": models.AffiliationStatusInactive}},
	)
	if err != nil {
		return false, wrapErr(err, "affiliation not found")
	}
	return result.MatchedCount > 0, nil
}

func (s *Affiliations) DeactivateByID(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.AffiliationStatusActive},
		bson.M{"$set": bson.M{"status": models.AffiliationStatusInactive}},
	)
	if err != nil {
		return wrapErr(err, "affiliation not found")
	}
	if result.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "affiliation not found")
	}
	return nil
}

// ListActiveByHR returns oldest affiliations first; the downgrade policy
// depends on this order to pick survivors by seniority.
func (s *Affiliations) ListActiveByHR(ctx context.Context, hrEmail string) ([]models.Affiliation, error) {
	return s.list(ctx, bson.M{"hrEmail": hrEmail, "status": models.AffiliationStatusActive})
}

func (s *Affiliations) ListActiveByEmployee(ctx context.Context, employeeEmail string) ([]models.Affiliation, error) {
	return s.list(ctx, bson.M{"employeeEmail": employeeEmail, "status": models.AffiliationStatusActive})
}

func (s *Affiliations) CountActiveByHR(ctx context.Context, hrEmail string) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{"hrEmail": hrEmail, "status": models.AffiliationStatusActive})
	if err != nil {
		return 0, wrapErr(err, "affiliation not found")
	}
	return count, nil
}

func (s *Affiliations) list(ctx context.Context, filter bson.M) ([]models.Affiliation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "affiliationDate", Value: 1}})

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr(err, "affiliation not found")
	}
	defer cursor.Close(ctx)

	var affs []models.Affiliation
	if err = cursor.All(ctx, &affs); err != nil {
		return nil, wrapErr(err, "affiliation not found")
	}
	if affs == nil {
		affs = []models.Affiliation{}
	}
	return affs, nil
}
