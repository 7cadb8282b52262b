// Package store implements the workflow store interfaces on MongoDB.
// Every cross-document invariant the workflow relies on is backed here
// by either a conditional update (the precondition lives in the update
// filter) or a unique index, never by a bare read-then-write.
package store

import (
	"context"
	"errors"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
)

type Stores struct {
	Users        *Users
	Assets       *Assets
	Assignments  *Assignments
	Affiliations *Affiliations
	Requests     *Requests
	Payments     *Payments
	Plans        *Plans
}

func New(db *mongo.Database) *Stores {
	return &Stores{
		Users:        &Users{col: db.Collection("users")},
		Assets:       &Assets{col: db.Collection("assets")},
		Assignments:  &Assignments{col: db.Collection("assignments")},
		Affiliations: &Affiliations{col: db.Collection("affiliations")},
		Requests:     &Requests{col: db.Collection("requests")},
		Payments:     &Payments{col: db.Collection("payments")},
		Plans:        &Plans{col: db.Collection("packages")},
	}
}

// EnsureIndexes creates the unique indexes the workflow depends on: one
// registered user per email, at most one active affiliation per
// (hrEmail, employeeEmail) pair, and one payment per trackingId.
func (s *Stores) EnsureIndexes(ctx context.Context) error {
	_, err := s.Users.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = s.Affiliations.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "hrEmail", Value: 1}, {Key: "employeeEmail", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetPartialFilterExpression(bson.M{"status": models.AffiliationStatusActive}),
	})
	if err != nil {
		return err
	}

	_, err = s.Payments.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "trackingId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// SeedPlans inserts the package catalog on first boot.
func (s *Stores) SeedPlans(ctx context.Context) error {
	count, err := s.Plans.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []interface{}{
		models.PackagePlan{Name: "5 Members", EmployeesLimit: 5, Price: 5},
		models.PackagePlan{Name: "10 Members", EmployeesLimit: 10, Price: 8},
		models.PackagePlan{Name: "20 Members", EmployeesLimit: 20, Price: 15},
	}
	if _, err := s.Plans.col.InsertMany(ctx, plans); err != nil {
		return err
	}
	log.Printf("seeded %d package plans", len(plans))
	return nil
}

// wrapErr normalizes driver errors into the apperr taxonomy.
func wrapErr(err error, notFoundMsg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return apperr.New(apperr.NotFound, notFoundMsg)
	case mongo.IsDuplicateKeyError(err):
		return apperr.Wrap(apperr.Conflict, "record already exists", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Wrap(apperr.Internal, "database timeout", err)
	default:
		return apperr.Wrap(apperr.Internal, "database error", err)
	}
}
