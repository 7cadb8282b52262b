// store/assignments.go
package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hashemm621/AssetVerse-Server/models"
)

type Assignments struct {
	col *mongo.Collection
}

func (s *Assignments) Insert(ctx context.Context, a *models.AssetAssignment) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, a)
	return wrapErr(err, "assignment not found")
}

func (s *Assignments) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AssetAssignment, error) {
	var assignment models.AssetAssignment
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&assignment)
	if err != nil {
		return nil, wrapErr(err, "assignment not found")
	}
	return &assignment, nil
}

// MarkReturned matches only while the record is still assigned; a lost
// race shows up as MatchedCount == 0, never as a double return.
func (s *Assignments) MarkReturned(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error) {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.AssignmentStatusAssigned},
		bson.M{"$set": bson.M{"status": models.AssignmentStatusReturned, "returnDate": at}},
	)
	if err != nil {
		return false, wrapErr(err, "assignment not found")
	}
	return result.MatchedCount > 0, nil
}

func (s *Assignments) ListByEmployee(ctx context.Context, employeeEmail string) ([]models.AssetAssignment, error) {
	return s.list(ctx, bson.M{"employeeEmail": employeeEmail})
}

func (s *Assignments) ListByHR(ctx context.Context, hrEmail string) ([]models.AssetAssignment, error) {
	return s.list(ctx, bson.M{"hrEmail": hrEmail})
}

func (s *Assignments) CountAssigned(ctx context.Context, hrEmail, employeeEmail string) (int64, error) {
	count, err := s.col.CountDocuments(ctx, bson.M{
		"hrEmail":       hrEmail,
		"employeeEmail": employeeEmail,
		"status":        models.AssignmentStatusAssigned,
	})
	if err != nil {
		return 0, wrapErr(err, "assignment not found")
	}
	return count, nil
}

func (s *Assignments) list(ctx context.Context, filter bson.M) ([]models.AssetAssignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "assignmentDate", Value: -1}})

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr(err, "assignment not found")
	}
	defer cursor.Close(ctx)

	var assignments []models.AssetAssignment
	if err = cursor.All(ctx, &assignments); err != nil {
		return nil, wrapErr(err, "assignment not found")
	}
	if assignments == nil {
		assignments = []models.AssetAssignment{}
	}
	return assignments, nil
}
