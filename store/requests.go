// store/requests.go
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

type Requests struct {
	col *mongo.Collection
}

func (s *Requests) Insert(ctx context.Context, r *models.AssetRequest) error {
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, r)
	return wrapErr(err, "request not found")
}

func (s *Requests) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AssetRequest, error) {
	var request models.AssetRequest
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&request)
	if err != nil {
		return nil, wrapErr(err, "request not found")
	}
	return &request, nil
}

// MarkProcessed is the pending -> approved|rejected transition. The
// pending precondition lives in the filter, so of two concurrent
// processors exactly one matches.
func (s *Requests) MarkProcessed(ctx context.Context, id primitive.ObjectID, status, processedBy string, at time.Time) (bool, error) {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "requestStatus": models.RequestStatusPending},
		bson.M{"$set": bson.M{
			"requestStatus": status,
			"approvalDate":  at,
			"processedBy":   processedBy,
		}},
	)
	if err != nil {
		return false, wrapErr(err, "request not found")
	}
	return result.MatchedCount > 0, nil
}

// Reopen reverts an approval whose side effects could not be applied,
// putting the request back in the retryable pending state.
func (s *Requests) Reopen(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "requestStatus": models.RequestStatusApproved},
		bson.M{
			"$set":   bson.M{"requestStatus": models.RequestStatusPending},
			"$unset": bson.M{"approvalDate": "", "processedBy": ""},
		},
	)
	return wrapErr(err, "request not found")
}

func (s *Requests) ListByHR(ctx context.Context, hrEmail, status string) ([]models.AssetRequest, error) {
	filter := bson.M{"hrEmail": hrEmail}
	if status != "" {
		filter["requestStatus"] = status
	}
	return s.list(ctx, filter)
}

func (s *Requests) ListByRequester(ctx context.Context, requesterEmail string) ([]models.AssetRequest, error) {
	return s.list(ctx, bson.M{"requesterEmail": requesterEmail})
}

func (s *Requests) list(ctx context.Context, filter bson.M) ([]models.AssetRequest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "requestDate", Value: -1}})

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, wrapErr(err, "request not found")
	}
	defer cursor.Close(ctx)

	var requests []models.AssetRequest
	if err = cursor.All(ctx, &requests); err != nil {
		return nil, wrapErr(err, "request not found")
	}
	if requests == nil {
		requests = []models.AssetRequest{}
	}
	return requests, nil
}
