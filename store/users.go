// store/users.go
package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
)

type Users struct {
	col *mongo.Collection
}

func (s *Users) Insert(ctx context.Context, u *models.User) error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, u)
	return wrapErr(err, "user not found")
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, wrapErr(err, "user not found")
	}
	return &user, nil
}

func (s *Users) SetPackage(ctx context.Context, email string, pkg models.Package) error {
	result, err := s.col.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$set": bson.M{"package": pkg}},
	)
	if err != nil {
		return wrapErr(err, "user not found")
	}
	if result.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return nil
}

func (s *Users) SetEmployeeCompany(ctx context.Context, email, companyID, companyName, status string) error {
	set := bson.M{"status": status}
	update := bson.M{"$set": set}
	if companyID == "" && companyName == "" {
		update["$unset"] = bson.M{"companyId": "", "companyName": ""}
	} else {
		set["companyId"] = companyID
		set["companyName"] = companyName
	}

	result, err := s.col.UpdateOne(ctx, bson.M{"email": email, "role": models.RoleEmployee}, update)
	if err != nil {
		return wrapErr(err, "user not found")
	}
	if result.MatchedCount == 0 {
		return apperr.New(apperr.NotFound, "employee not found")
	}
	return nil
}
