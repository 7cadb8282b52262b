// workflow/users.go
package workflow

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
	"github.com/hashemm621/AssetVerse-Server/utils"
)

type Users struct {
	users UserStore
}

func NewUsers(users UserStore) *Users {
	return &Users{users: users}
}

type RegisterInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	CompanyName string `json:"companyName"`
	CompanyLogo string `json:"companyLogo"`
}

// Register creates a user. HR users start on the default free package
// with a timestamp-derived companyId; employees start unassigned with no
// company.
func (s *Users) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Email == "" || in.Name == "" {
		return nil, apperr.New(apperr.Validation, "name and email are required")
	}
	if in.Role != models.RoleHR && in.Role != models.RoleEmployee {
		return nil, apperr.New(apperr.Validation, "role must be hr or employee")
	}
	if len(in.Password) < 6 {
		return nil, apperr.New(apperr.Validation, "password must be at least 6 characters")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to hash password", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		CreatedAt:    now,
	}

	switch in.Role {
	case models.RoleHR:
		if in.CompanyName == "" {
			return nil, apperr.New(apperr.Validation, "companyName is required for hr accounts")
		}
		pkg := DefaultFreePackage
		pkg.ActivatedAt = now
		user.Package = &pkg
		user.CompanyName = in.CompanyName
		user.CompanyLogo = in.CompanyLogo
		user.CompanyID = strconv.FormatInt(now.UnixMilli(), 10)
	case models.RoleEmployee:
		user.Status = models.EmployeeStatusUnassigned
	}

	if err := s.users.Insert(ctx, user); err != nil {
		if apperr.Is(err, apperr.Conflict) {
			return nil, apperr.New(apperr.Conflict, "user already exists")
		}
		return nil, err
	}
	return user, nil
}

// Authenticate checks the password for a registered email.
func (s *Users) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperr.New(apperr.Validation, "email and password are required")
	}
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.New(apperr.Auth, "invalid email or password")
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.New(apperr.Auth, "invalid email or password")
	}
	return user, nil
}

func (s *Users) Get(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, apperr.New(apperr.Validation, "email is required")
	}
	return s.users.FindByEmail(ctx, strings.ToLower(email))
}

func (s *Users) Role(ctx context.Context, email string) (string, error) {
	user, err := s.Get(ctx, email)
	if err != nil {
		return "", err
	}
	return user.Role, nil
}
