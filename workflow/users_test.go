package workflow

import (
	"context"
	"testing"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
)

func TestRegisterHRStartsOnFreePackage(t *testing.T) {
	e := newEnv()

	user, err := e.usersSvc.Register(context.Background(), RegisterInput{
		Name:        "Sam",
		Email:       "HR@Acme.com",
		Password:    "secret123",
		Role:        models.RoleHR,
		CompanyName: "Acme",
		CompanyLogo: "https://img.example.com/acme.png",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "hr@acme.com" {
		t.Errorf("email = %q, want lowercased hr@acme.com", user.Email)
	}
	if user.Package == nil || user.Package.Name != DefaultFreePackage.Name || user.Package.EmployeesLimit != 5 || user.Package.Price != 0 {
		t.Errorf("package = %+v, want default free tier", user.Package)
	}
	if user.CompanyID == "" {
		t.Error("hr account has no companyId")
	}
	if user.PasswordHash == "secret123" || user.PasswordHash == "" {
		t.Error("password stored unhashed")
	}
}

func TestRegisterEmployeeStartsUnassigned(t *testing.T) {
	e := newEnv()

	user, err := e.usersSvc.Register(context.Background(), RegisterInput{
		Name:     "Jordan",
		Email:    "emp@acme.com",
		Password: "secret123",
		Role:     models.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Status != models.EmployeeStatusUnassigned {
		t.Errorf("status = %q, want unassigned", user.Status)
	}
	if user.CompanyID != "" || user.CompanyName != "" {
		t.Errorf("employee starts with a company: %+v", user)
	}
	if user.Package != nil {
		t.Errorf("employee has a package: %+v", user.Package)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	in := RegisterInput{Name: "Jordan", Email: "emp@acme.com", Password: "secret123", Role: models.RoleEmployee}

	if _, err := e.usersSvc.Register(ctx, in); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := e.usersSvc.Register(ctx, in)
	wantKind(t, err, apperr.Conflict)
}

func TestRegisterValidation(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	cases := []RegisterInput{
		{Name: "Jordan", Email: "e@x.com", Password: "short", Role: models.RoleEmployee},
		{Name: "Jordan", Email: "e@x.com", Password: "secret123", Role: "admin"},
		{Name: "", Email: "e@x.com", Password: "secret123", Role: models.RoleEmployee},
		{Name: "Sam", Email: "hr@x.com", Password: "secret123", Role: models.RoleHR}, // hr without companyName
	}
	for _, in := range cases {
		_, err := e.usersSvc.Register(ctx, in)
		wantKind(t, err, apperr.Validation)
	}
}

func TestAuthenticate(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	if _, err := e.usersSvc.Register(ctx, RegisterInput{
		Name: "Jordan", Email: "emp@acme.com", Password: "secret123", Role: models.RoleEmployee,
	}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, err := e.usersSvc.Authenticate(ctx, "Emp@Acme.com", "secret123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if user.Email != "emp@acme.com" {
		t.Errorf("email = %q", user.Email)
	}

	// Wrong password and unknown email answer identically.
	_, err = e.usersSvc.Authenticate(ctx, "emp@acme.com", "wrong-pass")
	wantKind(t, err, apperr.Auth)

	_, err = e.usersSvc.Authenticate(ctx, "ghost@acme.com", "secret123")
	wantKind(t, err, apperr.Auth)
}
