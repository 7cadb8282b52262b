package workflow

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/hashemm621/AssetVerse-Server/apperr"
	"github.com/hashemm621/AssetVerse-Server/models"
)

// In-memory stores mirroring the conditional-update semantics of the
// Mongo implementations, so the services can be exercised without a
// database.

type fakeUsers struct {
	mu      sync.Mutex
	byEmail map[string]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]models.User)}
}

func (f *fakeUsers) Insert(ctx context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[u.Email]; ok {
		return apperr.New(apperr.Conflict, "record already exists")
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.byEmail[u.Email] = *u
	return nil
}

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "user not found")
	}
	out := u
	return &out, nil
}

func (f *fakeUsers) SetPackage(ctx context.Context, email string, pkg models.Package) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return apperr.New(apperr.NotFound, "user not found")
	}
	u.Package = &pkg
	f.byEmail[email] = u
	return nil
}

func (f *fakeUsers) SetEmployeeCompany(ctx context.Context, email, companyID, companyName, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok || u.Role != models.RoleEmployee {
		return apperr.New(apperr.NotFound, "employee not found")
	}
	u.CompanyID = companyID
	u.CompanyName = companyName
	u.Status = status
	f.byEmail[email] = u
	return nil
}

type fakeAssets struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.Asset
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{byID: make(map[primitive.ObjectID]models.Asset)}
}

func (f *fakeAssets) Insert(ctx context.Context, a *models.Asset) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAssets) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "asset not found")
	}
	out := a
	return &out, nil
}

func (f *fakeAssets) List(ctx context.Context, filter AssetFilter) ([]models.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var assets []models.Asset
	for _, a := range f.byID {
		if filter.HREmail != "" && a.HREmail != filter.HREmail {
			continue
		}
		assets = append(assets, a)
	}
	return assets, nil
}

func (f *fakeAssets) Update(ctx context.Context, id primitive.ObjectID, hrEmail string, patch AssetPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok || a.HREmail != hrEmail {
		return apperr.New(apperr.NotFound, "asset not found")
	}
	if patch.ProductName != "" {
		a.ProductName = patch.ProductName
	}
	if patch.ProductImage != "" {
		a.ProductImage = patch.ProductImage
	}
	if patch.ProductType != "" {
		a.ProductType = patch.ProductType
	}
	if patch.AvailableQuantity != nil {
		a.AvailableQuantity = *patch.AvailableQuantity
	}
	f.byID[id] = a
	return nil
}

func (f *fakeAssets) Delete(ctx context.Context, id primitive.ObjectID, hrEmail string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok || a.HREmail != hrEmail {
		return apperr.New(apperr.NotFound, "asset not found")
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeAssets) DecrementAvailable(ctx context.Context, id primitive.ObjectID, hrEmail string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok || a.HREmail != hrEmail || a.AvailableQuantity < 1 {
		return apperr.New(apperr.Unavailable, "asset is out of stock")
	}
	a.AvailableQuantity--
	f.byID[id] = a
	return nil
}

func (f *fakeAssets) IncrementAvailable(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return apperr.New(apperr.NotFound, "asset not found")
	}
	a.AvailableQuantity++
	f.byID[id] = a
	return nil
}

type fakeAssignments struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.AssetAssignment
}

func newFakeAssignments() *fakeAssignments {
	return &fakeAssignments{byID: make(map[primitive.ObjectID]models.AssetAssignment)}
}

func (f *fakeAssignments) Insert(ctx context.Context, a *models.AssetAssignment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.byID[a.ID] = *a
	return nil
}

func (f *fakeAssignments) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AssetAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "assignment not found")
	}
	out := a
	return &out, nil
}

func (f *fakeAssignments) MarkReturned(ctx context.Context, id primitive.ObjectID, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byID[id]
	if !ok || a.Status != models.AssignmentStatusAssigned {
		return false, nil
	}
	a.Status = models.AssignmentStatusReturned
	a.ReturnDate = &at
	f.byID[id] = a
	return true, nil
}

func (f *fakeAssignments) ListByEmployee(ctx context.Context, employeeEmail string) ([]models.AssetAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AssetAssignment
	for _, a := range f.byID {
		if a.EmployeeEmail == employeeEmail {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignments) ListByHR(ctx context.Context, hrEmail string) ([]models.AssetAssignment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AssetAssignment
	for _, a := range f.byID {
		if a.HREmail == hrEmail {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAssignments) CountAssigned(ctx context.Context, hrEmail, employeeEmail string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for _, a := range f.byID {
		if a.HREmail == hrEmail && a.EmployeeEmail == employeeEmail && a.Status == models.AssignmentStatusAssigned {
			count++
		}
	}
	return count, nil
}

type fakeAffiliations struct {
	mu   sync.Mutex
	rows []models.Affiliation
}

func newFakeAffiliations() *fakeAffiliations { return &fakeAffiliations{} }

func (f *fakeAffiliations) Insert(ctx context.Context, a *models.Affiliation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.HREmail == a.HREmail && row.EmployeeEmail == a.EmployeeEmail && row.Status == models.AffiliationStatusActive {
			return apperr.New(apperr.Conflict, "record already exists")
		}
	}
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	f.rows = append(f.rows, *a)
	return nil
}

func (f *fakeAffiliations) FindActive(ctx context.Context, hrEmail, employeeEmail string) (*models.Affiliation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range f.rows {
		if row.HREmail == hrEmail && row.EmployeeEmail == employeeEmail && row.Status == models.AffiliationStatusActive {
			out := row
			return &out, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "affiliation not found")
}

func (f *fakeAffiliations) Deactivate(ctx context.Context, hrEmail, employeeEmail string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, row := range f.rows {
		if row.HREmail == hrEmail && row.EmployeeEmail == employeeEmail && row.Status == models.AffiliationStatusActive {
			f.rows[i].Status = models.AffiliationStatusInactive
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAffiliations) DeactivateByID(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, row := range f.rows {
		if row.ID == id && row.Status == models.AffiliationStatusActive {
			f.rows[i].Status = models.AffiliationStatusInactive
			return nil
		}
	}
	return apperr.New(apperr.NotFound, "affiliation not found")
}

func (f *fakeAffiliations) ListActiveByHR(ctx context.Context, hrEmail string) ([]models.Affiliation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Affiliation
	for _, row := range f.rows {
		if row.HREmail == hrEmail && row.Status == models.AffiliationStatusActive {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].AffiliationDate.Before(out[j].AffiliationDate)
	})
	return out, nil
}

func (f *fakeAffiliations) ListActiveByEmployee(ctx context.Context, employeeEmail string) ([]models.Affiliation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Affiliation
	for _, row := range f.rows {
		if row.EmployeeEmail == employeeEmail && row.Status == models.AffiliationStatusActive {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeAffiliations) CountActiveByHR(ctx context.Context, hrEmail string) (int64, error) {
	rows, _ := f.ListActiveByHR(ctx, hrEmail)
	return int64(len(rows)), nil
}

type fakeRequests struct {
	mu   sync.Mutex
	byID map[primitive.ObjectID]models.AssetRequest
}

func newFakeRequests() *fakeRequests {
	return &fakeRequests{byID: make(map[primitive.ObjectID]models.AssetRequest)}
}

func (f *fakeRequests) Insert(ctx context.Context, r *models.AssetRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	f.byID[r.ID] = *r
	return nil
}

func (f *fakeRequests) FindByID(ctx context.Context, id primitive.ObjectID) (*models.AssetRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "request not found")
	}
	out := r
	return &out, nil
}

func (f *fakeRequests) MarkProcessed(ctx context.Context, id primitive.ObjectID, status, processedBy string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok || r.RequestStatus != models.RequestStatusPending {
		return false, nil
	}
	r.RequestStatus = status
	r.ApprovalDate = &at
	r.ProcessedBy = processedBy
	f.byID[id] = r
	return true, nil
}

func (f *fakeRequests) Reopen(ctx context.Context, id primitive.ObjectID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.byID[id]
	if !ok || r.RequestStatus != models.RequestStatusApproved {
		return nil
	}
	r.RequestStatus = models.RequestStatusPending
	r.ApprovalDate = nil
	r.ProcessedBy = ""
	f.byID[id] = r
	return nil
}

func (f *fakeRequests) ListByHR(ctx context.Context, hrEmail, status string) ([]models.AssetRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AssetRequest
	for _, r := range f.byID {
		if r.HREmail != hrEmail {
			continue
		}
		if status != "" && r.RequestStatus != status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRequests) ListByRequester(ctx context.Context, requesterEmail string) ([]models.AssetRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.AssetRequest
	for _, r := range f.byID {
		if r.RequesterEmail == requesterEmail {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakePayments struct {
	mu         sync.Mutex
	byTracking map[string]models.Payment
}

func newFakePayments() *fakePayments {
	return &fakePayments{byTracking: make(map[string]models.Payment)}
}

func (f *fakePayments) Insert(ctx context.Context, p *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byTracking[p.TrackingID]; ok {
		return apperr.New(apperr.Conflict, "record already exists")
	}
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	f.byTracking[p.TrackingID] = *p
	return nil
}

func (f *fakePayments) FindByTrackingID(ctx context.Context, trackingID string) (*models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.byTracking[trackingID]
	if !ok {
		return nil, apperr.New(apperr.NotFound, "payment not found")
	}
	out := p
	return &out, nil
}

func (f *fakePayments) ListByHR(ctx context.Context, hrEmail string) ([]models.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Payment
	for _, p := range f.byTracking {
		if p.HREmail == hrEmail {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakePlans struct {
	plans []models.PackagePlan
}

func (f *fakePlans) List(ctx context.Context) ([]models.PackagePlan, error) {
	return f.plans, nil
}

func (f *fakePlans) FindByName(ctx context.Context, name string) (*models.PackagePlan, error) {
	for _, p := range f.plans {
		if p.Name == name {
			out := p
			return &out, nil
		}
	}
	return nil, apperr.New(apperr.NotFound, "package not found")
}

// env wires every service over the fakes, mirroring main.go.
type env struct {
	users        *fakeUsers
	assets       *fakeAssets
	assignments  *fakeAssignments
	affiliations *fakeAffiliations
	requests     *fakeRequests
	payments     *fakePayments

	usersSvc        *Users
	inventorySvc    *Inventory
	affiliationsSvc *Affiliations
	assignmentsSvc  *Assignments
	packagesSvc     *Packages
	requestsSvc     *Requests
}

func newEnv() *env {
	e := &env{
		users:        newFakeUsers(),
		assets:       newFakeAssets(),
		assignments:  newFakeAssignments(),
		affiliations: newFakeAffiliations(),
		requests:     newFakeRequests(),
		payments:     newFakePayments(),
	}
	plans := &fakePlans{plans: []models.PackagePlan{
		{Name: "5 Members", EmployeesLimit: 5, Price: 5},
		{Name: "10 Members", EmployeesLimit: 10, Price: 8},
		{Name: "20 Members", EmployeesLimit: 20, Price: 15},
	}}

	e.usersSvc = NewUsers(e.users)
	e.inventorySvc = NewInventory(e.assets)
	e.affiliationsSvc = NewAffiliations(e.affiliations, e.users, e.assignments)
	e.assignmentsSvc = NewAssignments(e.assignments, e.inventorySvc, e.affiliationsSvc)
	e.packagesSvc = NewPackages(e.users, e.affiliations, e.payments, plans)
	e.requestsSvc = NewRequests(e.requests, e.assets, e.assignments, e.users, e.affiliationsSvc, e.packagesSvc)
	return e
}

func (e *env) addHR(email, company string, employeesLimit int) {
	e.users.byEmail[email] = models.User{
		ID:          primitive.NewObjectID(),
		Name:        "HR " + company,
		Email:       email,
		Role:        models.RoleHR,
		CompanyName: company,
		CompanyID:   "1700000000000",
		Package: &models.Package{
			Name:           "Default Free Package",
			EmployeesLimit: employeesLimit,
			ActivatedAt:    time.Now().UTC(),
		},
		CreatedAt: time.Now().UTC(),
	}
}

func (e *env) addEmployee(email, name string) {
	e.users.byEmail[email] = models.User{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Email:     email,
		Role:      models.RoleEmployee,
		Status:    models.EmployeeStatusUnassigned,
		CreatedAt: time.Now().UTC(),
	}
}

func (e *env) addAffiliation(hrEmail, employeeEmail, employeeName string, date time.Time) primitive.ObjectID {
	id := primitive.NewObjectID()
	e.affiliations.rows = append(e.affiliations.rows, models.Affiliation{
		ID:              id,
		HREmail:         hrEmail,
		EmployeeEmail:   employeeEmail,
		EmployeeName:    employeeName,
		AffiliationDate: date,
		Status:          models.AffiliationStatusActive,
	})
	// Mirror Affiliate: the employee account carries the HR's company and
	// an affiliated status while an active affiliation exists.
	if hr, ok := e.users.byEmail[hrEmail]; ok {
		if emp, ok := e.users.byEmail[employeeEmail]; ok && emp.Role == models.RoleEmployee {
			emp.CompanyID = hr.CompanyID
			emp.CompanyName = hr.CompanyName
			emp.Status = models.EmployeeStatusAffiliated
			e.users.byEmail[employeeEmail] = emp
		}
	}
	return id
}

func (e *env) addAsset(hrEmail, company, name, productType string, qty int) primitive.ObjectID {
	id := primitive.NewObjectID()
	e.assets.byID[id] = models.Asset{
		ID:                id,
		ProductName:       name,
		ProductImage:      "https://img.example.com/" + name + ".png",
		ProductType:       productType,
		HREmail:           hrEmail,
		CompanyName:       company,
		AvailableQuantity: qty,
		CreatedAt:         time.Now().UTC(),
	}
	return id
}

func (e *env) asset(id primitive.ObjectID) models.Asset {
	e.assets.mu.Lock()
	defer e.assets.mu.Unlock()
	return e.assets.byID[id]
}

func (e *env) request(id primitive.ObjectID) models.AssetRequest {
	e.requests.mu.Lock()
	defer e.requests.mu.Unlock()
	return e.requests.byID[id]
}

func (e *env) user(email string) models.User {
	e.users.mu.Lock()
	defer e.users.mu.Unlock()
	return e.users.byEmail[email]
}

func wantKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}
	if !apperr.Is(err, kind) {
		t.Fatalf("expected %v error, got: %v", kind, err)
	}
}
