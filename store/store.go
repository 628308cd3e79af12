// Package store persists portal records. Both backends share the same record shapes and
// sentinel errors so handlers do not care which one is configured.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
)

// Store is implemented by the MongoDB and GORM backends.
type Store interface {
	CreateShop(ctx context.Context, shop *model.VetShop) error
	CreateDoctor(ctx context.Context, doctor *model.VetDoctor) error
	FindShopByPhone(ctx context.Context, phone string) (*model.VetShop, error)
	FindDoctorByPhone(ctx context.Context, phone string) (*model.VetDoctor, error)

	CreateFarmer(ctx context.Context, farmer *model.Farmer) error
	ListFarmersByShop(ctx context.Context, shopName string) ([]model.Farmer, error)

	// CreateDiseaseQuery appends a query. Queries are never updated or deleted.
	CreateDiseaseQuery(ctx context.Context, q *model.DiseaseQuery) error
	// ListQueriesByLocation returns every query for the location, newest first.
	ListQueriesByLocation(ctx context.Context, location string) ([]model.DiseaseQuery, error)

	ListDoctorsByDistrict(ctx context.Context, district string) ([]model.VetDoctor, error)
	ListShopsByDistrict(ctx context.Context, district string) ([]model.VetShop, error)

	RecordActivity(ctx context.Context, entry *model.ActivityLog) error

	Close(ctx context.Context) error
}

// FindAccount looks up the account of the given role by phone.
// The returned value is *model.VetShop or *model.VetDoctor.
func FindAccount(ctx context.Context, s Store, role model.Role, phone string) (interface{}, error) {
	switch role {
	case model.RoleVetShop:
		return s.FindShopByPhone(ctx, phone)
	case model.RoleVetDoctor:
		return s.FindDoctorByPhone(ctx, phone)
	}
	return nil, ErrNotFound
}

// stamp fills the id and creation time the application owns.
func stamp(id *string, created *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	if created.IsZero() {
		*created = time.Now().UTC()
	}
}
