package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariebrainware/biosecure-portal/model"
	"gorm.io/gorm"
)

// GormStore keeps records in a relational database (MySQL in production, SQLite in tests).
type GormStore struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the tables of every record type.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(
		&model.VetShop{},
		&model.VetDoctor{},
		&model.Farmer{},
		&model.DiseaseQuery{},
		&model.ActivityLog{},
	)
}

func (s *GormStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) CreateShop(ctx context.Context, shop *model.VetShop) error {
	if err := shop.Validate(); err != nil {
		return err
	}
	if _, err := s.FindShopByPhone(ctx, shop.Phone); err == nil {
		return fmt.Errorf("%w: vet shop %s", ErrDuplicate, shop.Phone)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	stamp(&shop.ID, &shop.CreatedAt)
	return s.create(ctx, shop, "vet shop")
}

func (s *GormStore) CreateDoctor(ctx context.Context, doctor *model.VetDoctor) error {
	if err := doctor.Validate(); err != nil {
		return err
	}
	if _, err := s.FindDoctorByPhone(ctx, doctor.Phone); err == nil {
		return fmt.Errorf("%w: vet doctor %s", ErrDuplicate, doctor.Phone)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	stamp(&doctor.ID, &doctor.CreatedAt)
	return s.create(ctx, doctor, "vet doctor")
}

func (s *GormStore) FindShopByPhone(ctx context.Context, phone string) (*model.VetShop, error) {
	var shop model.VetShop
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&shop).Error; err != nil {
		return nil, translateError(err, "vet shop")
	}
	return &shop, nil
}

func (s *GormStore) FindDoctorByPhone(ctx context.Context, phone string) (*model.VetDoctor, error) {
	var doctor model.VetDoctor
	if err := s.db.WithContext(ctx).Where("phone = ?", phone).First(&doctor).Error; err != nil {
		return nil, translateError(err, "vet doctor")
	}
	return &doctor, nil
}

func (s *GormStore) CreateFarmer(ctx context.Context, farmer *model.Farmer) error {
	if err := farmer.Validate(); err != nil {
		return err
	}
	stamp(&farmer.ID, &farmer.CreatedAt)
	return s.create(ctx, farmer, "farmer")
}

func (s *GormStore) ListFarmersByShop(ctx context.Context, shopName string) ([]model.Farmer, error) {
	farmers := []model.Farmer{}
	err := s.db.WithContext(ctx).Where("shop_name = ?", shopName).Order("created_at ASC").Find(&farmers).Error
	if err != nil {
		return nil, fmt.Errorf("list farmers: %w", err)
	}
	return farmers, nil
}

func (s *GormStore) CreateDiseaseQuery(ctx context.Context, q *model.DiseaseQuery) error {
	if err := q.Validate(); err != nil {
		return err
	}
	stamp(&q.ID, &q.Timestamp)
	q.Timestamp = q.Timestamp.UTC()
	return s.create(ctx, q, "disease query")
}

func (s *GormStore) ListQueriesByLocation(ctx context.Context, location string) ([]model.DiseaseQuery, error) {
	queries := []model.DiseaseQuery{}
	err := s.db.WithContext(ctx).Where("location = ?", location).Order("timestamp DESC").Find(&queries).Error
	if err != nil {
		return nil, fmt.Errorf("list disease queries: %w", err)
	}
	return queries, nil
}

func (s *GormStore) ListDoctorsByDistrict(ctx context.Context, district string) ([]model.VetDoctor, error) {
	doctors := []model.VetDoctor{}
	if err := s.db.WithContext(ctx).Where("location = ?", district).Find(&doctors).Error; err != nil {
		return nil, fmt.Errorf("list vet doctors: %w", err)
	}
	return doctors, nil
}

func (s *GormStore) ListShopsByDistrict(ctx context.Context, district string) ([]model.VetShop, error) {
	shops := []model.VetShop{}
	if err := s.db.WithContext(ctx).Where("location = ?", district).Find(&shops).Error; err != nil {
		return nil, fmt.Errorf("list vet shops: %w", err)
	}
	return shops, nil
}

func (s *GormStore) RecordActivity(ctx context.Context, entry *model.ActivityLog) error {
	stamp(&entry.ID, &entry.CreatedAt)
	return s.create(ctx, entry, "activity log")
}

func (s *GormStore) create(ctx context.Context, record interface{}, kind string) error {
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return translateError(err, kind)
	}
	return nil
}

func translateError(err error, kind string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, kind)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s", ErrDuplicate, kind)
	}
	return fmt.Errorf("%s: %w", kind, err)
}
