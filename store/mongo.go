package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariebrainware/biosecure-portal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore keeps each record type in its own collection of one database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongo(client *mongo.Client, db *mongo.Database) *MongoStore {
	return &MongoStore{client: client, db: db}
}

// EnsureIndexes creates the phone uniqueness and lookup indexes. Existing indexes are left alone.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)
	indexes := map[string][]mongo.IndexModel{
		model.CollectionVetShops: {
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "location", Value: 1}}},
		},
		model.CollectionVetDoctors: {
			{Keys: bson.D{{Key: "phone", Value: 1}}, Options: unique},
			{Keys: bson.D{{Key: "location", Value: 1}}},
		},
		model.CollectionFarmers: {
			{Keys: bson.D{{Key: "shop_name", Value: 1}}},
		},
		model.CollectionDiseaseQueries: {
			{Keys: bson.D{{Key: "location", Value: 1}, {Key: "timestamp", Value: -1}}},
		},
		model.CollectionActivityLogs: {
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
		},
	}
	for coll, models := range indexes {
		if _, err := s.db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) CreateShop(ctx context.Context, shop *model.VetShop) error {
	if err := shop.Validate(); err != nil {
		return err
	}
	if _, err := s.FindShopByPhone(ctx, shop.Phone); err == nil {
		return fmt.Errorf("%w: vet shop %s", ErrDuplicate, shop.Phone)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	stamp(&shop.ID, &shop.CreatedAt)
	return s.insert(ctx, model.CollectionVetShops, shop, "vet shop")
}

func (s *MongoStore) CreateDoctor(ctx context.Context, doctor *model.VetDoctor) error {
	if err := doctor.Validate(); err != nil {
		return err
	}
	if _, err := s.FindDoctorByPhone(ctx, doctor.Phone); err == nil {
		return fmt.Errorf("%w: vet doctor %s", ErrDuplicate, doctor.Phone)
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	stamp(&doctor.ID, &doctor.CreatedAt)
	return s.insert(ctx, model.CollectionVetDoctors, doctor, "vet doctor")
}

func (s *MongoStore) FindShopByPhone(ctx context.Context, phone string) (*model.VetShop, error) {
	var shop model.VetShop
	if err := s.findOne(ctx, model.CollectionVetShops, bson.M{"phone": phone}, &shop, "vet shop"); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (s *MongoStore) FindDoctorByPhone(ctx context.Context, phone string) (*model.VetDoctor, error) {
	var doctor model.VetDoctor
	if err := s.findOne(ctx, model.CollectionVetDoctors, bson.M{"phone": phone}, &doctor, "vet doctor"); err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (s *MongoStore) CreateFarmer(ctx context.Context, farmer *model.Farmer) error {
	if err := farmer.Validate(); err != nil {
		return err
	}
	stamp(&farmer.ID, &farmer.CreatedAt)
	return s.insert(ctx, model.CollectionFarmers, farmer, "farmer")
}

func (s *MongoStore) ListFarmersByShop(ctx context.Context, shopName string) ([]model.Farmer, error) {
	farmers := []model.Farmer{}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if err := s.findAll(ctx, model.CollectionFarmers, bson.M{"shop_name": shopName}, opts, &farmers); err != nil {
		return nil, fmt.Errorf("list farmers: %w", err)
	}
	return farmers, nil
}

func (s *MongoStore) CreateDiseaseQuery(ctx context.Context, q *model.DiseaseQuery) error {
	if err := q.Validate(); err != nil {
		return err
	}
	stamp(&q.ID, &q.Timestamp)
	return s.insert(ctx, model.CollectionDiseaseQueries, q, "disease query")
}

func (s *MongoStore) ListQueriesByLocation(ctx context.Context, location string) ([]model.DiseaseQuery, error) {
	queries := []model.DiseaseQuery{}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	if err := s.findAll(ctx, model.CollectionDiseaseQueries, bson.M{"location": location}, opts, &queries); err != nil {
		return nil, fmt.Errorf("list disease queries: %w", err)
	}
	return queries, nil
}

func (s *MongoStore) ListDoctorsByDistrict(ctx context.Context, district string) ([]model.VetDoctor, error) {
	doctors := []model.VetDoctor{}
	if err := s.findAll(ctx, model.CollectionVetDoctors, bson.M{"location": district}, options.Find(), &doctors); err != nil {
		return nil, fmt.Errorf("list vet doctors: %w", err)
	}
	return doctors, nil
}

func (s *MongoStore) ListShopsByDistrict(ctx context.Context, district string) ([]model.VetShop, error) {
	shops := []model.VetShop{}
	if err := s.findAll(ctx, model.CollectionVetShops, bson.M{"location": district}, options.Find(), &shops); err != nil {
		return nil, fmt.Errorf("list vet shops: %w", err)
	}
	return shops, nil
}

func (s *MongoStore) RecordActivity(ctx context.Context, entry *model.ActivityLog) error {
	stamp(&entry.ID, &entry.CreatedAt)
	return s.insert(ctx, model.CollectionActivityLogs, entry, "activity log")
}

func (s *MongoStore) insert(ctx context.Context, coll string, doc interface{}, kind string) error {
	if _, err := s.db.Collection(coll).InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", ErrDuplicate, kind)
		}
		return fmt.Errorf("insert %s: %w", kind, err)
	}
	return nil
}

func (s *MongoStore) findOne(ctx context.Context, coll string, filter bson.M, dst interface{}, kind string) error {
	err := s.db.Collection(coll).FindOne(ctx, filter).Decode(dst)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("%w: %s", ErrNotFound, kind)
	}
	if err != nil {
		return fmt.Errorf("find %s: %w", kind, err)
	}
	return nil
}

func (s *MongoStore) findAll(ctx context.Context, coll string, filter bson.M, opts *options.FindOptions, dst interface{}) error {
	cur, err := s.db.Collection(coll).Find(ctx, filter, opts)
	if err != nil {
		return err
	}
	return cur.All(ctx, dst)
}
