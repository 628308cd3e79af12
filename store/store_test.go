package store

import (
	"context"
	"testing"
	"time"

	"github.com/ariebrainware/biosecure-portal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreSuite exercises a backend through the Store interface.
func runStoreSuite(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("register and find shop", func(t *testing.T) {
		s := newStore(t)
		shop := &model.VetShop{ShopName: "Sri Murugan Vet Store", OwnerName: "Karthik", Phone: "9876543210", Address: "12 Market Road", Location: "Salem"}
		require.NoError(t, s.CreateShop(ctx, shop))
		assert.NotEmpty(t, shop.ID)
		assert.False(t, shop.CreatedAt.IsZero())

		got, err := s.FindShopByPhone(ctx, "9876543210")
		require.NoError(t, err)
		assert.Equal(t, shop.ID, got.ID)
		assert.Equal(t, "Sri Murugan Vet Store", got.ShopName)
		assert.Equal(t, "Salem", got.Location)

		_, err = s.FindDoctorByPhone(ctx, "9876543210")
		assert.ErrorIs(t, err, ErrNotFound)

		acct, err := FindAccount(ctx, s, model.RoleVetShop, "9876543210")
		require.NoError(t, err)
		assert.IsType(t, &model.VetShop{}, acct)
	})

	t.Run("duplicate phone per role", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateDoctor(ctx, &model.VetDoctor{HospitalName: "Salem Veterinary Hospital", DoctorName: "Dr. Priya", Phone: "9123400000", Location: "Salem"}))
		err := s.CreateDoctor(ctx, &model.VetDoctor{HospitalName: "Other", DoctorName: "Dr. Other", Phone: "9123400000", Location: "Erode"})
		assert.ErrorIs(t, err, ErrDuplicate)

		// the same phone may hold an account of the other role
		require.NoError(t, s.CreateShop(ctx, &model.VetShop{ShopName: "Shop", OwnerName: "Owner", Phone: "9123400000", Location: "Salem"}))
	})

	t.Run("invalid records are not written", func(t *testing.T) {
		s := newStore(t)
		err := s.CreateShop(ctx, &model.VetShop{ShopName: "Shop", OwnerName: "Owner", Phone: "12345", Location: "Salem"})
		assert.ErrorIs(t, err, model.ErrInvalidPhone)
		_, err = s.FindShopByPhone(ctx, "12345")
		assert.ErrorIs(t, err, ErrNotFound)

		err = s.CreateFarmer(ctx, &model.Farmer{ShopName: "Shop", FarmerPhone: "9123456789"})
		assert.ErrorIs(t, err, model.ErrMissingField)
	})

	t.Run("farmers by shop", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateFarmer(ctx, &model.Farmer{ShopName: "A", FarmerName: "Ravi", FarmerPhone: "9123456789"}))
		require.NoError(t, s.CreateFarmer(ctx, &model.Farmer{ShopName: "B", FarmerName: "Mani", FarmerPhone: "9123456780"}))

		farmers, err := s.ListFarmersByShop(ctx, "A")
		require.NoError(t, err)
		require.Len(t, farmers, 1)
		assert.Equal(t, "Ravi", farmers[0].FarmerName)
	})

	t.Run("browse by district", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.CreateDoctor(ctx, &model.VetDoctor{HospitalName: "H1", DoctorName: "D1", Phone: "9000000001", Location: "Salem"}))
		require.NoError(t, s.CreateDoctor(ctx, &model.VetDoctor{HospitalName: "H2", DoctorName: "D2", Phone: "9000000002", Location: "Erode"}))
		require.NoError(t, s.CreateShop(ctx, &model.VetShop{ShopName: "S1", OwnerName: "O1", Phone: "9000000003", Location: "Salem"}))

		doctors, err := s.ListDoctorsByDistrict(ctx, "Salem")
		require.NoError(t, err)
		require.Len(t, doctors, 1)
		assert.Equal(t, "D1", doctors[0].DoctorName)

		shops, err := s.ListShopsByDistrict(ctx, "Madurai")
		require.NoError(t, err)
		assert.Empty(t, shops)
	})

	t.Run("queries by location newest first", func(t *testing.T) {
		s := newStore(t)
		base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		insert := func(location string, offset time.Duration, farmer *model.FarmerSnapshot) {
			t.Helper()
			require.NoError(t, s.CreateDiseaseQuery(ctx, &model.DiseaseQuery{
				ShopName:   "Shop",
				Phone:      "9876543210",
				Location:   location,
				InputData:  model.SymptomInput{Species: "Pig", ClinicalSigns: "fever", DaysNotWell: 3},
				Prediction: map[string]string{"disease": "African Swine Fever"},
				Timestamp:  base.Add(offset),
				Farmer:     farmer,
			}))
		}
		insert("Salem", 0, nil)
		insert("Erode", time.Minute, nil)
		insert("Salem", 2*time.Hour, &model.FarmerSnapshot{FarmerName: "Ravi", FarmerPhone: "9123456789"})
		insert("Salem", time.Hour, nil)

		queries, err := s.ListQueriesByLocation(ctx, "Salem")
		require.NoError(t, err)
		require.Len(t, queries, 3)
		for _, q := range queries {
			assert.Equal(t, "Salem", q.Location)
		}
		assert.True(t, queries[0].Timestamp.Equal(base.Add(2*time.Hour)))
		assert.True(t, queries[1].Timestamp.Equal(base.Add(time.Hour)))
		assert.True(t, queries[2].Timestamp.Equal(base))

		require.NotNil(t, queries[0].Farmer)
		assert.Equal(t, "Ravi", queries[0].Farmer.FarmerName)
		assert.Nil(t, queries[1].Farmer)
		assert.Equal(t, "African Swine Fever", queries[1].Prediction["disease"])
		assert.Equal(t, 3, queries[1].InputData.DaysNotWell)
	})

	t.Run("query without prediction is rejected", func(t *testing.T) {
		s := newStore(t)
		err := s.CreateDiseaseQuery(ctx, &model.DiseaseQuery{
			ShopName:  "Shop",
			Phone:     "9876543210",
			Location:  "Salem",
			InputData: model.SymptomInput{Species: "Pig", DaysNotWell: 3},
			Timestamp: time.Now(),
		})
		assert.ErrorIs(t, err, model.ErrMissingField)
	})

	t.Run("record activity", func(t *testing.T) {
		s := newStore(t)
		entry := &model.ActivityLog{EventType: "LOGIN_SUCCESS", Actor: "9876543210", Role: string(model.RoleVetShop)}
		require.NoError(t, s.RecordActivity(ctx, entry))
		assert.NotEmpty(t, entry.ID)
	})
}
