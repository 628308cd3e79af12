package model

import "time"

// Farmer is registered by a vet shop. ShopName refers to the owning shop by name.
type Farmer struct {
	ID          string    `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	ShopName    string    `json:"shop_name" gorm:"column:shop_name;index" bson:"shop_name" example:"Sri Murugan Vet Store"`
	FarmerName  string    `json:"farmer_name" gorm:"column:farmer_name" bson:"farmer_name" example:"Ravi"`
	FarmerPhone string    `json:"farmer_phone" gorm:"column:farmer_phone;size:10" bson:"farmer_phone" example:"9123456789"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

func (Farmer) TableName() string { return CollectionFarmers }

func (f Farmer) Validate() error {
	if err := requireFields([][2]string{
		{"shop_name", f.ShopName},
		{"farmer_name", f.FarmerName},
		{"farmer_phone", f.FarmerPhone},
	}); err != nil {
		return err
	}
	return ValidatePhone(f.FarmerPhone)
}

// Snapshot copies the fields a disease query keeps about the farmer.
func (f Farmer) Snapshot() *FarmerSnapshot {
	return &FarmerSnapshot{FarmerName: f.FarmerName, FarmerPhone: f.FarmerPhone}
}

// FarmerSnapshot is the farmer as seen at the time a query was submitted.
type FarmerSnapshot struct {
	FarmerName  string `json:"farmer_name" bson:"farmer_name"`
	FarmerPhone string `json:"farmer_phone" bson:"farmer_phone"`
}
