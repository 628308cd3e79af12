package model

import "time"

// VetShop represents a registered veterinary shop
// @Description Vet shop information
type VetShop struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36" bson:"_id" example:"3f1c0b6e-1f7a-4c55-9d0e-7f2d1b0c9a11"`
	ShopName  string    `json:"shop_name" gorm:"column:shop_name;not null" bson:"shop_name" example:"Sri Murugan Vet Store"`
	OwnerName string    `json:"owner_name" gorm:"column:owner_name" bson:"owner_name" example:"Karthik"`
	Phone     string    `json:"phone" gorm:"column:phone;size:10;uniqueIndex" bson:"phone" example:"9876543210"`
	Address   string    `json:"address" gorm:"column:address" bson:"address" example:"12 Market Road"`
	Location  string    `json:"location" gorm:"column:location;index" bson:"location" example:"Salem"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

func (VetShop) TableName() string { return CollectionVetShops }

// Validate checks required fields and the phone format.
func (s VetShop) Validate() error {
	if err := requireFields([][2]string{
		{"shop_name", s.ShopName},
		{"owner_name", s.OwnerName},
		{"phone", s.Phone},
		{"location", s.Location},
	}); err != nil {
		return err
	}
	return ValidatePhone(s.Phone)
}
