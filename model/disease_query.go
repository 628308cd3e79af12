package model

import (
	"fmt"
	"time"
)

// SymptomInput is the sample a prediction is made from.
type SymptomInput struct {
	Species       string `json:"species" gorm:"column:species" bson:"species" example:"Pig"`
	ClinicalSigns string `json:"clinical_signs" gorm:"column:clinical_signs;type:text" bson:"clinical_signs" example:"fever, lethargy"`
	DaysNotWell   int    `json:"days_not_well" gorm:"column:days_not_well" bson:"days_not_well" example:"3"`
}

func (in SymptomInput) Validate() error {
	if err := requireFields([][2]string{{"species", in.Species}}); err != nil {
		return err
	}
	if in.DaysNotWell < MinDaysNotWell || in.DaysNotWell > MaxDaysNotWell {
		return fmt.Errorf("%w: days_not_well must be between %d and %d", ErrOutOfRange, MinDaysNotWell, MaxDaysNotWell)
	}
	return nil
}

// DiseaseQuery is an append-only record of a prediction requested by a vet shop.
// ShopName, Phone and Location are copied from the shop when the query is created.
// @Description Disease query submitted by a vet shop
type DiseaseQuery struct {
	ID         string            `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	ShopName   string            `json:"shop_name" gorm:"column:shop_name" bson:"shop_name"`
	Phone      string            `json:"phone" gorm:"column:phone;size:10" bson:"phone"`
	Location   string            `json:"location" gorm:"column:location;index" bson:"location"`
	InputData  SymptomInput      `json:"input_data" gorm:"embedded;embeddedPrefix:input_" bson:"input_data"`
	Prediction map[string]string `json:"prediction" gorm:"column:prediction;serializer:json" bson:"prediction"`
	Timestamp  time.Time         `json:"timestamp" gorm:"column:timestamp;index" bson:"timestamp"`
	Farmer     *FarmerSnapshot   `json:"farmer,omitempty" gorm:"column:farmer;serializer:json" bson:"farmer,omitempty"`
}

func (DiseaseQuery) TableName() string { return CollectionDiseaseQueries }

func (q DiseaseQuery) Validate() error {
	if err := requireFields([][2]string{
		{"shop_name", q.ShopName},
		{"phone", q.Phone},
		{"location", q.Location},
	}); err != nil {
		return err
	}
	if err := q.InputData.Validate(); err != nil {
		return err
	}
	if len(q.Prediction) == 0 {
		return fmt.Errorf("%w: prediction", ErrMissingField)
	}
	if q.Timestamp.IsZero() {
		return fmt.Errorf("%w: timestamp", ErrMissingField)
	}
	return nil
}
