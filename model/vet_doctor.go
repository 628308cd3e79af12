package model

import "time"

// VetDoctor represents a registered veterinary doctor
// @Description Vet doctor information
type VetDoctor struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36" bson:"_id" example:"9b2e6d7c-3a41-4f0e-8c1d-2e5f6a7b8c90"`
	HospitalName string    `json:"hospital_name" gorm:"column:hospital_name;not null" bson:"hospital_name" example:"Salem Veterinary Hospital"`
	DoctorName   string    `json:"doctor_name" gorm:"column:doctor_name" bson:"doctor_name" example:"Dr. Priya"`
	Phone        string    `json:"phone" gorm:"column:phone;size:10;uniqueIndex" bson:"phone" example:"9123400000"`
	Address      string    `json:"address" gorm:"column:address" bson:"address" example:"4 Hospital Street"`
	Location     string    `json:"location" gorm:"column:location;index" bson:"location" example:"Salem"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}

func (VetDoctor) TableName() string { return CollectionVetDoctors }

func (d VetDoctor) Validate() error {
	if err := requireFields([][2]string{
		{"hospital_name", d.HospitalName},
		{"doctor_name", d.DoctorName},
		{"phone", d.Phone},
		{"location", d.Location},
	}); err != nil {
		return err
	}
	return ValidatePhone(d.Phone)
}
