package model

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog represents a persisted portal event (logins, registrations, endpoint calls).
type ActivityLog struct {
	ID        string `json:"id" gorm:"primaryKey;size:36" bson:"_id"`
	EventType string `json:"event_type" gorm:"column:event_type;type:varchar(64);index" bson:"event_type"`
	// Actor is the phone number of the account involved, when known.
	Actor     string `json:"actor" gorm:"column:actor;type:varchar(32);index" bson:"actor"`
	Role      string `json:"role" gorm:"column:role;type:varchar(32)" bson:"role"`
	IP        string `json:"ip" gorm:"column:ip;type:varchar(45)" bson:"ip"`
	// Location stores city and country in the format "City/Country" when available.
	Location  string            `json:"location" gorm:"column:location;type:varchar(255)" bson:"location"`
	UserAgent string            `json:"user_agent" gorm:"column:user_agent;type:varchar(512)" bson:"user_agent"`
	Message   string            `json:"message" gorm:"column:message;type:text" bson:"message"`
	Details   datatypes.JSONMap `json:"details" gorm:"column:details" bson:"details,omitempty"`
	CreatedAt time.Time         `json:"created_at" gorm:"index" bson:"created_at"`
}

func (ActivityLog) TableName() string { return CollectionActivityLogs }
