package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestActivityLogModel_Create(t *testing.T) {
	db := setupTestDB(t, "activity", &ActivityLog{})

	entry := ActivityLog{
		ID:        "a-1",
		EventType: "LOGIN_SUCCESS",
		Actor:     "9876543210",
		Role:      string(RoleVetShop),
		IP:        "192.168.1.1",
		Message:   "User logged in successfully",
	}
	assert.NoError(t, db.Create(&entry).Error)
	assert.NotZero(t, entry.CreatedAt)
}

func TestActivityLogModel_AllFields(t *testing.T) {
	db := setupTestDB(t, "activity_fields", &ActivityLog{})

	entry := ActivityLog{
		ID:        "a-2",
		EventType: "IDENTITY_SKIPPED",
		Actor:     "9876543210",
		Role:      string(RoleVetDoctor),
		IP:        "10.0.0.1",
		UserAgent: "Mozilla/5.0",
		Location:  "Salem/India",
		Message:   "identity gateway not configured",
		Details:   datatypes.JSONMap{"reason": "not configured"},
	}
	assert.NoError(t, db.Create(&entry).Error)

	var found ActivityLog
	assert.NoError(t, db.First(&found, "id = ?", "a-2").Error)
	assert.Equal(t, "IDENTITY_SKIPPED", found.EventType)
	assert.Equal(t, "9876543210", found.Actor)
	assert.Equal(t, "Salem/India", found.Location)
	assert.Equal(t, "not configured", found.Details["reason"])
}

func TestActivityLogModel_ListByEventType(t *testing.T) {
	db := setupTestDB(t, "activity_list", &ActivityLog{})

	for i, ev := range []string{"LOGIN_SUCCESS", "LOGIN_SUCCESS", "LOGIN_FAILURE"} {
		db.Create(&ActivityLog{ID: string(rune('a' + i)), EventType: ev})
	}

	var logs []ActivityLog
	assert.NoError(t, db.Where("event_type = ?", "LOGIN_SUCCESS").Find(&logs).Error)
	assert.Len(t, logs, 2)
}
