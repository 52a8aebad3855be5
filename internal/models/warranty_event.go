package models

import (
	"time"

	"gorm.io/datatypes"
)

// WarrantyEvent is an append-only activity row for a warranty ticket
// (CREATED, STATUS_CHANGED). EventData holds the type-specific payload.
type WarrantyEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	WarrantyID  uint           `gorm:"not null;index" json:"warranty_id"`
	EventType   string         `gorm:"size:30;not null" json:"event_type"`
	ActorUserID *uint          `json:"actor_user_id"`
	EventData   datatypes.JSON `gorm:"type:json" json:"event_data"`
	CreatedAt   time.Time      `json:"createdAt"`
}

func (WarrantyEvent) TableName() string {
	return "warranty_events"
}
