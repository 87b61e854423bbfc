package models

import "time"

// Voyage represents one vessel call
type Voyage struct {
	ID         uint      `gorm:"column:id;primaryKey" json:"id"`
	VesselName string    `gorm:"column:vessel_name;type:varchar(100);not null" json:"vessel_name"`
	VoyageCode string    `gorm:"column:voyage_code;type:varchar(50);not null" json:"voyage_code"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	Worksets []Workset `gorm:"foreignKey:VoyageID" json:"-"`
}
