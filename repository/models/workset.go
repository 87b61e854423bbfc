package models

import "time"

// Workset represents one unit of operational work (a load or discharge
// job) against which containers and operations are scoped
type Workset struct {
	ID        uint      `gorm:"column:id;primaryKey" json:"id"`
	VoyageID  uint      `gorm:"column:voyage_id;index;not null" json:"voyage_id"`
	Voyage    *Voyage   `gorm:"foreignKey:VoyageID" json:"-"`
	Type      string    `gorm:"column:type;type:varchar(20);default:'OPERATION'" json:"type"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	Containers []Container `gorm:"foreignKey:WorksetID" json:"-"`
	Operations []Operation `gorm:"foreignKey:WorksetID" json:"-"`
}
