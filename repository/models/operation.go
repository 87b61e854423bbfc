package models

import "time"

// Operation indexes one (bay, area) pair that has work in a workset. Rows
// are append-only per import and deliberately not deduplicated against
// prior imports into the same workset.
type Operation struct {
	ID            uint      `gorm:"column:id;primaryKey" json:"-"`
	WorksetID     uint      `gorm:"column:workset_id;index;not null" json:"workset_id"`
	Workset       *Workset  `gorm:"foreignKey:WorksetID" json:"-"`
	OperationType string    `gorm:"column:operation_type;type:varchar(10);not null" json:"operation_type"`
	Bay           int       `gorm:"column:bay;not null" json:"bay"`
	Area          string    `gorm:"column:area;type:varchar(10);not null" json:"area"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}
