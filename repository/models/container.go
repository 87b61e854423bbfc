package models

import "time"

// Container statuses. Status only changes via the explicit done/undone
// operations, never on re-import.
const (
	StatusPending = "PENDING"
	StatusDone    = "DONE"
)

// Container represents one container of a workset with its stowage
// position. Uniqueness is per (workset_id, container_no); re-importing a
// manifest overwrites the position fields of an existing row.
type Container struct {
	ID          uint       `gorm:"column:id;primaryKey" json:"-"`
	WorksetID   uint       `gorm:"column:workset_id;uniqueIndex:idx_workset_container;not null" json:"workset_id"`
	Workset     *Workset   `gorm:"foreignKey:WorksetID" json:"-"`
	ContainerNo string     `gorm:"column:container_no;type:varchar(20);uniqueIndex:idx_workset_container;not null" json:"container_no"`
	ISOType     string     `gorm:"column:iso_type;type:varchar(10)" json:"iso_type"`
	Bay         int        `gorm:"column:bay;not null" json:"bay"`
	Row         int        `gorm:"column:row;not null" json:"row"`
	Tier        int        `gorm:"column:tier;not null" json:"tier"`
	Area        string     `gorm:"column:area;type:varchar(10);not null" json:"area"`
	Status      string     `gorm:"column:status;type:varchar(10);default:'PENDING'" json:"status"`
	DoneAt      *time.Time `gorm:"column:done_at" json:"done_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"-"`
}
