package models

import "time"

// EdiImport is the write-once audit record of one manifest import. The
// raw payload itself lives in the badger archive under the same ID.
type EdiImport struct {
	ID               string    `gorm:"column:id;primaryKey;type:varchar(36)" json:"id"`
	WorksetID        uint      `gorm:"column:workset_id;index;not null" json:"workset_id"`
	Workset          *Workset  `gorm:"foreignKey:WorksetID" json:"-"`
	FileName         string    `gorm:"column:file_name;type:varchar(255)" json:"file_name"`
	OperationType    string    `gorm:"column:operation_type;type:varchar(10);not null" json:"operation_type"`
	ByteSize         int       `gorm:"column:byte_size;not null" json:"byte_size"`
	ContainersParsed int       `gorm:"column:containers_parsed;not null" json:"containers_parsed"`
	ContainersSaved  int       `gorm:"column:containers_saved;not null" json:"containers_saved"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	// Relationships
	StowageUnits []StowageUnit `gorm:"foreignKey:EdiImportID" json:"-"`
}
