package models

// StowageUnit is a write-once copy of one parsed record of an import,
// independent of the live container table. Position columns are nullable
// because parse output may lack a usable position code.
type StowageUnit struct {
	ID          uint       `gorm:"column:id;primaryKey" json:"-"`
	EdiImportID string     `gorm:"column:edi_import_id;type:varchar(36);index;not null" json:"edi_import_id"`
	EdiImport   *EdiImport `gorm:"foreignKey:EdiImportID" json:"-"`
	ContainerNo string     `gorm:"column:container_no;type:varchar(20);not null" json:"container_no"`
	ISOType     string     `gorm:"column:iso_type;type:varchar(10)" json:"iso_type"`
	Bay         *int       `gorm:"column:bay" json:"bay"`
	Row         *int       `gorm:"column:row" json:"row"`
	Tier        *int       `gorm:"column:tier" json:"tier"`
	WeightKg    *float64   `gorm:"column:weight_kg;type:decimal(12,2)" json:"weight_kg"`
}
