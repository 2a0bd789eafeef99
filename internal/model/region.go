package model

// Region is a Chilean administrative region.
type Region struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Nombre string `gorm:"type:varchar(100);not null" json:"nombre"`

	Comunas []Comuna `gorm:"foreignKey:RegionID" json:"-"`
}

func (Region) TableName() string { return "region" }

type Comuna struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Nombre   string `gorm:"type:varchar(100);not null" json:"nombre"`
	RegionID uint   `gorm:"not null;index" json:"region_id"`

	Region *Region `gorm:"foreignKey:RegionID" json:"-"`
}

func (Comuna) TableName() string { return "comuna" }

// Direccion is the postal address of an employee. The comuna, when set,
// must belong to the region; services check it against the database.
type Direccion struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	CodigoPostal *string `gorm:"type:varchar(10)" json:"codigo_postal"`
	Ciudad       string  `gorm:"type:varchar(50);not null" json:"ciudad"`
	RegionID     *uint   `gorm:"index" json:"region_id"`
	ComunaID     *uint   `gorm:"index" json:"comuna_id"`

	Region *Region `gorm:"foreignKey:RegionID" json:"-"`
	Comuna *Comuna `gorm:"foreignKey:ComunaID" json:"-"`
}

func (Direccion) TableName() string { return "direccion" }
