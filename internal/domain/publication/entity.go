package publication

// Publication is a titled, categorised record with one image.
type Publication struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title       string `gorm:"column:titulo;not null" json:"titulo"`
	Description string `gorm:"column:descripcion;not null" json:"descripcion"`
	Image       string `gorm:"column:imagen;not null" json:"imagen"` // file store reference
	Category    string `gorm:"column:categoria;not null" json:"categoria"`
}

func (Publication) TableName() string { return "publicaciones" }
