package banner

// Banner is an image-only promotional record.
type Banner struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Image string `gorm:"column:imagen;not null" json:"imagen"`
}

func (Banner) TableName() string { return "banners" }
