package model

// Productはカタログの商品1件。画像は最大2枚まで持てる。
// price / stockQuantityは元データに合わせてフリーテキストのまま保存する。
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Brand       string `gorm:"type:varchar(255);not null;default:''" json:"brand"`
	Name        string `gorm:"type:varchar(255)" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Category    string `gorm:"type:varchar(255)" json:"category"`

	Price         string `gorm:"type:varchar(255)" json:"price"`
	StockQuantity string `gorm:"type:varchar(255)" json:"stockQuantity"`

	ProductAvailable bool `gorm:"column:product_available" json:"productAvailable"`
	ReleaseDate      Date `gorm:"column:release_date" json:"releaseDate"`

	// 1枚目の画像スロット
	ImageName string `gorm:"column:image_name" json:"imageName"`
	ImageType string `gorm:"column:image_type" json:"imageType"`
	ImageData []byte `gorm:"column:image_data;type:bytea" json:"imageData"`

	// 2枚目の画像スロット（常に任意）
	ImageName2 string `gorm:"column:image_name2" json:"imageName2"`
	ImageType2 string `gorm:"column:image_type2" json:"imageType2"`
	ImageData2 []byte `gorm:"column:image_data2;type:bytea" json:"imageData2"`
}

// 元のスキーマに合わせて単数形テーブル名を使う。
func (Product) TableName() string {
	return "product"
}
