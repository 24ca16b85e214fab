package model

type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

type User struct {
	ID    int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string `gorm:"type:varchar(255)" json:"name"`
	Email string `gorm:"uniqueIndex;not null" json:"email"`
	// bcryptハッシュを保存する（平文は保存しない）。レスポンスには出さない。
	Password string `gorm:"not null" json:"-"`
	Role     Role   `gorm:"type:varchar(20);not null;default:'CUSTOMER'" json:"role"`
}
