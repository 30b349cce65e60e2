package models

// User represents the user model in the database
type User struct {
	Base
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Password string    `gorm:"not null" json:"-"`
	Expenses []Expense `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}
