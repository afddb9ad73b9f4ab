package models

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User roles. RolDeveloper is the privileged caller allowed to settle the
// monthly commission.
const (
	RolAdmin     = "ADMIN"
	RolDeveloper = "DESARROLLADOR"
)

type User struct {
	Id       string `json:"id" gorm:"primaryKey"`
	Nombre   string `json:"nombre" gorm:"not null"`
	Email    string `json:"email" gorm:"unique;not null"`
	Password []byte `json:"-" gorm:"not null"`
	Rol      string `json:"rol" gorm:"size:20;not null;default:ADMIN"`
}

func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	// UUID version 4
	user.Id = uuid.NewString()
	return
}

func (user *User) SetPassword(password string) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(password), 12)
	user.Password = hashedPassword
}

func (user *User) ComparePassword(password string) error {
	return bcrypt.CompareHashAndPassword(user.Password, []byte(password))
}
