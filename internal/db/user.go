package db

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User 定义后台账号模型，以邮箱作为登录名。
// ConfirmedAt 为空的账号尚未确认邮箱，不能登录。
type User struct {
	Record
	Email       string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"not null" json:"-"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
}

// Confirmed 报告账号是否已确认。
func (u *User) Confirmed() bool {
	return u.ConfirmedAt != nil
}

// EnsureUser 存在性检查：若提供的邮箱与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的用户。
// 种子账号总是处于已确认状态。
func EnsureUser(gdb *gorm.DB, email, password string) error {
	trimmedEmail := strings.ToLower(strings.TrimSpace(email))
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if gdb == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := gdb.Where("email = ?", trimmedEmail).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		confirmedAt := time.Now()
		return gdb.Create(&User{Email: trimmedEmail, Password: string(hashed), ConfirmedAt: &confirmedAt}).Error
	}

	if !existing.Confirmed() {
		return gdb.Model(&existing).Update("confirmed_at", time.Now()).Error
	}
	return nil
}
