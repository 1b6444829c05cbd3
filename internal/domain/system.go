package domain

import "time"

// SysOpr is an operator account for the admin API.
type SysOpr struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Realname  string    `gorm:"size:200" json:"realname"`
	Email     string    `gorm:"size:200" json:"email"`
	Username  string    `gorm:"size:100;uniqueIndex" json:"username"`
	Password  string    `gorm:"size:200" json:"-"` // bcrypt hash
	Level     string    `gorm:"size:20" json:"level"`
	Status    string    `gorm:"size:20;default:'enabled'" json:"status"`
	Remark    string    `gorm:"size:200" json:"remark"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
