package models

import (
	"time"
)

// 用户角色
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// 性别
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// User 用户模型
type User struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName string `json:"first_name" gorm:"type:varchar(30);not null"`
	LastName  string `json:"last_name" gorm:"type:varchar(30);not null"`
	Email     string `json:"email" gorm:"unique;not null"`
	Password  string `json:"-" gorm:"not null"`
	Phone     string `json:"phone"`
	Gender    string `json:"gender" gorm:"type:varchar(10);default:'other'"`
	Role      string `json:"role" gorm:"type:varchar(10);default:'user'"`
	Confirmed bool   `json:"confirmed" gorm:"default:false"`
	IsDeleted bool   `json:"is_deleted" gorm:"default:false"`

	// 密码/邮箱变更时间，早于它签发的 token 一律失效
	PasswordChangedAt *time.Time `json:"-" gorm:"default:NULL"`
	EmailChangedAt    *time.Time `json:"-" gorm:"default:NULL"`

	LastLogin *time.Time `json:"last_login" gorm:"default:NULL"` // 允许 NULL

	Friends      []*User `gorm:"many2many:user_friends;joinForeignKey:UserID;joinReferences:FriendID" json:"friends,omitempty"`
	BlockedUsers []*User `gorm:"many2many:user_blocks;joinForeignKey:UserID;joinReferences:BlockedID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
