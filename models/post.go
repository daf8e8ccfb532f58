package models

import "time"

// Post 帖子模型
type Post struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Content string `gorm:"type:text;not null" json:"content"`
	UserID  uint   `gorm:"index" json:"user_id"`
	User    User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Likes []*User `gorm:"many2many:post_likes" json:"likes,omitempty"`

	// 冻结（软删除）：记录操作人，只有本人能解冻
	IsDeleted bool  `json:"is_deleted" gorm:"default:false"`
	DeletedBy *uint `json:"deleted_by,omitempty" gorm:"default:NULL"`

	IsArchived bool       `json:"is_archived" gorm:"default:false"`
	ArchivedAt *time.Time `json:"archived_at,omitempty" gorm:"default:NULL"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
