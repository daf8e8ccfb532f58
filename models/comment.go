package models

import "time"

// Comment 评论模型，CommentID 非空时表示对评论的回复
type Comment struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Content   string `gorm:"type:text;not null" json:"content"`
	PostID    uint   `gorm:"index" json:"post_id"`
	CommentID *uint  `gorm:"index;default:NULL" json:"comment_id,omitempty"`
	UserID    uint   `gorm:"index" json:"user_id"`
	User      User   `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Likes []*User `gorm:"many2many:comment_likes" json:"likes,omitempty"`

	IsDeleted bool  `json:"is_deleted" gorm:"default:false"`
	DeletedBy *uint `json:"deleted_by,omitempty" gorm:"default:NULL"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
