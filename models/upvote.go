package models

import "time"

// Upvote 点赞记录, 对应表 user_upvotes
// 唯一键: user_id + resource_id, 每个用户对每篇笔记至多一条
type Upvote struct {
	ID         uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID     string    `gorm:"column:user_id;type:varchar(36);not null;uniqueIndex:uk_user_resource,priority:1" json:"user_id"`
	ResourceID string    `gorm:"column:resource_id;type:varchar(32);not null;uniqueIndex:uk_user_resource,priority:2;index:idx_resource" json:"resource_id"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Upvote) TableName() string { return "user_upvotes" }
