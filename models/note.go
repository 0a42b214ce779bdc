package models

import (
	"time"
)

// Note 学习笔记, 对应表 resources
// 字段名与线上 schema 保持一致: id, title, subject, user_email, file_url, created_at, upvotes
type Note struct {
	ID        string    `gorm:"column:id;type:varchar(32);primaryKey" json:"id"`
	Title     string    `gorm:"column:title;type:varchar(200);not null" json:"title"`
	Subject   string    `gorm:"column:subject;type:varchar(100);not null;index:idx_subject" json:"subject"`
	UserEmail string    `gorm:"column:user_email;type:varchar(255);not null;index:idx_user_email" json:"user_email"`
	FileURL   *string   `gorm:"column:file_url;type:varchar(1024)" json:"file_url"`
	CreatedAt time.Time `gorm:"column:created_at;not null;index:idx_created_at" json:"created_at"`
	Upvotes   int64     `gorm:"column:upvotes;not null;default:0" json:"upvotes"`
}

func (Note) TableName() string {
	return "resources"
}
