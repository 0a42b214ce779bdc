package types

import "time"

// Note 笔记, 字段名与表 resources 一致
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	UserEmail string    `json:"user_email"`
	FileURL   *string   `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
	Upvotes   int64     `json:"upvotes"`
}

// CreateNoteRequest 创建笔记请求, user_email 由服务端从令牌中取
type CreateNoteRequest struct {
	Title   string  `json:"title" binding:"required,max=200"`
	Subject string  `json:"subject" binding:"required,max=100"`
	FileURL *string `json:"file_url"`
}

type UpvoteResponse struct {
	Applied bool `json:"applied"`
}

type UpvoteStatusResponse struct {
	HasUpvoted bool `json:"has_upvoted"`
}
