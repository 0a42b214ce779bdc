package dao

import (
	"context"

	"studybuddy/models"

	"gorm.io/gorm"
)

type UpvoteDAO struct {
	Repo[models.Upvote]
}

func NewUpvoteDAO(db *gorm.DB) *UpvoteDAO {
	return &UpvoteDAO{Repo: NewRepo[models.Upvote](db)}
}

// IncrementIfAbsent 原子地记录点赞并给笔记计数 +1
// 已点赞过返回 applied=false; 笔记不存在返回 gorm.ErrRecordNotFound 且不留下点赞记录
func (d *UpvoteDAO) IncrementIfAbsent(ctx context.Context, userID, noteID string) (bool, error) {
	applied := false
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Exec(
			"INSERT IGNORE INTO user_upvotes (user_id, resource_id, created_at) VALUES (?, ?, NOW())",
			userID, noteID,
		)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		res = tx.Exec("UPDATE resources SET upvotes = upvotes + 1 WHERE id = ?", noteID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// HasUpvoted 用户是否点赞过该笔记
func (d *UpvoteDAO) HasUpvoted(ctx context.Context, userID, noteID string) (bool, error) {
	return d.IsExist(ctx, "user_id = ? AND resource_id = ?", userID, noteID)
}
