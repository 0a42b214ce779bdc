package dao

import (
	"context"

	"studybuddy/models"

	"gorm.io/gorm"
)

type NoteDAO struct {
	Repo[models.Note]
}

func NewNoteDAO(db *gorm.DB) *NoteDAO {
	return &NoteDAO{Repo: NewRepo[models.Note](db)}
}

// ListAll 全部笔记, 最新在前
func (d *NoteDAO) ListAll(ctx context.Context) ([]*models.Note, error) {
	return d.FindAll(ctx, "created_at DESC", "")
}

// FindByUserEmail 根据上传者邮箱查询
func (d *NoteDAO) FindByUserEmail(ctx context.Context, email string) ([]*models.Note, error) {
	return d.FindAll(ctx, "created_at DESC", "user_email = ?", email)
}

// Subjects 去重后的科目列表
func (d *NoteDAO) Subjects(ctx context.Context) ([]string, error) {
	subjects := make([]string, 0)
	err := d.Db.WithContext(ctx).
		Model(&models.Note{}).
		Distinct("subject").
		Order("subject").
		Pluck("subject", &subjects).Error
	return subjects, err
}

// Delete 删除笔记及其点赞记录, 返回是否删到了笔记
func (d *NoteDAO) Delete(ctx context.Context, id string) (bool, error) {
	var affected int64
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("resource_id = ?", id).Delete(&models.Upvote{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.Note{})
		affected = res.RowsAffected
		return res.Error
	})
	return affected > 0, err
}

// DeleteByUserEmail 删除某用户的全部笔记, 返回被删除的记录(用于清理文件)
func (d *NoteDAO) DeleteByUserEmail(ctx context.Context, email string) ([]*models.Note, error) {
	var notes []*models.Note
	err := d.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_email = ?", email).Find(&notes).Error; err != nil {
			return err
		}
		if len(notes) == 0 {
			return nil
		}
		ids := make([]string, 0, len(notes))
		for _, n := range notes {
			ids = append(ids, n.ID)
		}
		if err := tx.Where("resource_id IN ?", ids).Delete(&models.Upvote{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&models.Note{}).Error
	})
	return notes, err
}

type emailCount struct {
	UserEmail string `gorm:"column:user_email"`
	Total     int64  `gorm:"column:total"`
}

// CountByUserEmails 每个邮箱的笔记数量
func (d *NoteDAO) CountByUserEmails(ctx context.Context, emails []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(emails))
	if len(emails) == 0 {
		return counts, nil
	}
	var rows []emailCount
	err := d.Db.WithContext(ctx).
		Model(&models.Note{}).
		Select("user_email, COUNT(*) AS total").
		Where("user_email IN ?", emails).
		Group("user_email").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		counts[r.UserEmail] = r.Total
	}
	return counts, nil
}
