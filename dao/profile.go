package dao

import (
	"context"
	"time"

	"studybuddy/models"

	"gorm.io/gorm"
)

type ProfileDAO struct {
	Repo[models.Profile]
}

func NewProfileDAO(db *gorm.DB) *ProfileDAO {
	return &ProfileDAO{Repo: NewRepo[models.Profile](db)}
}

// FindByEmail 邮箱查询
func (p *ProfileDAO) FindByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return p.FindByWhere(ctx, "email = ?", email)
}

func (p *ProfileDAO) IsEmailExist(ctx context.Context, email string) (bool, error) {
	return p.IsExist(ctx, "email = ?", email)
}

func (p *ProfileDAO) List(ctx context.Context) ([]*models.Profile, error) {
	return p.FindAll(ctx, "created_at ASC", "")
}

func (p *ProfileDAO) UpdateRole(ctx context.Context, id, role string) error {
	_, err := p.UpdateById(ctx, id, map[string]any{"role": role})
	return err
}

func (p *ProfileDAO) UpdatePassword(ctx context.Context, id, hash string) error {
	affected, err := p.UpdateById(ctx, id, map[string]any{"password_hash": hash})
	if err != nil {
		return err
	}
	if affected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (p *ProfileDAO) MarkConfirmed(ctx context.Context, id string) error {
	_, err := p.UpdateById(ctx, id, map[string]any{"confirmed_at": time.Now()})
	return err
}
