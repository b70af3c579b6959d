package postgres

import (
	"context"

	"github.com/yoockh/bikeparts/internal/models"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Insert(ctx context.Context, e *models.AuditEntry) error
	ListByActor(ctx context.Context, actor string, limit int) ([]models.AuditEntry, error)
}

type auditRepo struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepository {
	return &auditRepo{db: db}
}

func (r *auditRepo) Insert(ctx context.Context, e *models.AuditEntry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *auditRepo) ListByActor(ctx context.Context, actor string, limit int) ([]models.AuditEntry, error) {
	q := r.db.WithContext(ctx).
		Where("actor = ?", actor).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var out []models.AuditEntry
	err := q.Find(&out).Error
	return out, err
}
