package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yoockh/bikeparts/internal/models"
	pgrepo "github.com/yoockh/bikeparts/internal/repositories/postgres"
	"github.com/yoockh/bikeparts/internal/utils"
	"gorm.io/datatypes"
)

type AuditRecord struct {
	Actor      string
	Action     string
	Resource   string
	ResourceID string
	Payload    models.Document
}

type AuditService interface {
	// Record never fails the caller; the audited write has already happened.
	Record(ctx context.Context, rec AuditRecord)
	ListByActor(ctx context.Context, actor string, limit int) ([]models.AuditEntry, error)
}

// AuditWriter persists one entry. The Postgres repository writes directly;
// workers.AuditQueue defers the write to the audit worker pool.
type AuditWriter interface {
	Insert(ctx context.Context, e *models.AuditEntry) error
}

type AuditOption func(*auditService)

// WithAuditWriter routes Record through w instead of the repository.
func WithAuditWriter(w AuditWriter) AuditOption {
	return func(s *auditService) { s.writer = w }
}

type auditService struct {
	repo   pgrepo.AuditRepository
	writer AuditWriter
	log    *logrus.Logger
}

// NewAuditService accepts a nil repo, in which case records are only
// written to the log.
func NewAuditService(repo pgrepo.AuditRepository, log *logrus.Logger, opts ...AuditOption) AuditService {
	if log == nil {
		log = logrus.New()
	}
	s := &auditService{repo: repo, log: log}
	if repo != nil {
		s.writer = repo
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *auditService) Record(ctx context.Context, rec AuditRecord) {
	entry := s.log.WithFields(logrus.Fields{
		"actor":       rec.Actor,
		"action":      rec.Action,
		"resource":    rec.Resource,
		"resource_id": rec.ResourceID,
	})
	if s.writer == nil {
		entry.Info("audit")
		return
	}

	payload, err := json.Marshal(rec.Payload)
	if err != nil {
		payload = []byte("{}")
	}
	e := &models.AuditEntry{
		ID:         uuid.NewString(),
		Actor:      rec.Actor,
		Action:     rec.Action,
		Resource:   rec.Resource,
		ResourceID: rec.ResourceID,
		Fields:     models.Keys(rec.Payload),
		Payload:    datatypes.JSON(payload),
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.writer.Insert(ctx, e); err != nil {
		entry.WithError(err).Warn("audit write failed")
	}
}

func (s *auditService) ListByActor(ctx context.Context, actor string, limit int) ([]models.AuditEntry, error) {
	const op = "AuditService.ListByActor"

	if s.repo == nil {
		return nil, utils.E(utils.CodeUnavailable, op, "audit log is not configured", nil)
	}
	if actor == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "email is required", nil)
	}
	out, err := s.repo.ListByActor(ctx, actor, limit)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list audit entries", err)
	}
	if out == nil {
		out = []models.AuditEntry{}
	}
	return out, nil
}
