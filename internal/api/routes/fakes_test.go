package routes

import (
	"bytes"
	"context"
	"io"
	"reflect"
	"sync"

	"github.com/yoockh/bikeparts/internal/models"
	"github.com/yoockh/bikeparts/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memCollection is an in-memory stand-in for the products, orders and
// reviews collections.
type memCollection struct {
	mu   sync.Mutex
	rows []models.Document
}

func clone(d models.Document) models.Document { return models.Without(d) }

func (m *memCollection) Insert(_ context.Context, d models.Document) (*models.InsertResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	doc := clone(d)
	if _, ok := doc[models.FieldID]; !ok {
		doc[models.FieldID] = primitive.NewObjectID()
	}
	m.rows = append(m.rows, doc)
	return &models.InsertResult{Acknowledged: true, InsertedID: doc[models.FieldID]}, nil
}

func (m *memCollection) FindByID(_ context.Context, id primitive.ObjectID) (models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.index(id); i >= 0 {
		return clone(m.rows[i]), nil
	}
	return nil, utils.ErrNotFound
}

func (m *memCollection) List(_ context.Context, limit int64) ([]models.Document, error) {
	return m.filter(func(models.Document) bool { return true }, limit), nil
}

func (m *memCollection) ListByOwner(_ context.Context, email string) ([]models.Document, error) {
	return m.filter(func(d models.Document) bool { return d[models.FieldAddedBy] == email }, 0), nil
}

func (m *memCollection) Update(_ context.Context, id primitive.ObjectID, set models.Document) (*models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := &models.UpdateResult{Acknowledged: true}
	i := m.index(id)
	if i < 0 {
		return res, nil
	}
	res.MatchedCount = 1
	if apply(m.rows[i], set) {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *memCollection) Delete(_ context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := &models.DeleteResult{Acknowledged: true}
	if i := m.index(id); i >= 0 {
		m.rows = append(m.rows[:i], m.rows[i+1:]...)
		res.DeletedCount = 1
	}
	return res, nil
}

func (m *memCollection) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

func (m *memCollection) index(id primitive.ObjectID) int {
	for i, d := range m.rows {
		if d[models.FieldID] == id {
			return i
		}
	}
	return -1
}

func (m *memCollection) filter(keep func(models.Document) bool, limit int64) []models.Document {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []models.Document{}
	for _, d := range m.rows {
		if limit > 0 && int64(len(out)) >= limit {
			break
		}
		if keep(d) {
			out = append(out, clone(d))
		}
	}
	return out
}

// apply performs a $set and reports whether anything changed.
func apply(dst, set models.Document) bool {
	changed := false
	for k, v := range set {
		if old, ok := dst[k]; !ok || !reflect.DeepEqual(old, v) {
			dst[k] = v
			changed = true
		}
	}
	return changed
}

type memUsers struct {
	mu    sync.Mutex
	rows  map[string]models.Document
	order []string
}

func newMemUsers() *memUsers { return &memUsers{rows: map[string]models.Document{}} }

func (m *memUsers) seed(email string, role models.Role) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[email] = models.Document{
		models.FieldID:    primitive.NewObjectID(),
		models.FieldEmail: email,
		models.FieldRole:  string(role),
	}
	m.order = append(m.order, email)
}

func (m *memUsers) Upsert(_ context.Context, email string, fields models.Document) (*models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	set := clone(fields)
	set[models.FieldEmail] = email

	if u, ok := m.rows[email]; ok {
		res := &models.UpdateResult{Acknowledged: true, MatchedCount: 1}
		if apply(u, set) {
			res.ModifiedCount = 1
		}
		return res, nil
	}

	id := primitive.NewObjectID()
	set[models.FieldID] = id
	m.rows[email] = set
	m.order = append(m.order, email)
	return &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
}

func (m *memUsers) Update(_ context.Context, email string, fields models.Document) (*models.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := &models.UpdateResult{Acknowledged: true}
	u, ok := m.rows[email]
	if !ok {
		return res, nil
	}
	res.MatchedCount = 1
	if apply(u, fields) {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (m *memUsers) SetRole(ctx context.Context, email string, role models.Role) (*models.UpdateResult, error) {
	return m.Update(ctx, email, models.Document{models.FieldRole: string(role)})
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.rows[email]; ok {
		return clone(u), nil
	}
	return nil, utils.ErrNotFound
}

func (m *memUsers) List(context.Context) ([]models.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Document, 0, len(m.order))
	for _, email := range m.order {
		out = append(out, clone(m.rows[email]))
	}
	return out, nil
}

func (m *memUsers) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memAudit struct {
	mu      sync.Mutex
	entries []models.AuditEntry
}

func (m *memAudit) Insert(_ context.Context, e *models.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *e)
	return nil
}

func (m *memAudit) ListByActor(_ context.Context, actor string, limit int) ([]models.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.AuditEntry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) >= limit {
			break
		}
		if m.entries[i].Actor == actor {
			out = append(out, m.entries[i])
		}
	}
	return out, nil
}

type memUploader struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (u *memUploader) Upload(_ context.Context, objectName, _ string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.objects == nil {
		u.objects = map[string][]byte{}
	}
	u.objects[objectName] = buf.Bytes()
	return "https://storage.googleapis.com/test-bucket/" + objectName, nil
}
