package session

import (
	"context"
	"sync"

	"github.com/justsurfingit/engineer-marketplace/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MemoryBackend keeps sessions in process memory; everything is lost on restart.
type MemoryBackend struct {
	mu       sync.RWMutex
	sessions map[string]map[string]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{sessions: make(map[string]map[string]string)}
}

func (b *MemoryBackend) Load(_ context.Context, sessionID string) (map[string]string, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]string, len(b.sessions[sessionID]))
	for k, v := range b.sessions[sessionID] {
		out[k] = v
	}
	return out, nil
}

func (b *MemoryBackend) Update(_ context.Context, sessionID string, set map[string]string, del []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	entries, ok := b.sessions[sessionID]
	if !ok {
		entries = make(map[string]string)
		b.sessions[sessionID] = entries
	}
	for k, v := range set {
		entries[k] = v
	}
	for _, k := range del {
		delete(entries, k)
	}
	if len(entries) == 0 {
		delete(b.sessions, sessionID)
	}
	return nil
}

func (b *MemoryBackend) Clear(_ context.Context, sessionID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.sessions, sessionID)
	return nil
}

// GormBackend stores one row per session key in session_entries.
type GormBackend struct {
	DB *gorm.DB
}

func NewGormBackend(db *gorm.DB) *GormBackend {
	return &GormBackend{DB: db}
}

func (b *GormBackend) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	var rows []models.SessionEntry
	if err := b.DB.WithContext(ctx).Where("session_id = ?", sessionID).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]string, len(rows))
	for _, r := range rows {
		out[r.Key] = r.Value
	}
	return out, nil
}

func (b *GormBackend) Update(ctx context.Context, sessionID string, set map[string]string, del []string) error {
	return b.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for k, v := range set {
			row := models.SessionEntry{SessionID: sessionID, Key: k, Value: v}
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "session_id"}, {Name: "entry_key"}},
				DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
			}).Create(&row).Error
			if err != nil {
				return err
			}
		}
		if len(del) > 0 {
			err := tx.Where("session_id = ? AND entry_key IN ?", sessionID, del).Delete(&models.SessionEntry{}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (b *GormBackend) Clear(ctx context.Context, sessionID string) error {
	return b.DB.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.SessionEntry{}).Error
}
