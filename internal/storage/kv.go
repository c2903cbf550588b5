package storage

import (
	"encoding/json"
	"errors"
	"log"
	"reflect"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV is the persistent key/value contract every store is built on. Values are
// JSON blobs under string keys. Load leaves dst untouched when no usable
// value exists, so the caller's default survives both "never saved" and
// "saved but unreadable".
type KV interface {
	Load(key string, dst any) error
	Save(key string, value any) error
}

// Entry is one persisted blob, scoped to a browser profile.
type Entry struct {
	ProfileID string `gorm:"primaryKey;size:64"`
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

func (Entry) TableName() string {
	return "directory.kv_entries"
}

// GormKV stores blobs in the kv_entries table for a single profile.
type GormKV struct {
	db        *gorm.DB
	profileID string
}

func NewGormKV(db *gorm.DB, profileID string) *GormKV {
	return &GormKV{db: db, profileID: profileID}
}

func (s *GormKV) Load(key string, dst any) error {
	var entry Entry
	err := s.db.First(&entry, "profile_id = ? AND key = ?", s.profileID, key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		// Storage read problems degrade to the caller's default.
		log.Printf("[storage] load %q failed: %v", key, err)
		return nil
	}
	decode(key, entry.Value, dst)
	return nil
}

func (s *GormKV) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	entry := Entry{
		ProfileID: s.profileID,
		Key:       key,
		Value:     string(data),
		UpdatedAt: time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "profile_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// MemKV is an in-memory KV with the same semantics, used by tests and the
// search REPL.
type MemKV struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemKV() *MemKV {
	return &MemKV{values: make(map[string]string)}
}

func (s *MemKV) Load(key string, dst any) error {
	s.mu.RLock()
	raw, ok := s.values[key]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	decode(key, raw, dst)
	return nil
}

func (s *MemKV) Save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.values[key] = string(data)
	s.mu.Unlock()
	return nil
}

// decode unmarshals into a scratch value first, so a malformed blob cannot
// half-fill the caller's default.
func decode(key, raw string, dst any) {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		log.Printf("[storage] load %q: dst must be a non-nil pointer", key)
		return
	}
	scratch := reflect.New(v.Elem().Type())
	if err := json.Unmarshal([]byte(raw), scratch.Interface()); err != nil {
		log.Printf("[storage] discarding unreadable value for %q: %v", key, err)
		return
	}
	v.Elem().Set(scratch.Elem())
}
