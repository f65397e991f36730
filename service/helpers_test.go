package service

import (
	"errors"
	"mime/multipart"
	"path"
	"sync"
	"testing"

	"gorm.io/gorm"
)

// memStore is an ImageStore that only records what it was asked to do.
type memStore struct {
	mu      sync.Mutex
	saveErr error
	saved   []string
	removed []string
}

func (s *memStore) Save(folder string, file *multipart.FileHeader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return "", s.saveErr
	}
	p := path.Join(folder, file.Filename)
	s.saved = append(s.saved, p)
	return p, nil
}

func (s *memStore) Remove(relPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if relPath != "" {
		s.removed = append(s.removed, relPath)
	}
	return nil
}

func count(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count %T: %v", model, err)
	}
	return n
}

// failInserts makes every INSERT into table fail.
func failInserts(t *testing.T, db *gorm.DB, table string) {
	t.Helper()
	err := db.Callback().Create().Before("gorm:create").Register("test:fail_"+table, func(tx *gorm.DB) {
		if tx.Statement.Table == table {
			tx.AddError(errors.New("injected insert failure"))
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}
}
