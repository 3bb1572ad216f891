package leads

import (
	"bytes"
	"encoding/json"
	"errors"
	bolt "go.etcd.io/bbolt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

var ErrNotFound = errors.New("leads: not found")

// Store persists leads in a bbolt file keyed by ULID, so key order is
// submission order.
type Store struct {
	db *bolt.DB
}

type OpenOptions struct {
	Path string // e.g. ".pdsite/leads.db"
}

func Open(opt OpenOptions) (*Store, error) {
	if opt.Path == "" {
		return nil, errors.New("leads: missing store path")
	}
	if err := os.MkdirAll(filepath.Dir(opt.Path), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(opt.Path, 0o600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bLeads, bLeadsByEmail} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Save(l Lead) error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("leads: missing id")
	}
	lb, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(bLeads).Put([]byte(l.ID), lb); err != nil {
			return err
		}
		return tx.Bucket(bLeadsByEmail).Put(makeEmailKey(l.Email, l.ID), []byte{1})
	})
}

func (s *Store) Get(id string) (Lead, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Lead{}, ErrNotFound
	}
	var l Lead
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(bLeads).Get([]byte(id))
		if v == nil {
			return ErrNotFound
		}
		return json.Unmarshal(v, &l)
	})
	return l, err
}

// List returns up to limit leads, newest first. A limit <= 0 means all.
func (s *Store) List(limit int) ([]Lead, error) {
	var out []Lead
	err := s.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bLeads).Cursor()
		for k, v := cur.Last(); k != nil; k, v = cur.Prev() {
			var l Lead
			if err := json.Unmarshal(v, &l); err != nil {
				continue
			}
			out = append(out, l)
			if limit > 0 && len(out) >= limit {
				break
			}
		}
		return nil
	})
	return out, err
}

// IDsByEmail returns the ids of every lead submitted with email, oldest
// first.
func (s *Store) IDsByEmail(email string) ([]string, error) {
	prefix := emailPrefix(strings.ToLower(strings.TrimSpace(email)))
	var ids []string
	err := s.db.View(func(tx *bolt.Tx) error {
		cur := tx.Bucket(bLeadsByEmail).Cursor()
		for k, _ := cur.Seek(prefix); k != nil && bytes.HasPrefix(k, prefix); k, _ = cur.Next() {
			if id := idFromEmailKey(k); id != "" {
				ids = append(ids, id)
			}
		}
		return nil
	})
	return ids, err
}

func (s *Store) CountByEmail(email string) (int, error) {
	ids, err := s.IDsByEmail(email)
	return len(ids), err
}
