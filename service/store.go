package service

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/mwaldrep/salesdesk/backend/config"
	"github.com/mwaldrep/salesdesk/backend/model"
)

// Record is implemented by every persisted entity.
type Record interface {
	RecordID() string
	RecordTenant() string
	RecordCreated() time.Time
}

// Collection holds one record kind. Reads are served from memory;
// writes go through to BadgerDB when one is attached.
type Collection[T Record] struct {
	mu     sync.RWMutex
	items  map[string]T
	db     *badger.DB // nil = memory only
	prefix string
}

func newCollection[T Record](db *badger.DB, prefix string) (*Collection[T], error) {
	c := &Collection[T]{
		items:  make(map[string]T),
		db:     db,
		prefix: prefix,
	}
	if db != nil {
		if err := c.load(); err != nil {
			return nil, fmt.Errorf("load %s records: %w", prefix, err)
		}
	}
	return c, nil
}

func (c *Collection[T]) key(id string) []byte {
	return []byte(c.prefix + "/" + id)
}

// load restores the in-memory map from badger at startup.
func (c *Collection[T]) load() error {
	return c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(c.prefix + "/")
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec T
				if err := json.Unmarshal(val, &rec); err != nil {
					return err
				}
				c.items[rec.RecordID()] = rec
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// Save writes the record through to badger and replaces the cached copy.
func (c *Collection[T]) Save(rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record %s: %w", rec.RecordID(), err)
		}
		err = c.db.Update(func(txn *badger.Txn) error {
			return txn.Set(c.key(rec.RecordID()), data)
		})
		if err != nil {
			return fmt.Errorf("persist record %s: %w", rec.RecordID(), err)
		}
	}

	c.items[rec.RecordID()] = rec
	return nil
}

// SaveAll saves every record in order, stopping at the first failure.
func (c *Collection[T]) SaveAll(recs []T) error {
	for _, rec := range recs {
		if err := c.Save(rec); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the record with the given id, if present.
func (c *Collection[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rec, ok := c.items[id]
	return rec, ok
}

// Delete removes the record from badger and the cache. Missing ids are
// a no-op.
func (c *Collection[T]) Delete(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		err := c.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(c.key(id))
		})
		if err != nil {
			return fmt.Errorf("delete record %s: %w", id, err)
		}
	}

	delete(c.items, id)
	return nil
}

// ListByTenant returns the tenant's records ordered by creation time
// (id as tiebreak), which is the canonical collection order the filter
// and paginator preserve.
func (c *Collection[T]) ListByTenant(tenant string) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var result []T
	for _, rec := range c.items {
		if rec.RecordTenant() == tenant {
			result = append(result, rec)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		ci, cj := result[i].RecordCreated(), result[j].RecordCreated()
		if ci.Equal(cj) {
			return result[i].RecordID() < result[j].RecordID()
		}
		return ci.Before(cj)
	})
	return result
}

// Count returns the number of records across all tenants.
func (c *Collection[T]) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Store bundles every record collection over one badger instance.
type Store struct {
	db *badger.DB

	Contacts      *Collection[model.Contact]
	Opportunities *Collection[model.Opportunity]
	Accounts      *Collection[model.Account]
	Grades        *Collection[model.JobGrade]
	Activities    *Collection[model.Activity]
	History       *Collection[model.HistoryEntry]
}

// OpenStore opens the badger database described by cfg and loads every
// collection into memory.
func OpenStore(cfg *config.StoreConfig) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create store directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	opts = opts.WithLogger(&storeLogger{log: slog.Default()})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}

	s := &Store{db: db}
	if s.Contacts, err = newCollection[model.Contact](db, "contact"); err != nil {
		return nil, err
	}
	if s.Opportunities, err = newCollection[model.Opportunity](db, "opportunity"); err != nil {
		return nil, err
	}
	if s.Accounts, err = newCollection[model.Account](db, "account"); err != nil {
		return nil, err
	}
	if s.Grades, err = newCollection[model.JobGrade](db, "grade"); err != nil {
		return nil, err
	}
	if s.Activities, err = newCollection[model.Activity](db, "activity"); err != nil {
		return nil, err
	}
	if s.History, err = newCollection[model.HistoryEntry](db, "history"); err != nil {
		return nil, err
	}

	slog.Info("record store opened",
		"path", cfg.Path,
		"in_memory", cfg.InMemory,
		"contacts", s.Contacts.Count(),
		"opportunities", s.Opportunities.Count(),
	)
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// storeLogger adapts slog to badger's Logger interface.
type storeLogger struct {
	log *slog.Logger
}

func (l *storeLogger) Errorf(format string, args ...interface{}) {
	l.log.Error(fmt.Sprintf(format, args...))
}

func (l *storeLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, args...))
}

func (l *storeLogger) Infof(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}

func (l *storeLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, args...))
}
