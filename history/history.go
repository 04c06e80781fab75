// Package history keeps the automata a user designed or derived, using the bbolt K/V database.
// Records are stored in their five-field textual form and parsed again on load.
package history

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/vmihailenco/msgpack/v5"
	"go.etcd.io/bbolt"

	automaton "github.com/geange/faengine"
)

const BuckRecords = "records"

var ErrNotFound = errors.New("history record not found")

// Record is one saved automaton.
type Record struct {
	ID        uint64           `msgpack:"id"`
	Owner     string           `msgpack:"owner"`
	Name      string           `msgpack:"name"`
	Fields    automaton.Fields `msgpack:"fields"`
	CreatedAt time.Time        `msgpack:"created_at"`
	UpdatedAt time.Time        `msgpack:"updated_at"`
}

type Config struct {
	// Path of the database file.
	Path string
	// How long a loaded automaton stays cached (default: 10m).
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// Store is a bbolt backed history. All methods are safe for concurrent use.
type Store struct {
	db     *bbolt.DB
	loaded *cache.Cache
	log    *slog.Logger
	now    func() time.Time
}

// Open opens or creates the database at cfg.Path.
func Open(cfg Config) (*Store, error) {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	db, err := bbolt.Open(cfg.Path, 0600, &bbolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", cfg.Path, err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(BuckRecords))
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("open history %s: %w", cfg.Path, err)
	}

	return &Store{
		db:     db,
		loaded: cache.New(cfg.CacheTTL, time.Minute),
		log:    cfg.Logger.With("db", cfg.Path),
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *Store) Close() error {
	s.loaded.Flush()
	return s.db.Close()
}

// DefaultName describes a, e.g. "A DFA with 5 states, 2 inputs. Starts at q0."
func DefaultName(a *automaton.Automaton) string {
	article := "A DFA"
	if !a.IsDeterministic() {
		article = "An NFA"
	}
	return fmt.Sprintf("%s with %d states, %d inputs. Starts at %s.",
		article, a.GetNumStates(), len(a.Alphabet()), a.Initial())
}

// Save stores a as a new record of owner. An empty name is replaced by DefaultName.
func (s *Store) Save(ctx context.Context, owner, name string, a *automaton.Automaton) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultName(a)
	}

	now := s.now()
	rec := &Record{
		Owner:     owner,
		Name:      name,
		Fields:    a.Fields(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BuckRecords))
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		rec.ID = id
		return put(b, rec)
	})
	if err != nil {
		return nil, fmt.Errorf("save record: %w", err)
	}

	s.log.Debug("record saved", "owner", owner, "id", rec.ID, "name", rec.Name)
	return rec, nil
}

// Get returns the record id of owner. Records of other owners are not found.
func (s *Store) Get(ctx context.Context, owner string, id uint64) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec *Record
	err := s.db.View(func(tx *bbolt.Tx) error {
		var err error
		rec, err = get(tx.Bucket([]byte(BuckRecords)), owner, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Load returns the record id of owner together with its parsed automaton.
func (s *Store) Load(ctx context.Context, owner string, id uint64) (*Record, *automaton.Automaton, error) {
	rec, err := s.Get(ctx, owner, id)
	if err != nil {
		return nil, nil, err
	}

	key := cacheKey(owner, id)
	if v, ok := s.loaded.Get(key); ok {
		return rec, v.(*automaton.Automaton), nil
	}

	a, err := automaton.Parse(rec.Fields)
	if err != nil {
		return nil, nil, fmt.Errorf("record %d: %w", id, err)
	}
	s.loaded.Set(key, a, cache.DefaultExpiration)
	return rec, a, nil
}

// Recent lists the records of owner, most recently updated first, at most limit of them.
// A limit of zero or less lists all of them.
func (s *Store) Recent(ctx context.Context, owner string, limit int) ([]*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ret := make([]*Record, 0)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(BuckRecords)).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			rec := &Record{}
			if err := decode(v, rec); err != nil {
				return err
			}
			if rec.Owner == owner {
				ret = append(ret, rec)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	// cursor order is newest id first, keep it for equal timestamps
	slices.SortStableFunc(ret, func(a, b *Record) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	if limit > 0 && len(ret) > limit {
		ret = ret[:limit]
	}
	return ret, nil
}

// Rename changes the name of the record id of owner.
func (s *Store) Rename(ctx context.Context, owner string, id uint64, name string) (*Record, error) {
	if name == "" {
		return nil, errors.New("rename record: empty name")
	}
	rec, err := s.modify(ctx, owner, id, func(rec *Record) {
		rec.Name = name
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("record renamed", "owner", owner, "id", id, "name", name)
	return rec, nil
}

// Update replaces the automaton of the record id of owner, keeping its name.
func (s *Store) Update(ctx context.Context, owner string, id uint64, a *automaton.Automaton) (*Record, error) {
	rec, err := s.modify(ctx, owner, id, func(rec *Record) {
		rec.Fields = a.Fields()
	})
	if err != nil {
		return nil, err
	}
	s.loaded.Delete(cacheKey(owner, id))
	s.log.Debug("record updated", "owner", owner, "id", id)
	return rec, nil
}

// Delete removes the record id of owner.
func (s *Store) Delete(ctx context.Context, owner string, id uint64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BuckRecords))
		if _, err := get(b, owner, id); err != nil {
			return err
		}
		return b.Delete(itob(id))
	})
	if err != nil {
		return err
	}

	s.loaded.Delete(cacheKey(owner, id))
	s.log.Debug("record deleted", "owner", owner, "id", id)
	return nil
}

func (s *Store) modify(ctx context.Context, owner string, id uint64, fn func(rec *Record)) (*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var rec *Record
	err := s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(BuckRecords))
		var err error
		rec, err = get(b, owner, id)
		if err != nil {
			return err
		}
		fn(rec)
		rec.UpdatedAt = s.now()
		return put(b, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func get(b *bbolt.Bucket, owner string, id uint64) (*Record, error) {
	v := b.Get(itob(id))
	if v == nil {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	rec := &Record{}
	if err := decode(v, rec); err != nil {
		return nil, fmt.Errorf("record %d: %w", id, err)
	}
	if rec.Owner != owner {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return rec, nil
}

func put(b *bbolt.Bucket, rec *Record) error {
	enc, err := msgpack.Marshal(rec)
	if err != nil {
		return err
	}
	return b.Put(itob(rec.ID), enc)
}

func decode(v []byte, rec *Record) error {
	if err := msgpack.Unmarshal(v, rec); err != nil {
		return err
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return nil
}

// itob returns an 8-byte big endian representation of v.
func itob(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}

func cacheKey(owner string, id uint64) string {
	return owner + "/" + strconv.FormatUint(id, 10)
}
