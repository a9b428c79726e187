package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const keyGamePrefix = "game/"

var (
	ErrGameNotFound = errors.New("saved game not found")
	ErrInvalidName  = errors.New("invalid save name")

	// ErrCorruptRecord marks a stored record that no longer decodes or replays.
	ErrCorruptRecord = errors.New("saved game record is corrupt")
)

// SavedGame is a stored game. Record holds the zstd-compressed move lines.
type SavedGame struct {
	Name    string    `json:"name"`
	Variant string    `json:"variant"`
	Record  []byte    `json:"record"`
	Moves   int       `json:"moves"`
	SavedAt time.Time `json:"saved_at"`
}

// Summary is a SavedGame without the record body, for listings.
type Summary struct {
	Name    string    `json:"name"`
	Variant string    `json:"variant"`
	Moves   int       `json:"moves"`
	SavedAt time.Time `json:"saved_at"`
}

// Storage wraps BadgerDB for saved games
type Storage struct {
	db *badger.DB
}

// Open opens the store in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func gameKey(name string) ([]byte, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, "/\n") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return []byte(keyGamePrefix + name), nil
}

// SaveGame stores game under its name, replacing any earlier save.
func (s *Storage) SaveGame(game *SavedGame) error {
	key, err := gameKey(game.Name)
	if err != nil {
		return err
	}
	game.Name = strings.TrimSpace(game.Name)
	if game.SavedAt.IsZero() {
		game.SavedAt = time.Now()
	}

	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

func (s *Storage) LoadGame(name string) (*SavedGame, error) {
	key, err := gameKey(name)
	if err != nil {
		return nil, err
	}
	game := &SavedGame{}

	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %q", ErrGameNotFound, name)
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, game)
		})
	})
	if err != nil {
		return nil, err
	}
	return game, nil
}

// ListGames returns every save, newest first.
func (s *Storage) ListGames() ([]Summary, error) {
	summaries := []Summary{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyGamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var game SavedGame
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &game)
			}); err != nil {
				return err
			}
			summaries = append(summaries, Summary{
				Name:    game.Name,
				Variant: game.Variant,
				Moves:   game.Moves,
				SavedAt: game.SavedAt,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].SavedAt.After(summaries[j].SavedAt)
	})
	return summaries, nil
}

func (s *Storage) DeleteGame(name string) error {
	key, err := gameKey(name)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(key); errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %q", ErrGameNotFound, name)
		} else if err != nil {
			return err
		}
		return txn.Delete(key)
	})
}
