package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/badger/v3"

	"github.com/annel0/tileworld/internal/vec"
	"github.com/annel0/tileworld/internal/world"
)

// BadgerStore хранит чанки в BadgerDB. Альтернатива файловому
// хранилищу для миров с большим числом чанков.
type BadgerStore struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool
}

// NewBadgerStore открывает хранилище чанков в BadgerDB
func NewBadgerStore(dataPath string) (*BadgerStore, error) {
	dbPath := filepath.Join(dataPath, "chunks")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &BadgerStore{
		db:      db,
		dbPath:  dbPath,
		isReady: true,
	}, nil
}

// chunkKey возвращает ключ чанка в BadgerDB
func chunkKey(coords vec.Vec2) []byte {
	return []byte(fmt.Sprintf("chunk:%d:%d", coords.X, coords.Y))
}

// SaveChunk сохраняет чанк в BadgerDB
func (bs *BadgerStore) SaveChunk(c *world.Chunk) error {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	data, err := json.Marshal(c.ToData())
	if err != nil {
		return fmt.Errorf("ошибка сериализации чанка %v: %w", c.Coords, err)
	}

	err = bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chunkKey(c.Coords), data)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}

	return nil
}

// LoadChunk загружает чанк из BadgerDB.
// Отсутствующий ключ — не ошибка, возвращается (nil, false, nil).
func (bs *BadgerStore) LoadChunk(coords vec.Vec2, seed int64) (*world.Chunk, bool, error) {
	bs.mutex.RLock()
	defer bs.mutex.RUnlock()

	if !bs.isReady {
		return nil, false, fmt.Errorf("хранилище не готово")
	}

	var raw []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(chunkKey(coords))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			raw = append([]byte{}, val...)
			return nil
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	var data world.ChunkData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false, fmt.Errorf("ошибка десериализации чанка %v: %w", coords, err)
	}

	chunk := world.NewChunk(coords, seed)
	if err := chunk.FromData(&data); err != nil {
		return nil, false, err
	}
	return chunk, true, nil
}

// Close закрывает хранилище
func (bs *BadgerStore) Close() error {
	bs.mutex.Lock()
	defer bs.mutex.Unlock()

	if !bs.isReady {
		return nil
	}

	bs.isReady = false
	return bs.db.Close()
}
