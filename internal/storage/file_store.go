package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"

	"github.com/annel0/tileworld/internal/vec"
	"github.com/annel0/tileworld/internal/world"
)

// FileStore хранит чанки в файловой системе: один файл на чанк
// (chunk_<cx>_<cy>.json, при включённом сжатии — .json.gz).
type FileStore struct {
	dir      string
	compress bool
}

// NewFileStore создаёт файловое хранилище чанков
func NewFileStore(dir string, compress bool) *FileStore {
	return &FileStore{
		dir:      dir,
		compress: compress,
	}
}

// gzFilename возвращает имя сжатого файла чанка
func (fs *FileStore) gzFilename(coords vec.Vec2) string {
	return world.ChunkFilename(fs.dir, coords) + ".gz"
}

// SaveChunk сохраняет чанк на диск, создавая директорию при необходимости
func (fs *FileStore) SaveChunk(c *world.Chunk) error {
	if !fs.compress {
		return c.Save(fs.dir)
	}

	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return fmt.Errorf("не удалось создать директорию %s: %w", fs.dir, err)
	}

	data, err := json.Marshal(c.ToData())
	if err != nil {
		return fmt.Errorf("ошибка сериализации чанка %v: %w", c.Coords, err)
	}

	filename := fs.gzFilename(c.Coords)
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("ошибка создания файла %s: %w", filename, err)
	}
	defer file.Close()

	gz := gzip.NewWriter(file)
	if _, err := gz.Write(data); err != nil {
		gz.Close()
		return fmt.Errorf("ошибка записи файла %s: %w", filename, err)
	}
	return gz.Close()
}

// LoadChunk загружает чанк с диска. Отсутствие файла — не ошибка:
// возвращается (nil, false, nil). При включённом сжатии сначала
// пробуется сжатый файл, затем обычный (миграция старых миров).
func (fs *FileStore) LoadChunk(coords vec.Vec2, seed int64) (*world.Chunk, bool, error) {
	chunk := world.NewChunk(coords, seed)

	if fs.compress {
		found, err := fs.loadCompressed(chunk)
		if err != nil {
			return nil, false, err
		}
		if found {
			return chunk, true, nil
		}
	}

	found, err := chunk.Load(fs.dir)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return chunk, true, nil
}

// loadCompressed читает сжатый файл чанка
func (fs *FileStore) loadCompressed(chunk *world.Chunk) (bool, error) {
	filename := fs.gzFilename(chunk.Coords)
	file, err := os.Open(filename)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ошибка чтения файла чанка %s: %w", filename, err)
	}
	defer file.Close()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return false, fmt.Errorf("ошибка распаковки чанка %s: %w", filename, err)
	}
	defer gz.Close()

	raw, err := io.ReadAll(gz)
	if err != nil {
		return false, fmt.Errorf("ошибка распаковки чанка %s: %w", filename, err)
	}

	var data world.ChunkData
	if err := json.Unmarshal(raw, &data); err != nil {
		return false, fmt.Errorf("ошибка десериализации чанка %v: %w", chunk.Coords, err)
	}
	if err := chunk.FromData(&data); err != nil {
		return false, err
	}
	return true, nil
}

// Close у файлового хранилища ресурсов не держит
func (fs *FileStore) Close() error {
	return nil
}

// StoredChunks возвращает количество файлов чанков в директории
func (fs *FileStore) StoredChunks() int {
	var count int
	filepath.WalkDir(fs.dir, func(path string, d os.DirEntry, err error) error {
		if err == nil && !d.IsDir() {
			ext := filepath.Ext(path)
			if ext == ".json" || ext == ".gz" {
				count++
			}
		}
		return nil
	})
	return count
}
