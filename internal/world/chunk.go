package world

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/annel0/tileworld/internal/vec"
	"github.com/annel0/tileworld/internal/world/tile"
)

// ChunkSize размер стороны чанка в тайлах
const ChunkSize = vec.ChunkSize

// chunkArea количество тайлов в чанке
const chunkArea = ChunkSize * ChunkSize

// Chunk представляет участок мира размером 64x64 тайла.
// Сетки тайлов и биомов — плоские массивы, индекс (x + y*ChunkSize).
// Инвариант: у загруженного чанка обе сетки имеют длину ровно chunkArea,
// у выгруженного — nil. Частично заполненных сеток не бывает.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в мире
	Seed   int64    // Глобальный сид мира

	Tiles    []tile.TileID // Сетка тайлов
	Biomes   []tile.Biome  // Параллельная сетка биомов
	Entities []Entity      // Упорядоченный список сущностей

	IsGenerated bool // Чанк прошёл генерацию
	IsLoaded    bool // Сетки находятся в памяти

	Mu sync.RWMutex // Мьютекс для безопасного доступа
}

// ChunkData сериализуемое представление чанка.
// Формат на диске: один файл chunk_<cx>_<cy>.json на чанк.
type ChunkData struct {
	ChunkX      int           `json:"chunk_x"`
	ChunkY      int           `json:"chunk_y"`
	WorldSeed   int64         `json:"world_seed"`
	Tiles       []tile.TileID `json:"tiles"`
	Biomes      []tile.Biome  `json:"biomes"`
	Entities    []Entity      `json:"entities"`
	IsGenerated bool          `json:"is_generated"`
}

// NewChunk создаёт пустой чанк с указанными координатами и сидом мира.
// Сетки не выделяются — чанк считается не загруженным.
func NewChunk(coords vec.Vec2, seed int64) *Chunk {
	return &Chunk{
		Coords: coords,
		Seed:   seed,
	}
}

// InitGrids выделяет сетки тайлов и биомов и помечает чанк загруженным
func (c *Chunk) InitGrids() {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.Tiles = make([]tile.TileID, chunkArea)
	c.Biomes = make([]tile.Biome, chunkArea)
	c.Entities = c.Entities[:0]
	c.IsLoaded = true
}

// gridIndex возвращает индекс в плоской сетке или -1 для координат вне чанка
func gridIndex(x, y int) int {
	if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize {
		return -1
	}
	return x + y*ChunkSize
}

// GetTile возвращает тайл по локальным координатам.
// Для координат вне чанка или невыгруженного чанка возвращает tile.Unknown.
func (c *Chunk) GetTile(x, y int) tile.TileID {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	idx := gridIndex(x, y)
	if idx < 0 || !c.IsLoaded {
		return tile.Unknown
	}
	return c.Tiles[idx]
}

// SetTile устанавливает тайл по локальным координатам.
// Запись вне чанка или в невыгруженный чанк игнорируется.
func (c *Chunk) SetTile(x, y int, t tile.TileID) {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	idx := gridIndex(x, y)
	if idx < 0 || !c.IsLoaded {
		return
	}
	c.Tiles[idx] = t
}

// GetBiome возвращает биом по локальным координатам.
// Вне границ и для невыгруженного чанка возвращает биом равнин.
func (c *Chunk) GetBiome(x, y int) tile.Biome {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	idx := gridIndex(x, y)
	if idx < 0 || !c.IsLoaded {
		return tile.BiomePlains
	}
	return c.Biomes[idx]
}

// SetBiome устанавливает биом по локальным координатам
func (c *Chunk) SetBiome(x, y int, b tile.Biome) {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	idx := gridIndex(x, y)
	if idx < 0 || !c.IsLoaded {
		return
	}
	c.Biomes[idx] = b
}

// AddEntity добавляет запись о сущности в чанк
func (c *Chunk) AddEntity(e Entity) {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.Entities = append(c.Entities, e)
}

// BiomeHistogram возвращает частоты биомов внутри чанка
func (c *Chunk) BiomeHistogram() map[tile.Biome]int {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	histogram := make(map[tile.Biome]int)
	for _, b := range c.Biomes {
		histogram[b]++
	}
	return histogram
}

// ToData возвращает сериализуемое представление чанка
func (c *Chunk) ToData() *ChunkData {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	data := &ChunkData{
		ChunkX:      c.Coords.X,
		ChunkY:      c.Coords.Y,
		WorldSeed:   c.Seed,
		Tiles:       make([]tile.TileID, len(c.Tiles)),
		Biomes:      make([]tile.Biome, len(c.Biomes)),
		Entities:    make([]Entity, len(c.Entities)),
		IsGenerated: c.IsGenerated,
	}
	copy(data.Tiles, c.Tiles)
	copy(data.Biomes, c.Biomes)
	copy(data.Entities, c.Entities)
	return data
}

// FromData восстанавливает чанк из сериализованного представления.
// Сетки неправильной длины отвергаются — инвариант размера сеток
// важнее, чем частично восстановленный чанк.
func (c *Chunk) FromData(data *ChunkData) error {
	if len(data.Tiles) != chunkArea || len(data.Biomes) != chunkArea {
		return fmt.Errorf("некорректный размер сеток чанка (%d,%d): тайлы %d, биомы %d",
			data.ChunkX, data.ChunkY, len(data.Tiles), len(data.Biomes))
	}

	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.Coords = vec.Vec2{X: data.ChunkX, Y: data.ChunkY}
	c.Seed = data.WorldSeed
	c.Tiles = make([]tile.TileID, chunkArea)
	c.Biomes = make([]tile.Biome, chunkArea)
	copy(c.Tiles, data.Tiles)
	copy(c.Biomes, data.Biomes)
	c.Entities = make([]Entity, len(data.Entities))
	copy(c.Entities, data.Entities)
	c.IsGenerated = data.IsGenerated
	c.IsLoaded = true
	return nil
}

// ChunkFilename возвращает имя файла чанка в директории мира
func ChunkFilename(dir string, coords vec.Vec2) string {
	return filepath.Join(dir, fmt.Sprintf("chunk_%d_%d.json", coords.X, coords.Y))
}

// Save сохраняет чанк в файл внутри директории dir.
// Директория создаётся при необходимости.
func (c *Chunk) Save(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("не удалось создать директорию %s: %w", dir, err)
	}

	data, err := json.Marshal(c.ToData())
	if err != nil {
		return fmt.Errorf("ошибка сериализации чанка %v: %w", c.Coords, err)
	}

	filename := ChunkFilename(dir, c.Coords)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("ошибка записи файла %s: %w", filename, err)
	}

	return nil
}

// Load загружает чанк из файла внутри директории dir.
// Отсутствие файла — не ошибка, возвращается (false, nil).
func (c *Chunk) Load(dir string) (bool, error) {
	filename := ChunkFilename(dir, c.Coords)
	raw, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("ошибка чтения файла чанка %s: %w", filename, err)
	}

	var data ChunkData
	if err := json.Unmarshal(raw, &data); err != nil {
		return false, fmt.Errorf("ошибка десериализации чанка %v: %w", c.Coords, err)
	}

	if err := c.FromData(&data); err != nil {
		return false, err
	}
	return true, nil
}

// Unload выгружает содержимое чанка из памяти.
// Сохранение на диск — ответственность вызывающего, данные
// никогда не отбрасываются молча.
func (c *Chunk) Unload() {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.Tiles = nil
	c.Biomes = nil
	c.Entities = nil
	c.IsLoaded = false
}
