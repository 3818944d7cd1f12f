package world

import (
	"fmt"
	"sync"
	"time"

	"github.com/annel0/tileworld/internal/logging"
	"github.com/annel0/tileworld/internal/vec"
	"github.com/annel0/tileworld/internal/world/tile"
)

// ChunkStore — интерфейс хранилища чанков. Load возвращает (nil, false, nil)
// для отсутствующего чанка; ошибка парсинга может вернуться как error —
// менеджер трактует любой неуспех загрузки как промах и регенерирует чанк.
type ChunkStore interface {
	SaveChunk(c *Chunk) error
	LoadChunk(coords vec.Vec2, seed int64) (*Chunk, bool, error)
	Close() error
}

// Радиусы стриминга по умолчанию (в чанках, расстояние Чебышёва).
// Радиус выгрузки намеренно больше радиуса подгрузки: гистерезис
// защищает от дёргания чанков при ходьбе вдоль границы.
const (
	DefaultLoadRadius   = 2
	DefaultUnloadRadius = 4
)

// ChunkManager владеет кешем живых чанков: конвертация координат,
// генерация/загрузка по требованию, сохранение при выгрузке и
// стриминг по радиусу вокруг игрока.
type ChunkManager struct {
	mu           sync.RWMutex
	chunks       map[vec.Vec2]*Chunk
	generator    *WorldGenerator
	store        ChunkStore
	loadRadius   int
	unloadRadius int
	log          *logging.Logger
	metrics      *worldMetrics
}

// NewChunkManager создаёт менеджер чанков с указанным генератором и хранилищем
func NewChunkManager(generator *WorldGenerator, store ChunkStore) *ChunkManager {
	return &ChunkManager{
		chunks:       make(map[vec.Vec2]*Chunk),
		generator:    generator,
		store:        store,
		loadRadius:   DefaultLoadRadius,
		unloadRadius: DefaultUnloadRadius,
		log:          logging.GetWorldLogger(),
		metrics:      getWorldMetrics(),
	}
}

// SetStreamingRadii настраивает радиусы стриминга.
// Радиус выгрузки всегда держится строго больше радиуса подгрузки.
func (cm *ChunkManager) SetStreamingRadii(loadRadius, unloadRadius int) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if loadRadius < 1 {
		loadRadius = 1
	}
	if unloadRadius <= loadRadius {
		unloadRadius = loadRadius + 2
	}
	cm.loadRadius = loadRadius
	cm.unloadRadius = unloadRadius
}

// Generator возвращает генератор мира
func (cm *ChunkManager) Generator() *WorldGenerator {
	return cm.generator
}

// WorldToChunk преобразует мировые координаты в координаты чанка.
// Округление всегда вниз, в том числе для отрицательных координат.
func (cm *ChunkManager) WorldToChunk(wx, wy int) vec.Vec2 {
	return vec.Vec2{X: wx, Y: wy}.ToChunkCoords()
}

// GetChunk возвращает чанк: из кеша, из хранилища или генерирует новый.
// Возвращённый чанк всегда полностью загружен; ошибка генерации
// поднимается наверх.
func (cm *ChunkManager) GetChunk(coords vec.Vec2) (*Chunk, error) {
	cm.mu.RLock()
	if chunk, exists := cm.chunks[coords]; exists {
		cm.mu.RUnlock()
		return chunk, nil
	}
	cm.mu.RUnlock()

	cm.mu.Lock()
	defer cm.mu.Unlock()

	// Проверяем еще раз на случай гонки за write lock
	if chunk, exists := cm.chunks[coords]; exists {
		return chunk, nil
	}

	chunk, err := cm.loadOrGenerateLocked(coords)
	if err != nil {
		return nil, err
	}

	cm.chunks[coords] = chunk
	cm.metrics.cachedChunks.Set(float64(len(cm.chunks)))
	return chunk, nil
}

// loadOrGenerateLocked пытается загрузить чанк из хранилища, иначе
// генерирует и сразу персистит его. Вызывается под мьютексом.
func (cm *ChunkManager) loadOrGenerateLocked(coords vec.Vec2) (*Chunk, error) {
	if cm.store != nil {
		chunk, found, err := cm.store.LoadChunk(coords, cm.generator.Seed())
		if err != nil {
			// Повреждённый чанк — промах кеша, регенерируем
			cm.log.Warnf("Загрузка чанка %v не удалась, регенерация: %v", coords, err)
		} else if found {
			cm.metrics.chunksLoaded.Inc()
			return chunk, nil
		}
	}

	start := time.Now()
	chunk, err := cm.generator.GenerateChunk(coords)
	if err != nil {
		return nil, err
	}
	cm.metrics.chunksGenerated.Inc()
	cm.metrics.generationSeconds.Observe(time.Since(start).Seconds())

	if cm.store != nil {
		if err := cm.store.SaveChunk(chunk); err != nil {
			cm.log.Errorf("Сохранение сгенерированного чанка %v: %v", coords, err)
		}
	}

	return chunk, nil
}

// GetTile возвращает тайл по мировым координатам. Обращение к ещё
// не посещённому чанку прозрачно запускает генерацию.
func (cm *ChunkManager) GetTile(wx, wy int) (tile.TileID, error) {
	chunk, err := cm.GetChunk(cm.WorldToChunk(wx, wy))
	if err != nil {
		return tile.Unknown, err
	}

	local := vec.Vec2{X: wx, Y: wy}.LocalInChunk()
	return chunk.GetTile(local.X, local.Y), nil
}

// GetBiome возвращает биом по мировым координатам
func (cm *ChunkManager) GetBiome(wx, wy int) (tile.Biome, error) {
	chunk, err := cm.GetChunk(cm.WorldToChunk(wx, wy))
	if err != nil {
		return tile.BiomePlains, err
	}

	local := vec.Vec2{X: wx, Y: wy}.LocalInChunk()
	return chunk.GetBiome(local.X, local.Y), nil
}

// SetTile устанавливает тайл по мировым координатам и сразу персистит
// чанк (write-through) — при аварийном завершении данные не теряются.
func (cm *ChunkManager) SetTile(wx, wy int, t tile.TileID) error {
	chunk, err := cm.GetChunk(cm.WorldToChunk(wx, wy))
	if err != nil {
		return err
	}

	local := vec.Vec2{X: wx, Y: wy}.LocalInChunk()
	chunk.SetTile(local.X, local.Y, t)

	if cm.store != nil {
		if err := cm.store.SaveChunk(chunk); err != nil {
			return fmt.Errorf("сохранение чанка %v после записи тайла: %w", chunk.Coords, err)
		}
	}
	return nil
}

// GetEntitiesInArea возвращает сущности всех чанков, пересекающих
// квадратную область вокруг точки. Локальные координаты сущностей
// переводятся в мировые.
func (cm *ChunkManager) GetEntitiesInArea(centerWX, centerWY, radius int) ([]Entity, error) {
	if radius < 0 {
		radius = 0
	}

	minChunk := cm.WorldToChunk(centerWX-radius, centerWY-radius)
	maxChunk := cm.WorldToChunk(centerWX+radius, centerWY+radius)

	var result []Entity
	for cy := minChunk.Y; cy <= maxChunk.Y; cy++ {
		for cx := minChunk.X; cx <= maxChunk.X; cx++ {
			chunk, err := cm.GetChunk(vec.Vec2{X: cx, Y: cy})
			if err != nil {
				return nil, err
			}

			origin := chunk.Coords.ChunkOrigin()
			chunk.Mu.RLock()
			for _, e := range chunk.Entities {
				wx := origin.X + e.X
				wy := origin.Y + e.Y
				if wx < centerWX-radius || wx > centerWX+radius ||
					wy < centerWY-radius || wy > centerWY+radius {
					continue
				}
				worldEntity := e
				worldEntity.X = wx
				worldEntity.Y = wy
				result = append(result, worldEntity)
			}
			chunk.Mu.RUnlock()
		}
	}

	return result, nil
}

// UpdateStreaming подгружает чанки вокруг игрока и выгружает дальние.
// Чанк на дистанции между радиусами не трогается — перемещение на один
// чанк и обратно не вызывает выгрузку с немедленной обратной загрузкой.
func (cm *ChunkManager) UpdateStreaming(playerWX, playerWY int) error {
	playerChunk := cm.WorldToChunk(playerWX, playerWY)

	cm.mu.RLock()
	loadRadius := cm.loadRadius
	unloadRadius := cm.unloadRadius
	cm.mu.RUnlock()

	// Подгружаем все чанки в радиусе подгрузки
	for dy := -loadRadius; dy <= loadRadius; dy++ {
		for dx := -loadRadius; dx <= loadRadius; dx++ {
			coords := vec.Vec2{X: playerChunk.X + dx, Y: playerChunk.Y + dy}
			if _, err := cm.GetChunk(coords); err != nil {
				return fmt.Errorf("стриминг: чанк %v: %w", coords, err)
			}
		}
	}

	// Выгружаем (с сохранением) чанки за радиусом выгрузки
	cm.mu.Lock()
	defer cm.mu.Unlock()

	for coords, chunk := range cm.chunks {
		if playerChunk.ChebyshevTo(coords) <= unloadRadius {
			continue
		}

		if cm.store != nil {
			if err := cm.store.SaveChunk(chunk); err != nil {
				cm.log.Errorf("Сохранение чанка %v при выгрузке: %v", coords, err)
				continue // Данные не отбрасываем — чанк остаётся в кеше
			}
		}

		chunk.Unload()
		delete(cm.chunks, coords)
		cm.metrics.chunksEvicted.Inc()
	}
	cm.metrics.cachedChunks.Set(float64(len(cm.chunks)))

	return nil
}

// LoadedCount возвращает количество чанков в кеше
func (cm *ChunkManager) LoadedCount() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.chunks)
}

// IsCached сообщает, находится ли чанк в кеше
func (cm *ChunkManager) IsCached(coords vec.Vec2) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	_, exists := cm.chunks[coords]
	return exists
}

// SaveAll сохраняет все чанки кеша (корректное завершение работы)
func (cm *ChunkManager) SaveAll() error {
	if cm.store == nil {
		return nil
	}

	cm.mu.RLock()
	defer cm.mu.RUnlock()

	var lastErr error
	for coords, chunk := range cm.chunks {
		if err := cm.store.SaveChunk(chunk); err != nil {
			lastErr = fmt.Errorf("сохранение чанка %v: %w", coords, err)
		}
	}
	return lastErr
}
