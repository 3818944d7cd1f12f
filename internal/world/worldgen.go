package world

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"

	"github.com/annel0/tileworld/internal/logging"
	"github.com/annel0/tileworld/internal/util"
	"github.com/annel0/tileworld/internal/vec"
	"github.com/annel0/tileworld/internal/world/settlement"
	"github.com/annel0/tileworld/internal/world/tile"
)

// WorldGenerator — оркестратор генерации чанка.
// Конвейер: ландшафт -> базовые сущности -> решение о поселении ->
// наложение поселения -> финализация. Ошибка ландшафта фатальна,
// ошибки спаунера и поселения деградируют мягко.
type WorldGenerator struct {
	seed        int64
	terrain     TerrainSource
	spawner     EntitySource
	settlements *settlement.Manager
	log         *logging.Logger
}

// NewWorldGenerator создаёт генератор мира с коллабораторами по умолчанию
func NewWorldGenerator(seed int64) *WorldGenerator {
	return &WorldGenerator{
		seed:        seed,
		terrain:     NewTerrainGenerator(seed),
		spawner:     NewEntitySpawner(),
		settlements: settlement.NewManager(seed, settlement.NewPatternGenerator()),
		log:         logging.GetWorldLogger(),
	}
}

// NewWorldGeneratorWith создаёт генератор с заданными коллабораторами
// (используется в тестах для подмены ландшафта и спаунера)
func NewWorldGeneratorWith(seed int64, terrain TerrainSource, spawner EntitySource, settlements *settlement.Manager) *WorldGenerator {
	return &WorldGenerator{
		seed:        seed,
		terrain:     terrain,
		spawner:     spawner,
		settlements: settlements,
		log:         logging.GetWorldLogger(),
	}
}

// Seed возвращает глобальный сид мира
func (wg *WorldGenerator) Seed() int64 {
	return wg.seed
}

// Settlements возвращает менеджер поселений (для снапшота истории размещений)
func (wg *WorldGenerator) Settlements() *settlement.Manager {
	return wg.settlements
}

// GenerateChunk генерирует чанк по его координатам. Содержимое зависит
// только от (сид мира, координаты): два независимых вызова дают
// идентичные сетки тайлов и биомов.
func (wg *WorldGenerator) GenerateChunk(coords vec.Vec2) (*Chunk, error) {
	chunk := NewChunk(coords, wg.seed)

	// Чанк-локальный детерминированный поток случайности
	chunkSeed := util.ChunkSeed(wg.seed, coords.X, coords.Y)
	rng := rand.New(rand.NewSource(chunkSeed))

	// 1. Ландшафт: без него чанк непригоден, ошибка поднимается наверх
	biomes, err := wg.terrain.GenerateBiomeMap(coords)
	if err != nil {
		return nil, fmt.Errorf("генерация биомов чанка %v: %w", coords, err)
	}
	tiles, err := wg.terrain.GenerateTiles(coords, biomes, rng)
	if err != nil {
		return nil, fmt.Errorf("генерация тайлов чанка %v: %w", coords, err)
	}
	chunk.Tiles = tiles
	chunk.Biomes = biomes
	chunk.IsLoaded = true

	// 2. Базовые сущности: сбой спаунера не прерывает генерацию,
	// чанк просто получает меньше сущностей
	if objects, err := wg.spawner.SpawnObjects(tiles, biomes, rng); err != nil {
		wg.log.Warnf("Спаунер объектов для чанка %v: %v", coords, err)
	} else {
		chunk.Entities = append(chunk.Entities, objects...)
	}
	if enemies, err := wg.spawner.SpawnEnemies(tiles, biomes, rng); err != nil {
		wg.log.Warnf("Спаунер врагов для чанка %v: %v", coords, err)
	} else {
		chunk.Entities = append(chunk.Entities, enemies...)
	}

	// 3-4. Решение о поселении и наложение паттерна.
	// Всегда выполняется последним, чтобы раскладку поселения
	// не нарушило размещение обычных сущностей.
	histogram := chunk.BiomeHistogram()
	if sType, ok := wg.settlements.ShouldGenerate(coords.X, coords.Y, histogram); ok {
		if err := wg.applySettlement(chunk, sType, histogram); err != nil {
			wg.log.Errorf("Наложение поселения %s на чанк %v: %v", sType, coords, err)
		}
	}

	chunk.IsGenerated = true
	return chunk, nil
}

// applySettlement накладывает поселение на чанк: чистит базовые сущности
// в футпринте, штампует адаптированный к биому паттерн и добавляет NPC.
func (wg *WorldGenerator) applySettlement(chunk *Chunk, sType settlement.Type, histogram map[tile.Biome]int) error {
	st, err := wg.settlements.Generate(chunk.Coords.X, chunk.Coords.Y, sType)
	if err != nil {
		return err
	}

	dominant := tile.DominantBiome(histogram)
	pat := settlement.AdaptToBiome(st.Pattern, dominant)

	// Локальный угол площадки; повторный кламп на случай, если футпринт
	// варианта не помещается от выбранного смещения
	chunkOrigin := chunk.Coords.ChunkOrigin()
	local := st.WorldOrigin.Sub(chunkOrigin)
	local = clampFootprint(local, pat.Width, pat.Height)

	// Убираем базовые сущности внутри футпринта
	kept := chunk.Entities[:0]
	for _, e := range chunk.Entities {
		inside := e.X >= local.X && e.X < local.X+pat.Width &&
			e.Y >= local.Y && e.Y < local.Y+pat.Height
		if !inside {
			kept = append(kept, e)
		}
	}
	chunk.Entities = kept

	// Штампуем тайлы паттерна поверх ландшафта
	for py := 0; py < pat.Height; py++ {
		for px := 0; px < pat.Width; px++ {
			chunk.SetTile(local.X+px, local.Y+py, pat.At(px, py))
		}
	}

	// Жители поселения становятся сущностями чанка. ID детерминирован
	// по имени и координатам чанка.
	for _, npc := range st.NPCs {
		lx := clampCoord(npc.Pos.X - chunkOrigin.X)
		ly := clampCoord(npc.Pos.Y - chunkOrigin.Y)

		chunk.Entities = append(chunk.Entities, Entity{
			ID:         npcEntityID(npc.Name, chunk.Coords),
			Kind:       EntityNPC,
			Type:       npc.Role,
			Name:       npc.Name,
			X:          lx,
			Y:          ly,
			IsShop:     npc.IsShop,
			Home:       npc.Home,
			Importance: uint8(npc.Importance),
			Dialogue:   npc.Dialogue,
		})
	}

	wg.log.Infof("Поселение %s (%s) в чанке %v: %d зданий, %d жителей, %d магазинов",
		st.Type, pat.Name, chunk.Coords, len(st.Buildings), st.TotalNPCs, st.ShopCount)
	getWorldMetrics().settlementsPlaced.WithLabelValues(string(st.Type)).Inc()

	return nil
}

// npcEntityID выводит детерминированный ID жителя из имени и координат чанка
func npcEntityID(name string, coords vec.Vec2) string {
	key := fmt.Sprintf("npc:%s:%d:%d", name, coords.X, coords.Y)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}

// clampFootprint клампит локальный угол площадки так, чтобы футпринт
// w x h полностью помещался в чанк с отступом в один тайл
func clampFootprint(local vec.Vec2, w, h int) vec.Vec2 {
	maxX := ChunkSize - w - 1
	maxY := ChunkSize - h - 1
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}

	if local.X < 0 {
		local.X = 0
	}
	if local.X > maxX {
		local.X = maxX
	}
	if local.Y < 0 {
		local.Y = 0
	}
	if local.Y > maxY {
		local.Y = maxY
	}
	return local
}

// clampCoord клампит локальную координату в границы чанка
func clampCoord(v int) int {
	if v < 0 {
		return 0
	}
	if v >= ChunkSize {
		return ChunkSize - 1
	}
	return v
}
