package world

import (
	"fmt"
	"math/rand"

	"github.com/annel0/tileworld/internal/util"
	"github.com/annel0/tileworld/internal/vec"
	"github.com/annel0/tileworld/internal/world/tile"
)

// Константы высот для генерации
const (
	DeepWaterMax    = 0.20 // Ниже - глубинная вода
	ShallowWaterMax = 0.30 // Ниже - мелководье
	MountainStart   = 0.80 // Выше - горы
)

// Пороги значения биомного шума для средних высот
const (
	desertMax = 0.30
	swampMax  = 0.42
	plainsMax = 0.58
	forestMax = 0.70
)

// TerrainSource — интерфейс генератора биомов и тайлов.
// WorldGenerator потребляет его как чёрный ящик.
type TerrainSource interface {
	GenerateBiomeMap(coords vec.Vec2) ([]tile.Biome, error)
	GenerateTiles(coords vec.Vec2, biomes []tile.Biome, rng *rand.Rand) ([]tile.TileID, error)
}

// TerrainGenerator генерирует биомы и тайлы ландшафта на основе шума Перлина.
// Шум сэмплируется по глобальным координатам под сидом мира, поэтому
// ландшафт непрерывен на границах чанков и полностью детерминирован.
type TerrainGenerator struct {
	seed        int64
	noiseScale  float64 // Масштаб основного шума (высота)
	biomeScale  float64 // Масштаб шума биомов
	heightNoise *util.NoiseField
	biomeNoise  *util.NoiseField
}

// NewTerrainGenerator создаёт генератор ландшафта для указанного сида мира
func NewTerrainGenerator(seed int64) *TerrainGenerator {
	return &TerrainGenerator{
		seed:        seed,
		noiseScale:  0.05, // Настройка сглаженности ландшафта
		biomeScale:  0.02, // Настройка размера биомов
		heightNoise: util.NewNoiseField(seed),
		biomeNoise:  util.NewNoiseField(seed + 42),
	}
}

// GenerateBiomeMap генерирует сетку биомов для чанка
func (tg *TerrainGenerator) GenerateBiomeMap(coords vec.Vec2) ([]tile.Biome, error) {
	origin := coords.ChunkOrigin()
	biomes := make([]tile.Biome, chunkArea)

	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			globalX := origin.X + x
			globalY := origin.Y + y

			height := tg.heightAt(globalX, globalY)

			// Значение для определения биома (другой масштаб шума)
			biomeValue := tg.biomeNoise.At2D(
				float64(globalX)*tg.biomeScale,
				float64(globalY)*tg.biomeScale,
			)

			biomes[x+y*ChunkSize] = tg.getBiomeType(height, biomeValue)
		}
	}

	return biomes, nil
}

// GenerateTiles генерирует сетку тайлов по сетке биомов.
// rng используется только для редких вариаций (камни в горах),
// сид rng детерминирован по чанку.
func (tg *TerrainGenerator) GenerateTiles(coords vec.Vec2, biomes []tile.Biome, rng *rand.Rand) ([]tile.TileID, error) {
	if len(biomes) != chunkArea {
		return nil, fmt.Errorf("некорректный размер сетки биомов: ожидалось %d, получено %d", chunkArea, len(biomes))
	}

	tiles := make([]tile.TileID, chunkArea)

	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			idx := x + y*ChunkSize
			biome := biomes[idx]

			t := biome.GroundTile()

			// В горах изредка выступают скальные обломки
			if biome == tile.BiomeMountains && rng.Float64() < 0.08 {
				t = tile.Rock
			}

			tiles[idx] = t
		}
	}

	return tiles, nil
}

// heightAt возвращает значение высоты для глобальных координат
func (tg *TerrainGenerator) heightAt(globalX, globalY int) float64 {
	return tg.heightNoise.At2D(
		float64(globalX)*tg.noiseScale,
		float64(globalY)*tg.noiseScale,
	)
}

// getBiomeType определяет тип биома на основе значений шума
func (tg *TerrainGenerator) getBiomeType(height, biomeValue float64) tile.Biome {
	// Водные биомы в низинах
	if height < DeepWaterMax {
		return tile.BiomeDeepWater
	}
	if height < ShallowWaterMax {
		return tile.BiomeWater
	}

	// Горные биомы на возвышенностях
	if height > MountainStart {
		return tile.BiomeMountains
	}

	// Для средних высот выбираем биом на основе biomeValue
	switch {
	case biomeValue < desertMax:
		return tile.BiomeDesert
	case biomeValue < swampMax:
		return tile.BiomeSwamp
	case biomeValue < plainsMax:
		return tile.BiomePlains
	case biomeValue < forestMax:
		return tile.BiomeForest
	default:
		return tile.BiomeTundra
	}
}
