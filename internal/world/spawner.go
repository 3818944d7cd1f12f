package world

import (
	"fmt"
	"math/rand"

	"github.com/annel0/tileworld/internal/world/tile"
)

// EntitySource — интерфейс спаунера объектов и врагов.
// WorldGenerator потребляет его как чёрный ящик; ошибки спаунера
// не прерывают генерацию чанка.
type EntitySource interface {
	SpawnObjects(tiles []tile.TileID, biomes []tile.Biome, rng *rand.Rand) ([]Entity, error)
	SpawnEnemies(tiles []tile.TileID, biomes []tile.Biome, rng *rand.Rand) ([]Entity, error)
}

// EntitySpawner размещает объекты и врагов по биомам чанка
type EntitySpawner struct{}

// NewEntitySpawner создаёт спаунер сущностей
func NewEntitySpawner() *EntitySpawner {
	return &EntitySpawner{}
}

// objectChance возвращает тип объекта и шанс его появления для биома
type objectSpawn struct {
	entityType string
	name       string
	chance     float64
}

// Таблицы спауна объектов по биомам
var objectTable = map[tile.Biome][]objectSpawn{
	tile.BiomeForest: {
		{"tree", "Oak Tree", 0.12},
		{"bush", "Berry Bush", 0.02},
	},
	tile.BiomePlains: {
		{"tree", "Oak Tree", 0.02},
		{"bush", "Berry Bush", 0.03},
	},
	tile.BiomeDesert: {
		{"cactus", "Cactus", 0.02},
		{"rock", "Sandstone Rock", 0.01},
	},
	tile.BiomeTundra: {
		{"rock", "Frozen Rock", 0.02},
		{"tree", "Pine Tree", 0.01},
	},
	tile.BiomeSwamp: {
		{"bush", "Reed Bush", 0.04},
		{"tree", "Willow Tree", 0.03},
	},
	tile.BiomeMountains: {
		{"rock", "Boulder", 0.05},
	},
}

// enemySpawn описывает врага и шанс его появления
type enemySpawn struct {
	entityType string
	name       string
	health     int
	damage     int
	chance     float64
}

// Таблицы спауна врагов по биомам
var enemyTable = map[tile.Biome][]enemySpawn{
	tile.BiomePlains: {
		{"slime", "Slime", 20, 5, 0.004},
	},
	tile.BiomeForest: {
		{"slime", "Slime", 20, 5, 0.003},
		{"wolf", "Wolf", 35, 8, 0.003},
	},
	tile.BiomeDesert: {
		{"scorpion", "Scorpion", 25, 10, 0.004},
	},
	tile.BiomeTundra: {
		{"wolf", "Wolf", 35, 8, 0.005},
	},
	tile.BiomeSwamp: {
		{"bog_fiend", "Bog Fiend", 45, 12, 0.003},
	},
}

// SpawnObjects размещает статические объекты (деревья, камни) по чанку
func (es *EntitySpawner) SpawnObjects(tiles []tile.TileID, biomes []tile.Biome, rng *rand.Rand) ([]Entity, error) {
	if len(tiles) != chunkArea || len(biomes) != chunkArea {
		return nil, fmt.Errorf("некорректный размер сеток: тайлы %d, биомы %d", len(tiles), len(biomes))
	}

	var entities []Entity
	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			idx := x + y*ChunkSize
			if !tiles[idx].IsGround() {
				continue
			}

			for _, spawn := range objectTable[biomes[idx]] {
				if rng.Float64() < spawn.chance {
					entities = append(entities, Entity{
						Kind: EntityObject,
						Type: spawn.entityType,
						Name: spawn.name,
						X:    x,
						Y:    y,
					})
					break // Не более одного объекта на тайл
				}
			}
		}
	}

	return entities, nil
}

// SpawnEnemies размещает врагов по чанку
func (es *EntitySpawner) SpawnEnemies(tiles []tile.TileID, biomes []tile.Biome, rng *rand.Rand) ([]Entity, error) {
	if len(tiles) != chunkArea || len(biomes) != chunkArea {
		return nil, fmt.Errorf("некорректный размер сеток: тайлы %d, биомы %d", len(tiles), len(biomes))
	}

	var entities []Entity
	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			idx := x + y*ChunkSize
			if !tiles[idx].IsGround() {
				continue
			}

			for _, spawn := range enemyTable[biomes[idx]] {
				if rng.Float64() < spawn.chance {
					entities = append(entities, Entity{
						Kind:   EntityEnemy,
						Type:   spawn.entityType,
						Name:   spawn.name,
						X:      x,
						Y:      y,
						Health: spawn.health,
						Damage: spawn.damage,
					})
					break
				}
			}
		}
	}

	return entities, nil
}
