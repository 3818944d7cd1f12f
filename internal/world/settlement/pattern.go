package settlement

import (
	"math/rand"

	"github.com/annel0/tileworld/internal/vec"
	"github.com/annel0/tileworld/internal/world/tile"
)

// Building описывает здание внутри паттерна.
// Координаты локальные относительно угла площадки поселения.
type Building struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Type   string `json:"type"`
}

// Pattern — неизменяемый именованный шаблон раскладки поселения:
// сетка тайлов, здания и дорожки. Экземпляры разделяются между
// вызовами только на чтение; адаптация к биому возвращает копию.
type Pattern struct {
	Name      string
	Width     int
	Height    int
	Tiles     []tile.TileID // Плоская сетка, индекс (x + y*Width)
	Buildings []Building
	Pathways  []vec.Vec2

	weight int // Вес при выборе варианта
}

// At возвращает тайл паттерна по локальным координатам
func (p *Pattern) At(x, y int) tile.TileID {
	if x < 0 || x >= p.Width || y < 0 || y >= p.Height {
		return tile.Unknown
	}
	return p.Tiles[x+y*p.Width]
}

// groundSubstitution — таблица подстановки базовых тайлов поверхности
// при адаптации паттерна к биому. Стены, двери, кирпич, вода и камень
// никогда не подменяются.
var groundSubstitution = map[tile.Biome]map[tile.TileID]tile.TileID{
	tile.BiomeDesert: {
		tile.Grass: tile.Sand,
		tile.Dirt:  tile.Sand,
	},
	tile.BiomeTundra: {
		tile.Grass: tile.Snow,
		tile.Dirt:  tile.Snow,
	},
	tile.BiomeForest: {
		tile.Grass: tile.ForestFloor,
		tile.Dirt:  tile.ForestFloor,
	},
	tile.BiomeSwamp: {
		tile.Grass: tile.SwampMud,
		tile.Dirt:  tile.SwampMud,
	},
}

// AdaptToBiome возвращает копию паттерна с тайлами поверхности,
// подобранными под биом. Позиции зданий и дорожек не меняются,
// исходный паттерн не мутирует.
func AdaptToBiome(p *Pattern, biome tile.Biome) *Pattern {
	adapted := &Pattern{
		Name:      p.Name,
		Width:     p.Width,
		Height:    p.Height,
		Tiles:     make([]tile.TileID, len(p.Tiles)),
		Buildings: p.Buildings,
		Pathways:  p.Pathways,
		weight:    p.weight,
	}

	subst := groundSubstitution[biome]
	for i, t := range p.Tiles {
		if replacement, ok := subst[t]; ok {
			adapted.Tiles[i] = replacement
		} else {
			adapted.Tiles[i] = t
		}
	}

	return adapted
}

// PatternGenerator хранит библиотеку вариантов раскладки по типам поселений
type PatternGenerator struct {
	variants map[Type][]*Pattern
}

// NewPatternGenerator строит библиотеку паттернов
func NewPatternGenerator() *PatternGenerator {
	return &PatternGenerator{
		variants: buildPatternLibrary(),
	}
}

// GetPattern выбирает вариант раскладки для типа поселения.
// Выбор взвешенный и детерминированный: одинаковая пара (тип, сид)
// всегда даёт один и тот же вариант, разные сиды дают визуально
// разные раскладки одного типа.
func (pg *PatternGenerator) GetPattern(t Type, seed int64) *Pattern {
	variants := pg.variants[t]
	if len(variants) == 0 {
		return nil
	}

	total := 0
	for _, v := range variants {
		total += v.weight
	}

	rng := rand.New(rand.NewSource(seed))
	pick := rng.Intn(total)
	for _, v := range variants {
		pick -= v.weight
		if pick < 0 {
			return v
		}
	}
	return variants[len(variants)-1]
}

// Variants возвращает количество вариантов для типа поселения
func (pg *PatternGenerator) Variants(t Type) int {
	return len(pg.variants[t])
}
