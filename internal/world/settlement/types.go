package settlement

import (
	"github.com/annel0/tileworld/internal/world/tile"
)

// Type представляет тип поселения
type Type string

const (
	TypeVillage     Type = "village"
	TypeHamlet      Type = "hamlet"
	TypeTradingPost Type = "trading_post"
	TypeFortress    Type = "fortress"
)

// typeOrder фиксирует порядок проверки типов в ShouldGenerate.
// Порядок обхода карты шаблонов недетерминирован, поэтому решение
// о спауне всегда идёт по этому списку.
var typeOrder = []Type{TypeVillage, TypeHamlet, TypeTradingPost, TypeFortress}

// Importance уровень важности жителя поселения
type Importance uint8

const (
	ImportanceLow Importance = iota
	ImportanceMedium
	ImportanceHigh
)

// String возвращает метку уровня важности
func (i Importance) String() string {
	switch i {
	case ImportanceHigh:
		return "high"
	case ImportanceMedium:
		return "medium"
	default:
		return "low"
	}
}

// BuildingArchetype описывает архетип здания в шаблоне поселения.
// NPCRole пустой у зданий без жителя (колодцы, сараи, башни).
type BuildingArchetype struct {
	Name       string
	Width      int
	Height     int
	NPCRole    string
	IsShop     bool
	Importance Importance
}

// Template статическое описание типа поселения: номинальный размер
// площадки, архетипы зданий, совместимые биомы, шанс спауна на чанк
// и минимальная дистанция между поселениями одного типа (в чанках).
type Template struct {
	Type         Type
	Width        int
	Height       int
	Buildings    []BuildingArchetype
	Biomes       []tile.Biome
	SpawnChance  float64
	MinDistance  int
	MaxResidents int
}

// compatibleWith сообщает, входит ли биом в совместимый набор шаблона
func (t *Template) compatibleWith(biome tile.Biome) bool {
	for _, b := range t.Biomes {
		if b == biome {
			return true
		}
	}
	return false
}

// catalogue — статический каталог шаблонов поселений
var catalogue = map[Type]*Template{
	TypeVillage: {
		Type:   TypeVillage,
		Width:  24,
		Height: 24,
		Buildings: []BuildingArchetype{
			{Name: "town_hall", Width: 6, Height: 5, NPCRole: "elder", Importance: ImportanceHigh},
			{Name: "tavern", Width: 5, Height: 5, NPCRole: "innkeeper", IsShop: true, Importance: ImportanceMedium},
			{Name: "general_store", Width: 4, Height: 4, NPCRole: "merchant", IsShop: true, Importance: ImportanceMedium},
			{Name: "house", Width: 4, Height: 4, NPCRole: "villager", Importance: ImportanceLow},
			{Name: "house", Width: 4, Height: 4, NPCRole: "villager", Importance: ImportanceLow},
			{Name: "house", Width: 4, Height: 4, NPCRole: "villager", Importance: ImportanceLow},
			{Name: "well", Width: 2, Height: 2},
		},
		Biomes:       []tile.Biome{tile.BiomePlains, tile.BiomeForest},
		SpawnChance:  0.06,
		MinDistance:  4,
		MaxResidents: 10,
	},
	TypeHamlet: {
		Type:   TypeHamlet,
		Width:  16,
		Height: 16,
		Buildings: []BuildingArchetype{
			{Name: "house", Width: 4, Height: 4, NPCRole: "farmer", Importance: ImportanceMedium},
			{Name: "house", Width: 4, Height: 4, NPCRole: "villager", Importance: ImportanceLow},
			{Name: "barn", Width: 5, Height: 4},
			{Name: "well", Width: 2, Height: 2},
		},
		Biomes:       []tile.Biome{tile.BiomePlains, tile.BiomeForest, tile.BiomeSwamp},
		SpawnChance:  0.08,
		MinDistance:  3,
		MaxResidents: 5,
	},
	TypeTradingPost: {
		Type:   TypeTradingPost,
		Width:  18,
		Height: 18,
		Buildings: []BuildingArchetype{
			{Name: "trading_hall", Width: 6, Height: 5, NPCRole: "trader", IsShop: true, Importance: ImportanceHigh},
			{Name: "guard_tower", Width: 3, Height: 3, NPCRole: "guard", Importance: ImportanceMedium},
			{Name: "stable", Width: 4, Height: 4, NPCRole: "stablehand", Importance: ImportanceLow},
		},
		Biomes:       []tile.Biome{tile.BiomeDesert, tile.BiomePlains},
		SpawnChance:  0.04,
		MinDistance:  6,
		MaxResidents: 6,
	},
	TypeFortress: {
		Type:   TypeFortress,
		Width:  26,
		Height: 26,
		Buildings: []BuildingArchetype{
			{Name: "keep", Width: 8, Height: 7, NPCRole: "commander", Importance: ImportanceHigh},
			{Name: "barracks", Width: 6, Height: 4, NPCRole: "guard", Importance: ImportanceMedium},
			{Name: "barracks", Width: 6, Height: 4, NPCRole: "guard", Importance: ImportanceMedium},
			{Name: "armory", Width: 4, Height: 4, NPCRole: "blacksmith", IsShop: true, Importance: ImportanceMedium},
			{Name: "watchtower", Width: 3, Height: 3},
		},
		Biomes:       []tile.Biome{tile.BiomeMountains, tile.BiomeTundra},
		SpawnChance:  0.03,
		MinDistance:  8,
		MaxResidents: 8,
	},
}

// Catalogue возвращает шаблон для типа поселения
func Catalogue(t Type) (*Template, bool) {
	tmpl, ok := catalogue[t]
	return tmpl, ok
}
