package tile

// Biome представляет тип биома
type Biome uint8

const (
	BiomePlains Biome = iota
	BiomeForest
	BiomeDesert
	BiomeTundra
	BiomeSwamp
	BiomeMountains
	BiomeWater
	BiomeDeepWater
)

// String возвращает метку биома
func (b Biome) String() string {
	switch b {
	case BiomePlains:
		return "plains"
	case BiomeForest:
		return "forest"
	case BiomeDesert:
		return "desert"
	case BiomeTundra:
		return "tundra"
	case BiomeSwamp:
		return "swamp"
	case BiomeMountains:
		return "mountains"
	case BiomeWater:
		return "water"
	case BiomeDeepWater:
		return "deep_water"
	default:
		return "unknown"
	}
}

// DominantBiome возвращает самый частый биом гистограммы.
// При равенстве частот побеждает биом с меньшим кодом — результат
// не должен зависеть от порядка обхода карты.
func DominantBiome(histogram map[Biome]int) Biome {
	dominant := BiomePlains
	best := -1
	for b, count := range histogram {
		if count > best || (count == best && b < dominant) {
			dominant = b
			best = count
		}
	}
	return dominant
}

// GroundTile возвращает базовый тайл поверхности для биома
func (b Biome) GroundTile() TileID {
	switch b {
	case BiomeDesert:
		return Sand
	case BiomeTundra:
		return Snow
	case BiomeForest:
		return ForestFloor
	case BiomeSwamp:
		return SwampMud
	case BiomeMountains:
		return Stone
	case BiomeWater:
		return Water
	case BiomeDeepWater:
		return DeepWater
	default:
		return Grass
	}
}
