package tile

import "testing"

func TestDominantBiome(t *testing.T) {
	histogram := map[Biome]int{
		BiomePlains: 100,
		BiomeForest: 3000,
		BiomeDesert: 996,
	}
	if got := DominantBiome(histogram); got != BiomeForest {
		t.Errorf("Ожидался %v, получено %v", BiomeForest, got)
	}
}

func TestDominantBiomeTieBreak(t *testing.T) {
	// При равенстве частот побеждает биом с меньшим кодом —
	// результат не зависит от порядка обхода карты
	histogram := map[Biome]int{
		BiomeSwamp:  2048,
		BiomeForest: 2048,
	}
	if got := DominantBiome(histogram); got != BiomeForest {
		t.Errorf("Ожидался %v при равных частотах, получено %v", BiomeForest, got)
	}
}

func TestDominantBiomeEmpty(t *testing.T) {
	if got := DominantBiome(map[Biome]int{}); got != BiomePlains {
		t.Errorf("Для пустой гистограммы ожидался %v, получено %v", BiomePlains, got)
	}
}

func TestGroundTile(t *testing.T) {
	cases := []struct {
		biome Biome
		want  TileID
	}{
		{BiomePlains, Grass},
		{BiomeForest, ForestFloor},
		{BiomeDesert, Sand},
		{BiomeTundra, Snow},
		{BiomeSwamp, SwampMud},
		{BiomeMountains, Stone},
		{BiomeWater, Water},
		{BiomeDeepWater, DeepWater},
	}
	for _, tc := range cases {
		if got := tc.biome.GroundTile(); got != tc.want {
			t.Errorf("%v.GroundTile(): ожидался %v, получено %v", tc.biome, tc.want, got)
		}
	}
}

func TestIsGround(t *testing.T) {
	for _, tl := range []TileID{Grass, Dirt, Sand, Snow, ForestFloor, SwampMud, Path, FloorWood} {
		if !tl.IsGround() {
			t.Errorf("Тайл %s должен быть проходимой поверхностью", tl.Name())
		}
	}
	for _, tl := range []TileID{Unknown, Water, DeepWater, Stone, WallWood, WallStone, Fence} {
		if tl.IsGround() {
			t.Errorf("Тайл %s не должен быть проходимой поверхностью", tl.Name())
		}
	}
}
