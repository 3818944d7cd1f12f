package world

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/annel0/tileworld/internal/util"
	"github.com/annel0/tileworld/internal/vec"
	"github.com/annel0/tileworld/internal/world/tile"
)

func TestGenerateBiomeMapDeterministic(t *testing.T) {
	coords := vec.Vec2{X: 3, Y: -2}

	first, err := NewTerrainGenerator(12345).GenerateBiomeMap(coords)
	if err != nil {
		t.Fatalf("GenerateBiomeMap: %v", err)
	}
	second, err := NewTerrainGenerator(12345).GenerateBiomeMap(coords)
	if err != nil {
		t.Fatalf("GenerateBiomeMap: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("Сетки биомов двух независимых генераторов не совпали")
	}
}

func TestGenerateBiomeMapContinuity(t *testing.T) {
	// Шум сэмплируется по глобальным координатам: высота на границе
	// чанков считается одинаково с обеих сторон
	tg := NewTerrainGenerator(12345)

	right, err := tg.GenerateBiomeMap(vec.Vec2{X: 1, Y: 0})
	if err != nil {
		t.Fatalf("GenerateBiomeMap: %v", err)
	}

	// Биом столбца x=0 чанка (1,0) зависит только от глобальной
	// координаты x=64 — границы чанков на карту биомов не влияют
	for y := 0; y < ChunkSize; y++ {
		height := tg.heightAt(ChunkSize, y)
		biomeValue := tg.biomeNoise.At2D(float64(ChunkSize)*tg.biomeScale, float64(y)*tg.biomeScale)
		want := tg.getBiomeType(height, biomeValue)

		if got := right[0+y*ChunkSize]; got != want {
			t.Errorf("Глобальный (64,%d): ожидался биом %v, получено %v", y, want, got)
		}
	}
}

func TestGenerateTilesMatchBiomes(t *testing.T) {
	tg := NewTerrainGenerator(12345)
	coords := vec.Vec2{X: 0, Y: 0}

	biomes, err := tg.GenerateBiomeMap(coords)
	if err != nil {
		t.Fatalf("GenerateBiomeMap: %v", err)
	}

	rng := rand.New(rand.NewSource(util.ChunkSeed(12345, 0, 0)))
	tiles, err := tg.GenerateTiles(coords, biomes, rng)
	if err != nil {
		t.Fatalf("GenerateTiles: %v", err)
	}

	for i, b := range biomes {
		want := b.GroundTile()
		got := tiles[i]
		// В горах допускается скальный обломок вместо камня
		if b == tile.BiomeMountains && got == tile.Rock {
			continue
		}
		if got != want {
			t.Fatalf("Индекс %d: биом %v должен давать тайл %v, получено %v", i, b, want, got)
		}
	}
}

func TestGenerateTilesRejectsBadGrid(t *testing.T) {
	tg := NewTerrainGenerator(12345)
	rng := rand.New(rand.NewSource(1))

	if _, err := tg.GenerateTiles(vec.Vec2{}, make([]tile.Biome, 10), rng); err == nil {
		t.Error("Сетка биомов неправильного размера должна давать ошибку")
	}
}

func TestGetBiomeTypeBands(t *testing.T) {
	tg := NewTerrainGenerator(12345)

	cases := []struct {
		height     float64
		biomeValue float64
		want       tile.Biome
	}{
		{0.10, 0.50, tile.BiomeDeepWater},
		{0.25, 0.50, tile.BiomeWater},
		{0.90, 0.50, tile.BiomeMountains},
		{0.50, 0.10, tile.BiomeDesert},
		{0.50, 0.35, tile.BiomeSwamp},
		{0.50, 0.50, tile.BiomePlains},
		{0.50, 0.65, tile.BiomeForest},
		{0.50, 0.90, tile.BiomeTundra},
	}
	for _, tc := range cases {
		if got := tg.getBiomeType(tc.height, tc.biomeValue); got != tc.want {
			t.Errorf("getBiomeType(%.2f, %.2f): ожидался %v, получено %v",
				tc.height, tc.biomeValue, tc.want, got)
		}
	}
}
