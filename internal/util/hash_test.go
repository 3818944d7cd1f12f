package util

import "testing"

func TestChunkSeedDeterministic(t *testing.T) {
	if ChunkSeed(12345, 3, -7) != ChunkSeed(12345, 3, -7) {
		t.Error("Одинаковые аргументы должны давать одинаковый сид")
	}
}

func TestChunkSeedVaries(t *testing.T) {
	base := ChunkSeed(12345, 0, 0)

	variants := []int64{
		ChunkSeed(12345, 1, 0),
		ChunkSeed(12345, 0, 1),
		ChunkSeed(54321, 0, 0),
		ChunkSeed(12345, -1, 0),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("Вариант %d совпал с базовым сидом %d", i, base)
		}
	}

	// Координаты не должны склеиваться: (1,0) != (0,1)
	if ChunkSeed(12345, 1, 0) == ChunkSeed(12345, 0, 1) {
		t.Error("Сиды чанков (1,0) и (0,1) не должны совпадать")
	}
}

func TestStreamSeedSeparatesTags(t *testing.T) {
	// Разные подсистемы получают независимые потоки случайности
	settlement := StreamSeed(12345, 2, 2, "settlement")
	pattern := StreamSeed(12345, 2, 2, "pattern")
	layout := StreamSeed(12345, 2, 2, "layout")

	if settlement == pattern || settlement == layout || pattern == layout {
		t.Errorf("Потоки с разными метками совпали: %d, %d, %d", settlement, pattern, layout)
	}

	// Пустая метка эквивалентна сиду чанка
	if StreamSeed(12345, 2, 2, "") != ChunkSeed(12345, 2, 2) {
		t.Error("StreamSeed с пустой меткой должен совпадать с ChunkSeed")
	}
}
