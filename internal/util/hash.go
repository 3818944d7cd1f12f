package util

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ChunkSeed выводит детерминированный сид чанка из глобального сида мира
// и координат чанка. Одинаковая пара (сид, координаты) всегда даёт один
// и тот же результат, разные чанки — статистически независимые потоки.
func ChunkSeed(worldSeed int64, cx, cy int) int64 {
	return StreamSeed(worldSeed, cx, cy, "")
}

// StreamSeed выводит отдельный детерминированный поток случайности для
// подсистемы с меткой tag (например "settlement" или "layout"), чтобы
// решения разных подсистем не влияли друг на друга.
func StreamSeed(worldSeed int64, cx, cy int, tag string) int64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:8], uint64(worldSeed))
	binary.LittleEndian.PutUint64(buf[8:16], uint64(int64(cx)))
	binary.LittleEndian.PutUint64(buf[16:24], uint64(int64(cy)))

	h := xxhash.New()
	h.Write(buf[:])
	if tag != "" {
		h.Write([]byte(tag))
	}
	return int64(h.Sum64())
}
