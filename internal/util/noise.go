package util

import (
	"github.com/aquilax/go-perlin"
)

// NoiseField обёртка над шумом Перлина с фиксированным сидом.
// Каждый генератор ландшафта владеет своими полями шума,
// глобальное состояние не используется.
type NoiseField struct {
	noise *perlin.Perlin
}

// NewNoiseField создаёт поле шума Перлина с указанным сидом
func NewNoiseField(seed int64) *NoiseField {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав
	return &NoiseField{noise: perlin.NewPerlin(alpha, beta, n, seed)}
}

// At2D возвращает значение шума для указанных координат (от 0 до 1)
func (nf *NoiseField) At2D(x, y float64) float64 {
	// Получаем значение шума (от -1 до 1)
	noise := nf.noise.Noise2D(x, y)

	// Преобразуем в диапазон от 0 до 1
	return (noise + 1.0) / 2.0
}
