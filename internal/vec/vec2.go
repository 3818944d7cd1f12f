package vec

import "math"

// ChunkSize размер стороны чанка в тайлах.
// Сдвиги ниже (>>6, &0x3F, <<6) должны соответствовать этому значению.
const ChunkSize = 64

// Vec2 представляет 2D координаты
type Vec2 struct {
	X, Y int
}

// ToChunkCoords преобразует глобальные координаты в координаты чанка.
// Арифметический сдвиг даёт округление вниз и для отрицательных координат.
func (v Vec2) ToChunkCoords() Vec2 {
	return Vec2{X: v.X >> 6, Y: v.Y >> 6} // Деление на 64
}

// LocalInChunk возвращает локальные координаты внутри чанка
func (v Vec2) LocalInChunk() Vec2 {
	return Vec2{X: v.X & 0x3F, Y: v.Y & 0x3F} // Модуль 64
}

// ChunkOrigin возвращает глобальные координаты угла чанка с координатами v
func (v Vec2) ChunkOrigin() Vec2 {
	return Vec2{X: v.X << 6, Y: v.Y << 6} // Умножение на 64
}

// Add возвращает сумму двух векторов
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// Sub возвращает разность двух векторов
func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

// DistanceTo вычисляет евклидово расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ChebyshevTo вычисляет расстояние Чебышёва до другой точки.
// Используется для радиусов стриминга и ограничений на расстояние между поселениями.
func (v Vec2) ChebyshevTo(other Vec2) int {
	dx := abs(v.X - other.X)
	dy := abs(v.Y - other.Y)
	if dx > dy {
		return dx
	}
	return dy
}

func abs(a int) int {
	if a < 0 {
		return -a
	}
	return a
}
