package tile

// TileID представляет тип тайла в сетке чанка
type TileID uint16

// Коды тайлов. Unknown — сигнальное значение для чтения вне границ
// или из невыгруженного чанка, в сгенерированных чанках не встречается.
const (
	Unknown TileID = 0

	// Природные тайлы
	Grass       TileID = 1
	Dirt        TileID = 2
	Sand        TileID = 3
	Snow        TileID = 4
	ForestFloor TileID = 5
	SwampMud    TileID = 6
	Stone       TileID = 7
	Water       TileID = 8
	DeepWater   TileID = 9
	Tree        TileID = 10
	Cactus      TileID = 11
	Rock        TileID = 12
	Bush        TileID = 13

	// Строительные тайлы поселений
	WallWood    TileID = 20
	WallStone   TileID = 21
	Brick       TileID = 22
	Door        TileID = 23
	FloorWood   TileID = 24
	Path        TileID = 25
	Well        TileID = 26
	Fence       TileID = 27
	MarketStall TileID = 28
)

// Name возвращает строковое имя тайла (для логов и отладки)
func (t TileID) Name() string {
	switch t {
	case Grass:
		return "grass"
	case Dirt:
		return "dirt"
	case Sand:
		return "sand"
	case Snow:
		return "snow"
	case ForestFloor:
		return "forest_floor"
	case SwampMud:
		return "swamp_mud"
	case Stone:
		return "stone"
	case Water:
		return "water"
	case DeepWater:
		return "deep_water"
	case Tree:
		return "tree"
	case Cactus:
		return "cactus"
	case Rock:
		return "rock"
	case Bush:
		return "bush"
	case WallWood:
		return "wall_wood"
	case WallStone:
		return "wall_stone"
	case Brick:
		return "brick"
	case Door:
		return "door"
	case FloorWood:
		return "floor_wood"
	case Path:
		return "path"
	case Well:
		return "well"
	case Fence:
		return "fence"
	case MarketStall:
		return "market_stall"
	default:
		return "unknown"
	}
}

// IsGround сообщает, является ли тайл проходимой поверхностью
func (t TileID) IsGround() bool {
	switch t {
	case Grass, Dirt, Sand, Snow, ForestFloor, SwampMud, Path, FloorWood:
		return true
	default:
		return false
	}
}
