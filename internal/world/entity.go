package world

// EntityKind различает категории сущностей в чанке
type EntityKind uint8

const (
	EntityObject EntityKind = iota // Статический объект (дерево, камень)
	EntityEnemy                    // Враждебная сущность
	EntityNPC                      // Житель поселения
)

// String возвращает имя категории сущности
func (k EntityKind) String() string {
	switch k {
	case EntityObject:
		return "object"
	case EntityEnemy:
		return "enemy"
	case EntityNPC:
		return "npc"
	default:
		return "unknown"
	}
}

// Entity представляет запись о сущности в чанке.
// Координаты X/Y локальные, в диапазоне [0, ChunkSize).
// Поля Health/Damage заполняются только для врагов,
// IsShop/Home/Dialogue — только для NPC.
type Entity struct {
	ID         string     `json:"id,omitempty"`
	Kind       EntityKind `json:"kind"`
	Type       string     `json:"type"`
	Name       string     `json:"name"`
	X          int        `json:"x"`
	Y          int        `json:"y"`
	Health     int        `json:"health,omitempty"`
	Damage     int        `json:"damage,omitempty"`
	IsShop     bool       `json:"is_shop,omitempty"`
	Home       string     `json:"home,omitempty"`
	Importance uint8      `json:"importance,omitempty"`
	Dialogue   []string   `json:"dialogue,omitempty"`
}
