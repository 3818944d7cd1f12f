package settlement

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/annel0/tileworld/internal/util"
	"github.com/annel0/tileworld/internal/vec"
	"github.com/annel0/tileworld/internal/world/tile"
)

// NPC — житель поселения. Позиция абсолютная (мировые координаты).
type NPC struct {
	Name       string
	Role       string
	Home       string // Имя здания-дома
	IsShop     bool
	Importance Importance
	Dialogue   []string
	Pos        vec.Vec2
}

// Settlement — запись о сгенерированном поселении. Не персистится
// отдельно: её эффекты запекаются в сетку тайлов и список сущностей чанка.
type Settlement struct {
	Type        Type
	ChunkCoords vec.Vec2
	WorldOrigin vec.Vec2
	Width       int
	Height      int
	Pattern     *Pattern
	Buildings   []Building
	NPCs        []NPC
	TotalNPCs   int
	ShopCount   int
}

// PlacementIndex — история размещений поселений по типам.
// Сериализуема, чтобы ограничения на дистанцию переживали перезапуск.
type PlacementIndex map[Type][]vec.Vec2

// Manager решает, появляется ли поселение в чанке, и синтезирует
// его здания и жителей из шаблонов. Помимо истории размещений
// состояния не имеет; чанки между вызовами не удерживает.
type Manager struct {
	seed     int64
	patterns *PatternGenerator

	mu     sync.Mutex
	placed PlacementIndex
}

// NewManager создаёт менеджер поселений для указанного сида мира
func NewManager(seed int64, patterns *PatternGenerator) *Manager {
	return &Manager{
		seed:     seed,
		patterns: patterns,
		placed:   make(PlacementIndex),
	}
}

// ShouldGenerate решает, появляется ли поселение в чанке, и какого типа.
// Решение детерминировано по (сид, координаты): свой поток случайности
// на чанк, фиксированный порядок проверки типов. Принимается первый тип,
// который прошёл и проверку вероятности, и ограничение на дистанцию
// до уже размещённых поселений того же типа.
func (m *Manager) ShouldGenerate(cx, cy int, histogram map[tile.Biome]int) (Type, bool) {
	dominant := tile.DominantBiome(histogram)
	rng := rand.New(rand.NewSource(util.StreamSeed(m.seed, cx, cy, "settlement")))
	coords := vec.Vec2{X: cx, Y: cy}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range typeOrder {
		tmpl := catalogue[t]
		if !tmpl.compatibleWith(dominant) {
			continue
		}
		// Ровно один бросок на совместимый тип
		if rng.Float64() >= tmpl.SpawnChance {
			continue
		}
		if m.tooCloseLocked(t, coords, tmpl.MinDistance) {
			continue
		}

		m.recordLocked(t, coords)
		return t, true
	}

	return "", false
}

// tooCloseLocked проверяет ограничение на минимальную дистанцию Чебышёва
// (в чанках) до поселений того же типа. Сам чанк пропускается — повторная
// генерация того же чанка должна быть идемпотентной. Вызывается под мьютексом.
func (m *Manager) tooCloseLocked(t Type, coords vec.Vec2, minDistance int) bool {
	for _, other := range m.placed[t] {
		if other == coords {
			continue
		}
		if coords.ChebyshevTo(other) < minDistance {
			return true
		}
	}
	return false
}

// recordLocked записывает размещение без дубликатов. Вызывается под мьютексом.
func (m *Manager) recordLocked(t Type, coords vec.Vec2) {
	for _, other := range m.placed[t] {
		if other == coords {
			return
		}
	}
	m.placed[t] = append(m.placed[t], coords)
}

// Generate синтезирует поселение указанного типа для чанка: выбирает
// вариант раскладки, размещает площадку внутри чанка и заселяет здания.
// Полностью детерминировано по (сид, координаты, тип).
func (m *Manager) Generate(cx, cy int, t Type) (*Settlement, error) {
	tmpl, ok := catalogue[t]
	if !ok {
		return nil, fmt.Errorf("неизвестный тип поселения: %s", t)
	}

	pat := m.patterns.GetPattern(t, util.StreamSeed(m.seed, cx, cy, "pattern"))
	if pat == nil {
		return nil, fmt.Errorf("нет паттернов для типа поселения %s", t)
	}

	rng := rand.New(rand.NewSource(util.StreamSeed(m.seed, cx, cy, "layout")))

	// Случайное смещение площадки внутри чанка. Клампится так, чтобы
	// футпринт полностью помещался с отступом в один тайл от края.
	maxX := vec.ChunkSize - pat.Width - 1
	maxY := vec.ChunkSize - pat.Height - 1
	if maxX < 0 {
		maxX = 0
	}
	if maxY < 0 {
		maxY = 0
	}
	offset := vec.Vec2{X: rng.Intn(maxX + 1), Y: rng.Intn(maxY + 1)}

	chunkCoords := vec.Vec2{X: cx, Y: cy}
	origin := chunkCoords.ChunkOrigin().Add(offset)

	st := &Settlement{
		Type:        t,
		ChunkCoords: chunkCoords,
		WorldOrigin: origin,
		Width:       pat.Width,
		Height:      pat.Height,
		Pattern:     pat,
		Buildings:   append([]Building(nil), pat.Buildings...),
	}

	m.populate(st, tmpl, pat, rng)
	return st, nil
}

// populate заселяет поселение: NPC назначаются архетипам 1:1 в порядке
// важности (высокая раньше средней, средняя раньше низкой), архетипы
// без роли жителя не получают. Оставшиеся места до лимита заполняются
// анонимными фоновыми жителями.
func (m *Manager) populate(st *Settlement, tmpl *Template, pat *Pattern, rng *rand.Rand) {
	archetypes := make([]BuildingArchetype, len(tmpl.Buildings))
	copy(archetypes, tmpl.Buildings)
	sort.SliceStable(archetypes, func(i, j int) bool {
		return archetypes[i].Importance > archetypes[j].Importance
	})

	usedNames := make(map[string]bool)
	usedBuildings := make([]bool, len(pat.Buildings))

	for _, arch := range archetypes {
		if arch.NPCRole == "" {
			continue
		}

		// Дом — первое свободное здание паттерна того же типа;
		// если в варианте раскладки его нет, NPC ставится в центр площадки
		pos := st.WorldOrigin.Add(vec.Vec2{X: pat.Width / 2, Y: pat.Height / 2})
		for bi, b := range pat.Buildings {
			if usedBuildings[bi] || b.Type != arch.Name {
				continue
			}
			usedBuildings[bi] = true
			pos = st.WorldOrigin.Add(vec.Vec2{X: b.X + b.Width/2, Y: b.Y + b.Height/2})
			break
		}

		st.NPCs = append(st.NPCs, NPC{
			Name:       pickName(rng, usedNames),
			Role:       arch.NPCRole,
			Home:       arch.Name,
			IsShop:     arch.IsShop,
			Importance: arch.Importance,
			Dialogue:   dialogueFor(arch.NPCRole),
			Pos:        pos,
		})
	}

	// Фоновые жители: без реплик и магазинов, до лимита шаблона
	for len(st.NPCs) < tmpl.MaxResidents {
		pos := st.WorldOrigin.Add(vec.Vec2{X: rng.Intn(pat.Width), Y: rng.Intn(pat.Height)})
		st.NPCs = append(st.NPCs, NPC{
			Name:       pickName(rng, usedNames),
			Role:       "resident",
			Importance: ImportanceLow,
			Pos:        pos,
		})
	}

	st.TotalNPCs = len(st.NPCs)
	for _, npc := range st.NPCs {
		if npc.IsShop {
			st.ShopCount++
		}
	}
}

// Snapshot возвращает копию истории размещений
func (m *Manager) Snapshot() PlacementIndex {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(PlacementIndex, len(m.placed))
	for t, coords := range m.placed {
		snapshot[t] = append([]vec.Vec2(nil), coords...)
	}
	return snapshot
}

// Restore восстанавливает историю размещений (например после перезапуска)
func (m *Manager) Restore(index PlacementIndex) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.placed = make(PlacementIndex, len(index))
	for t, coords := range index {
		m.placed[t] = append([]vec.Vec2(nil), coords...)
	}
}
