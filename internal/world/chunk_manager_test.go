package world

import (
	"errors"
	"sync"
	"testing"

	"github.com/annel0/tileworld/internal/vec"
	"github.com/annel0/tileworld/internal/world/tile"
)

// memStore — хранилище чанков в памяти для тестов менеджера
type memStore struct {
	mu        sync.Mutex
	data      map[vec.Vec2]*ChunkData
	corrupted map[vec.Vec2]bool
	saves     int
}

func newMemStore() *memStore {
	return &memStore{
		data:      make(map[vec.Vec2]*ChunkData),
		corrupted: make(map[vec.Vec2]bool),
	}
}

func (ms *memStore) SaveChunk(c *Chunk) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.data[c.Coords] = c.ToData()
	ms.saves++
	return nil
}

func (ms *memStore) LoadChunk(coords vec.Vec2, seed int64) (*Chunk, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.corrupted[coords] {
		return nil, false, errors.New("повреждённая запись")
	}
	data, ok := ms.data[coords]
	if !ok {
		return nil, false, nil
	}
	chunk := NewChunk(coords, seed)
	if err := chunk.FromData(data); err != nil {
		return nil, false, err
	}
	return chunk, true, nil
}

func (ms *memStore) Close() error { return nil }

func (ms *memStore) has(coords vec.Vec2) bool {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	_, ok := ms.data[coords]
	return ok
}

// newTestManager собирает менеджер на плоском ландшафте без спауна —
// генерация чанков в тестах стриминга должна быть дешёвой
func newTestManager(seed int64, store ChunkStore) *ChunkManager {
	generator := NewWorldGeneratorWith(seed, flatTerrain{}, nullSpawner{}, newSettlements(seed))
	return NewChunkManager(generator, store)
}

func TestWorldToChunkNegativeCoords(t *testing.T) {
	cm := newTestManager(12345, nil)

	cases := []struct {
		wx, wy int
		chunk  vec.Vec2
	}{
		{0, 0, vec.Vec2{X: 0, Y: 0}},
		{63, 63, vec.Vec2{X: 0, Y: 0}},
		{64, 0, vec.Vec2{X: 1, Y: 0}},
		{-1, -1, vec.Vec2{X: -1, Y: -1}},
		{-64, -65, vec.Vec2{X: -1, Y: -2}},
	}
	for _, tc := range cases {
		if got := cm.WorldToChunk(tc.wx, tc.wy); got != tc.chunk {
			t.Errorf("WorldToChunk(%d,%d): ожидалось %v, получено %v", tc.wx, tc.wy, tc.chunk, got)
		}
	}
}

func TestGetTileGeneratesTransparently(t *testing.T) {
	store := newMemStore()
	cm := newTestManager(12345, store)

	// Чанк ещё не посещался — обращение прозрачно генерирует его
	got, err := cm.GetTile(-1, -1)
	if err != nil {
		t.Fatalf("GetTile вернул ошибку: %v", err)
	}
	if got != tile.Grass {
		t.Errorf("Ожидался тайл %v, получено %v", tile.Grass, got)
	}

	coords := vec.Vec2{X: -1, Y: -1}
	if !cm.IsCached(coords) {
		t.Error("Сгенерированный чанк должен попасть в кеш")
	}
	if !store.has(coords) {
		t.Error("Сгенерированный чанк должен быть сразу сохранён в хранилище")
	}
}

func TestGetChunkPrefersStore(t *testing.T) {
	store := newMemStore()
	coords := vec.Vec2{X: 3, Y: 3}

	// Кладём в хранилище чанк с маркерным тайлом
	saved := NewChunk(coords, 12345)
	saved.InitGrids()
	saved.SetTile(0, 0, tile.MarketStall)
	saved.IsGenerated = true
	if err := store.SaveChunk(saved); err != nil {
		t.Fatalf("SaveChunk: %v", err)
	}

	cm := newTestManager(12345, store)
	chunk, err := cm.GetChunk(coords)
	if err != nil {
		t.Fatalf("GetChunk: %v", err)
	}
	if got := chunk.GetTile(0, 0); got != tile.MarketStall {
		t.Errorf("Чанк должен загрузиться из хранилища, а не генерироваться: получен тайл %v", got)
	}
}

func TestCorruptStoreEntryRegenerates(t *testing.T) {
	store := newMemStore()
	coords := vec.Vec2{X: 5, Y: 5}
	store.corrupted[coords] = true

	cm := newTestManager(12345, store)
	chunk, err := cm.GetChunk(coords)
	if err != nil {
		t.Fatalf("Повреждённая запись должна трактоваться как промах: %v", err)
	}
	if !chunk.IsGenerated {
		t.Error("Чанк должен быть регенерирован вместо повреждённой записи")
	}
}

func TestSetTileWriteThrough(t *testing.T) {
	store := newMemStore()
	cm := newTestManager(12345, store)

	if err := cm.SetTile(70, 70, tile.Stone); err != nil {
		t.Fatalf("SetTile вернул ошибку: %v", err)
	}

	// Изменение видно через свежий менеджер с тем же хранилищем
	fresh := newTestManager(12345, store)
	got, err := fresh.GetTile(70, 70)
	if err != nil {
		t.Fatalf("GetTile: %v", err)
	}
	if got != tile.Stone {
		t.Errorf("Write-through не сработал: ожидался %v, получено %v", tile.Stone, got)
	}
}

func TestUpdateStreamingLoadsAroundPlayer(t *testing.T) {
	cm := newTestManager(12345, newMemStore())
	cm.SetStreamingRadii(2, 4)

	if err := cm.UpdateStreaming(0, 0); err != nil {
		t.Fatalf("UpdateStreaming: %v", err)
	}

	// Квадрат (2*2+1)^2 вокруг чанка игрока
	if got := cm.LoadedCount(); got != 25 {
		t.Errorf("Ожидалось 25 чанков в кеше, получено %d", got)
	}
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			if !cm.IsCached(vec.Vec2{X: dx, Y: dy}) {
				t.Errorf("Чанк (%d,%d) в радиусе подгрузки должен быть в кеше", dx, dy)
			}
		}
	}
}

func TestUpdateStreamingHysteresis(t *testing.T) {
	store := newMemStore()
	cm := newTestManager(12345, store)
	cm.SetStreamingRadii(2, 4)

	if err := cm.UpdateStreaming(0, 0); err != nil {
		t.Fatalf("UpdateStreaming: %v", err)
	}

	// Игрок сдвинулся на один чанк восточнее: чанк (-2,0) теперь на
	// дистанции 3 — между радиусами. Он не выгружается и не перегружается.
	if err := cm.UpdateStreaming(ChunkSize, 0); err != nil {
		t.Fatalf("UpdateStreaming: %v", err)
	}
	if !cm.IsCached(vec.Vec2{X: -2, Y: 0}) {
		t.Error("Чанк на дистанции 3 (между радиусами) не должен выгружаться")
	}
	if !cm.IsCached(vec.Vec2{X: 3, Y: 0}) {
		t.Error("Чанк (3,0) вошёл в радиус подгрузки и должен быть в кеше")
	}

	// Шаг назад: ничего не должно дёрнуться
	before := cm.LoadedCount()
	if err := cm.UpdateStreaming(0, 0); err != nil {
		t.Fatalf("UpdateStreaming: %v", err)
	}
	if got := cm.LoadedCount(); got != before {
		t.Errorf("Возврат на один чанк не должен менять кеш: было %d, стало %d", before, got)
	}
}

func TestUpdateStreamingEvictsAndPersists(t *testing.T) {
	store := newMemStore()
	cm := newTestManager(12345, store)
	cm.SetStreamingRadii(2, 4)

	if err := cm.UpdateStreaming(0, 0); err != nil {
		t.Fatalf("UpdateStreaming: %v", err)
	}

	// Уходим далеко на восток: чанки у старта выходят за радиус выгрузки
	if err := cm.UpdateStreaming(ChunkSize*10, 0); err != nil {
		t.Fatalf("UpdateStreaming: %v", err)
	}

	origin := vec.Vec2{X: 0, Y: 0}
	if cm.IsCached(origin) {
		t.Error("Чанк за радиусом выгрузки должен быть выгружен из кеша")
	}
	if !store.has(origin) {
		t.Error("Выгруженный чанк должен остаться сохранённым в хранилище")
	}
}

func TestGetEntitiesInArea(t *testing.T) {
	cm := newTestManager(12345, newMemStore())

	// Сущности в соседних чанках по разные стороны границы
	left, err := cm.GetChunk(vec.Vec2{X: 0, Y: 0})
	if err != nil {
		t.Fatalf("GetChunk: %v", err)
	}
	left.Entities = nil
	left.AddEntity(Entity{Kind: EntityObject, Type: "tree", Name: "Border Oak", X: 63, Y: 0})

	right, err := cm.GetChunk(vec.Vec2{X: 1, Y: 0})
	if err != nil {
		t.Fatalf("GetChunk: %v", err)
	}
	right.Entities = nil
	right.AddEntity(Entity{Kind: EntityObject, Type: "tree", Name: "Far Oak", X: 63, Y: 0})

	// Южные соседи тоже попадают в область запроса — очищаем их от
	// сгенерированных сущностей, чтобы проверка была точной
	for _, coords := range []vec.Vec2{{X: 0, Y: -1}, {X: 1, Y: -1}} {
		chunk, err := cm.GetChunk(coords)
		if err != nil {
			t.Fatalf("GetChunk(%v): %v", coords, err)
		}
		chunk.Entities = nil
	}

	entities, err := cm.GetEntitiesInArea(63, 0, 2)
	if err != nil {
		t.Fatalf("GetEntitiesInArea: %v", err)
	}

	if len(entities) != 1 {
		t.Fatalf("Ожидалась 1 сущность в области, получено %d", len(entities))
	}
	if entities[0].Name != "Border Oak" {
		t.Errorf("Ожидалась сущность Border Oak, получена %q", entities[0].Name)
	}
	// Координаты переведены в мировые
	if entities[0].X != 63 || entities[0].Y != 0 {
		t.Errorf("Ожидались мировые координаты (63,0), получено (%d,%d)", entities[0].X, entities[0].Y)
	}
}

func TestGetEntitiesInAreaTranslatesWorldCoords(t *testing.T) {
	cm := newTestManager(12345, newMemStore())

	chunk, err := cm.GetChunk(vec.Vec2{X: -1, Y: -1})
	if err != nil {
		t.Fatalf("GetChunk: %v", err)
	}
	chunk.Entities = nil
	chunk.AddEntity(Entity{Kind: EntityEnemy, Type: "slime", Name: "Slime", X: 10, Y: 20})

	entities, err := cm.GetEntitiesInArea(-54, -44, 3)
	if err != nil {
		t.Fatalf("GetEntitiesInArea: %v", err)
	}
	if len(entities) != 1 {
		t.Fatalf("Ожидалась 1 сущность, получено %d", len(entities))
	}
	// Чанк (-1,-1) начинается в (-64,-64): локальные (10,20) -> мировые (-54,-44)
	if entities[0].X != -54 || entities[0].Y != -44 {
		t.Errorf("Ожидались мировые координаты (-54,-44), получено (%d,%d)", entities[0].X, entities[0].Y)
	}
}

func TestSaveAll(t *testing.T) {
	store := newMemStore()
	cm := newTestManager(12345, store)

	for _, coords := range []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}} {
		if _, err := cm.GetChunk(coords); err != nil {
			t.Fatalf("GetChunk(%v): %v", coords, err)
		}
	}

	if err := cm.SaveAll(); err != nil {
		t.Fatalf("SaveAll: %v", err)
	}
	for _, coords := range []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}} {
		if !store.has(coords) {
			t.Errorf("Чанк %v должен быть сохранён после SaveAll", coords)
		}
	}
}

func TestSetStreamingRadiiForcesHysteresis(t *testing.T) {
	cm := newTestManager(12345, nil)

	// Радиус выгрузки не может быть меньше или равен радиусу подгрузки
	cm.SetStreamingRadii(3, 2)
	if cm.loadRadius != 3 || cm.unloadRadius != 5 {
		t.Errorf("Ожидались радиусы (3,5), получено (%d,%d)", cm.loadRadius, cm.unloadRadius)
	}

	cm.SetStreamingRadii(0, 10)
	if cm.loadRadius != 1 || cm.unloadRadius != 10 {
		t.Errorf("Ожидались радиусы (1,10), получено (%d,%d)", cm.loadRadius, cm.unloadRadius)
	}
}
