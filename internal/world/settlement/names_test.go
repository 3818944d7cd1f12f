package settlement

import (
	"math/rand"
	"testing"
)

func TestPickNameUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	used := make(map[string]bool)

	// Больше розыгрышей, чем комбинаций имён: коллизии неизбежны
	// и должны разрешаться порядковым номером
	total := len(npcFirstNames)*len(npcLastNames) + 50
	seen := make(map[string]bool, total)
	for i := 0; i < total; i++ {
		name := pickName(rng, used)
		if seen[name] {
			t.Fatalf("Имя %q выдано повторно", name)
		}
		seen[name] = true
	}
}

func TestPickNameDeterministic(t *testing.T) {
	first := pickName(rand.New(rand.NewSource(9)), make(map[string]bool))
	second := pickName(rand.New(rand.NewSource(9)), make(map[string]bool))
	if first != second {
		t.Errorf("Одинаковый поток случайности должен давать одно имя: %q != %q", first, second)
	}
}

func TestDialogueCoversCatalogueRoles(t *testing.T) {
	// У каждой роли из каталога поселений должны быть реплики
	for st := range catalogue {
		tmpl := catalogue[st]
		for _, arch := range tmpl.Buildings {
			if arch.NPCRole == "" {
				continue
			}
			if len(dialogueFor(arch.NPCRole)) == 0 {
				t.Errorf("У роли %s (поселение %s) нет реплик", arch.NPCRole, st)
			}
		}
	}
}
