package settlement

import (
	"fmt"
	"math/rand"
)

// Пулы имён жителей. Выбор всегда идёт через детерминированный rng
// конкретного поселения, поэтому имена воспроизводимы по сиду.
var npcFirstNames = []string{
	"Alden", "Brynn", "Cedric", "Dara", "Edwin", "Fenna", "Garrick", "Hilda",
	"Ivar", "Jora", "Kellan", "Lena", "Marek", "Nessa", "Orin", "Petra",
	"Quinn", "Rosalind", "Soren", "Tamsin", "Ulric", "Verna", "Wendel", "Yara",
}

var npcLastNames = []string{
	"Ashdown", "Briarwood", "Copperfield", "Dunmore", "Eastbrook", "Fairwind",
	"Greenbottle", "Hollowell", "Ironwood", "Kingsley", "Longmead", "Mossbank",
	"Northgate", "Oakhurst", "Pebbleton", "Quickwater", "Ravenhill", "Stonebridge",
	"Thornfield", "Underhill", "Westerly", "Yarrow",
}

// Реплики по ролям
var roleDialogue = map[string][]string{
	"elder": {
		"Welcome to our village, traveler.",
		"These lands have been kind to us for generations.",
		"If you need supplies, visit the store.",
	},
	"innkeeper": {
		"A warm meal and a bed, best prices around!",
		"Travelers bring the best stories.",
	},
	"merchant": {
		"Take a look at my wares!",
		"Everything a traveler could need.",
	},
	"villager": {
		"Good day to you.",
		"The weather has been fair lately.",
	},
	"farmer": {
		"The harvest keeps us busy this season.",
		"Mind the fences, the animals wander.",
	},
	"trader": {
		"Goods from every corner of the world!",
		"Caravans come through here every week.",
	},
	"guard": {
		"Keep out of trouble and we'll get along.",
		"I keep watch so others can sleep.",
	},
	"stablehand": {
		"The horses need tending every day.",
	},
	"commander": {
		"This fortress has never fallen.",
		"Discipline keeps these walls standing.",
	},
	"blacksmith": {
		"Finest steel in the region, forged right here.",
		"A dull blade is a dead man's blade.",
	},
}

// pickName выбирает имя жителя, гарантируя уникальность внутри поселения
func pickName(rng *rand.Rand, used map[string]bool) string {
	first := npcFirstNames[rng.Intn(len(npcFirstNames))]
	last := npcLastNames[rng.Intn(len(npcLastNames))]
	name := first + " " + last

	// Коллизии разрешаются порядковым номером
	for i := 2; used[name]; i++ {
		name = fmt.Sprintf("%s %s %d", first, last, i)
	}
	used[name] = true
	return name
}

// dialogueFor возвращает реплики для роли
func dialogueFor(role string) []string {
	return roleDialogue[role]
}
