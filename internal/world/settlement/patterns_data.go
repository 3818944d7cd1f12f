package settlement

import (
	"github.com/annel0/tileworld/internal/vec"
	"github.com/annel0/tileworld/internal/world/tile"
)

// canvas — вспомогательный построитель паттернов. Библиотека раскладок
// авторская: каждый вариант собирается из явных координат зданий и дорожек.
type canvas struct {
	w, h      int
	tiles     []tile.TileID
	buildings []Building
	pathways  []vec.Vec2
}

func newCanvas(w, h int) *canvas {
	c := &canvas{
		w:     w,
		h:     h,
		tiles: make([]tile.TileID, w*h),
	}
	for i := range c.tiles {
		c.tiles[i] = tile.Grass
	}
	return c
}

func (c *canvas) set(x, y int, t tile.TileID) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	c.tiles[x+y*c.w] = t
}

func (c *canvas) at(x, y int) tile.TileID {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return tile.Unknown
	}
	return c.tiles[x+y*c.w]
}

// building рисует здание: стены по периметру, деревянный пол внутри,
// дверь в центре нижней стены. Регистрирует здание в списке.
func (c *canvas) building(x, y, w, h int, btype string, wall tile.TileID) {
	for by := 0; by < h; by++ {
		for bx := 0; bx < w; bx++ {
			if bx == 0 || bx == w-1 || by == 0 || by == h-1 {
				c.set(x+bx, y+by, wall)
			} else {
				c.set(x+bx, y+by, tile.FloorWood)
			}
		}
	}
	// Дверь в центре нижней стены
	c.set(x+w/2, y+h-1, tile.Door)

	c.buildings = append(c.buildings, Building{
		X: x, Y: y, Width: w, Height: h, Type: btype,
	})
}

// structure рисует сплошную постройку без стен (колодец, прилавок)
func (c *canvas) structure(x, y, w, h int, btype string, fill tile.TileID) {
	for by := 0; by < h; by++ {
		for bx := 0; bx < w; bx++ {
			c.set(x+bx, y+by, fill)
		}
	}
	c.buildings = append(c.buildings, Building{
		X: x, Y: y, Width: w, Height: h, Type: btype,
	})
}

// door возвращает координату двери здания, добавленного последним
func (c *canvas) door() vec.Vec2 {
	b := c.buildings[len(c.buildings)-1]
	return vec.Vec2{X: b.X + b.Width/2, Y: b.Y + b.Height - 1}
}

// path прокладывает Г-образную дорожку: сначала по горизонтали,
// затем по вертикали. Затирает только траву — здания и уже
// проложенные дорожки не трогаются.
func (c *canvas) path(from, to vec.Vec2) {
	step := func(x, y int) {
		if c.at(x, y) == tile.Grass {
			c.set(x, y, tile.Path)
			c.pathways = append(c.pathways, vec.Vec2{X: x, Y: y})
		}
	}

	x, y := from.X, from.Y
	for x != to.X {
		if to.X > x {
			x++
		} else {
			x--
		}
		step(x, y)
	}
	for y != to.Y {
		if to.Y > y {
			y++
		} else {
			y--
		}
		step(x, y)
	}
}

// perimeter обводит площадку стеной с воротами в центре нижней стороны
func (c *canvas) perimeter(wall tile.TileID) {
	for x := 0; x < c.w; x++ {
		c.set(x, 0, wall)
		c.set(x, c.h-1, wall)
	}
	for y := 0; y < c.h; y++ {
		c.set(0, y, wall)
		c.set(c.w-1, y, wall)
	}
	// Ворота
	c.set(c.w/2, c.h-1, tile.Door)
}

func (c *canvas) pattern(name string, weight int) *Pattern {
	return &Pattern{
		Name:      name,
		Width:     c.w,
		Height:    c.h,
		Tiles:     c.tiles,
		Buildings: c.buildings,
		Pathways:  c.pathways,
		weight:    weight,
	}
}

// buildPatternLibrary собирает все авторские варианты раскладок
func buildPatternLibrary() map[Type][]*Pattern {
	return map[Type][]*Pattern{
		TypeVillage:     {villageGreen(), villageRing(), villageRow()},
		TypeHamlet:      {hamletPair(), hamletGreen()},
		TypeTradingPost: {postCaravan(), postCourtyard()},
		TypeFortress:    {fortCitadel(), fortGatehouse()},
	}
}

// villageGreen — деревня вокруг центрального колодца
func villageGreen() *Pattern {
	c := newCanvas(24, 24)
	center := vec.Vec2{X: 12, Y: 12}

	c.building(9, 2, 6, 5, "town_hall", tile.WallWood)
	c.path(c.door(), center)
	c.building(2, 9, 5, 5, "tavern", tile.WallWood)
	c.path(c.door(), center)
	c.building(17, 9, 4, 4, "general_store", tile.WallWood)
	c.path(c.door(), center)
	c.building(3, 17, 4, 4, "house", tile.WallWood)
	c.path(c.door(), center)
	c.building(10, 18, 4, 4, "house", tile.WallWood)
	c.path(c.door(), center)
	c.building(17, 17, 4, 4, "house", tile.WallWood)
	c.path(c.door(), center)
	c.structure(11, 11, 2, 2, "well", tile.Well)

	return c.pattern("village_green", 3)
}

// villageRing — деревня кольцом, колодец в центре
func villageRing() *Pattern {
	c := newCanvas(24, 24)
	center := vec.Vec2{X: 12, Y: 12}

	c.building(2, 2, 6, 5, "town_hall", tile.WallWood)
	c.path(c.door(), center)
	c.building(17, 2, 5, 5, "tavern", tile.WallWood)
	c.path(c.door(), center)
	c.building(2, 17, 4, 4, "general_store", tile.WallWood)
	c.path(c.door(), center)
	c.building(17, 17, 4, 4, "house", tile.WallWood)
	c.path(c.door(), center)
	c.building(10, 18, 4, 4, "house", tile.WallWood)
	c.path(c.door(), center)
	c.building(18, 10, 4, 4, "house", tile.WallWood)
	c.path(c.door(), center)
	c.structure(11, 11, 2, 2, "well", tile.Well)

	return c.pattern("village_ring", 2)
}

// villageRow — деревня вдоль главной улицы
func villageRow() *Pattern {
	c := newCanvas(24, 24)

	// Главная улица
	street := make([]vec.Vec2, 0, 24)
	for x := 0; x < 24; x++ {
		c.set(x, 12, tile.Path)
		street = append(street, vec.Vec2{X: x, Y: 12})
	}
	c.pathways = append(c.pathways, street...)

	c.building(2, 6, 6, 5, "town_hall", tile.WallWood)
	c.path(c.door(), vec.Vec2{X: 5, Y: 12})
	c.building(10, 6, 5, 5, "tavern", tile.WallWood)
	c.path(c.door(), vec.Vec2{X: 12, Y: 12})
	c.building(17, 7, 4, 4, "general_store", tile.WallWood)
	c.path(c.door(), vec.Vec2{X: 19, Y: 12})
	c.building(2, 14, 4, 4, "house", tile.WallWood)
	c.building(9, 14, 4, 4, "house", tile.WallWood)
	c.building(16, 14, 4, 4, "house", tile.WallWood)
	c.structure(20, 2, 2, 2, "well", tile.Well)
	c.path(vec.Vec2{X: 21, Y: 4}, vec.Vec2{X: 21, Y: 12})

	return c.pattern("village_row", 1)
}

// hamletPair — хутор из пары домов с сараем
func hamletPair() *Pattern {
	c := newCanvas(16, 16)
	center := vec.Vec2{X: 8, Y: 8}

	c.building(2, 2, 4, 4, "house", tile.WallWood)
	c.path(c.door(), center)
	c.building(10, 2, 4, 4, "house", tile.WallWood)
	c.path(c.door(), center)
	c.building(2, 10, 5, 4, "barn", tile.WallWood)
	c.path(c.door(), center)
	c.structure(11, 11, 2, 2, "well", tile.Well)
	c.path(vec.Vec2{X: 11, Y: 11}, center)

	return c.pattern("hamlet_pair", 2)
}

// hamletGreen — хутор вокруг колодца
func hamletGreen() *Pattern {
	c := newCanvas(16, 16)
	center := vec.Vec2{X: 8, Y: 9}

	c.building(2, 2, 4, 4, "house", tile.WallWood)
	c.path(c.door(), center)
	c.building(2, 10, 4, 4, "house", tile.WallWood)
	c.path(c.door(), center)
	c.building(9, 10, 5, 4, "barn", tile.WallWood)
	c.path(c.door(), center)
	c.structure(7, 7, 2, 2, "well", tile.Well)

	return c.pattern("hamlet_green", 1)
}

// postCaravan — торговый пост вдоль караванной тропы
func postCaravan() *Pattern {
	c := newCanvas(18, 18)
	center := vec.Vec2{X: 9, Y: 9}

	c.building(6, 2, 6, 5, "trading_hall", tile.Brick)
	c.path(c.door(), center)
	c.building(2, 13, 3, 3, "guard_tower", tile.WallStone)
	c.path(c.door(), center)
	c.building(12, 12, 4, 4, "stable", tile.WallWood)
	c.path(c.door(), center)
	c.structure(8, 9, 2, 1, "market_stall", tile.MarketStall)

	return c.pattern("post_caravan", 2)
}

// postCourtyard — торговый пост с обнесённым двором
func postCourtyard() *Pattern {
	c := newCanvas(18, 18)
	gate := vec.Vec2{X: 9, Y: 17}

	c.perimeter(tile.Fence)
	c.building(6, 6, 6, 5, "trading_hall", tile.Brick)
	c.path(c.door(), gate)
	c.building(13, 2, 3, 3, "guard_tower", tile.WallStone)
	c.path(c.door(), vec.Vec2{X: 9, Y: 10})
	c.building(2, 13, 4, 4, "stable", tile.WallWood)
	c.path(c.door(), gate)
	c.structure(3, 3, 2, 1, "market_stall", tile.MarketStall)

	return c.pattern("post_courtyard", 1)
}

// fortCitadel — крепость с цитаделью в глубине
func fortCitadel() *Pattern {
	c := newCanvas(26, 26)
	gate := vec.Vec2{X: 13, Y: 25}

	c.perimeter(tile.WallStone)
	c.building(9, 3, 8, 7, "keep", tile.WallStone)
	c.path(c.door(), gate)
	c.building(3, 13, 6, 4, "barracks", tile.WallStone)
	c.path(c.door(), vec.Vec2{X: 13, Y: 18})
	c.building(17, 13, 6, 4, "barracks", tile.WallStone)
	c.path(c.door(), vec.Vec2{X: 13, Y: 18})
	c.building(10, 17, 4, 4, "armory", tile.Brick)
	c.path(c.door(), gate)
	c.building(3, 3, 3, 3, "watchtower", tile.WallStone)

	return c.pattern("fort_citadel", 2)
}

// fortGatehouse — крепость с казармами у ворот
func fortGatehouse() *Pattern {
	c := newCanvas(26, 26)
	gate := vec.Vec2{X: 13, Y: 25}

	c.perimeter(tile.WallStone)
	c.building(9, 14, 8, 7, "keep", tile.WallStone)
	c.path(c.door(), gate)
	c.building(3, 3, 6, 4, "barracks", tile.WallStone)
	c.path(c.door(), vec.Vec2{X: 13, Y: 10})
	c.building(17, 3, 6, 4, "barracks", tile.WallStone)
	c.path(c.door(), vec.Vec2{X: 13, Y: 10})
	c.building(3, 19, 4, 4, "armory", tile.Brick)
	c.path(c.door(), gate)
	c.building(20, 19, 3, 3, "watchtower", tile.WallStone)

	return c.pattern("fort_gatehouse", 1)
}
