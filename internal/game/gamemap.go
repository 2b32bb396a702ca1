package game

import (
	"fmt"

	"github.com/mitchelldurbincs/HaliteForager/internal/game/core"
)

// Cell is a single square of the map.
type Cell struct {
	Pos    core.Position
	Halite int
	// Ship is the ship standing here at the start of the turn, or the ship
	// that navigation has routed onto this cell during the turn.
	Ship *Ship
	// Structure is true for shipyards and dropoffs of any player.
	Structure bool
}

// IsOccupied reports whether a ship stands on or is routed to the cell.
func (c *Cell) IsOccupied() bool { return c.Ship != nil }

// MarkUnsafe reserves the cell for ship so later navigation avoids it.
func (c *Cell) MarkUnsafe(ship *Ship) { c.Ship = ship }

// Map is the toroidal halite map. It owns cell halite values and the per-turn
// occupancy used by NaiveNavigate.
type Map struct {
	grid  core.Grid
	cells []Cell // row-major
}

func NewMap(width, height int) *Map {
	m := &Map{
		grid:  core.NewGrid(width, height),
		cells: make([]Cell, width*height),
	}
	for i := range m.cells {
		m.cells[i].Pos = core.Position{X: i % width, Y: i / width}
	}
	return m
}

func (m *Map) Width() int      { return m.grid.Width }
func (m *Map) Height() int     { return m.grid.Height }
func (m *Map) Grid() core.Grid { return m.grid }

func (m *Map) idx(p core.Position) int {
	p = m.grid.Normalize(p)
	return p.Y*m.grid.Width + p.X
}

// At returns the cell at p, wrapping p onto the map.
func (m *Map) At(p core.Position) *Cell {
	return &m.cells[m.idx(p)]
}

func (m *Map) HaliteAt(p core.Position) int {
	return m.cells[m.idx(p)].Halite
}

func (m *Map) SetHalite(p core.Position, halite int) error {
	if halite < 0 {
		return fmt.Errorf("halite at %s must be non-negative, got %d", p, halite)
	}
	m.cells[m.idx(p)].Halite = halite
	return nil
}

// TotalHalite sums the halite left on the map.
func (m *Map) TotalHalite() int {
	total := 0
	for i := range m.cells {
		total += m.cells[i].Halite
	}
	return total
}

func (m *Map) IsOccupied(p core.Position) bool {
	return m.cells[m.idx(p)].IsOccupied()
}

func (m *Map) Distance(a, b core.Position) int { return m.grid.Distance(a, b) }

func (m *Map) Normalize(p core.Position) core.Position { return m.grid.Normalize(p) }

func (m *Map) UnsafeMoves(from, to core.Position) []core.Direction {
	return m.grid.UnsafeMoves(from, to)
}

// MarkUnsafe reserves the cell at p for ship.
func (m *Map) MarkUnsafe(p core.Position, ship *Ship) {
	m.At(p).MarkUnsafe(ship)
}

// ClearShips drops all occupancy marks. Called before a new frame is applied.
func (m *Map) ClearShips() {
	for i := range m.cells {
		m.cells[i].Ship = nil
	}
}

// PlaceStructure records a shipyard or dropoff on the cell.
func (m *Map) PlaceStructure(p core.Position) {
	m.At(p).Structure = true
}

// HasStructure reports whether any player's shipyard or dropoff stands on p.
// The engine rejects a dropoff built on such a cell.
func (m *Map) HasStructure(p core.Position) bool {
	return m.cells[m.idx(p)].Structure
}

// NaiveNavigate returns the first direction toward dest whose target cell is
// free, and marks that cell unsafe for ship. Returns core.Still when every
// direct step is taken or ship already stands on dest.
func (m *Map) NaiveNavigate(ship *Ship, dest core.Position) core.Direction {
	for _, d := range m.grid.UnsafeMoves(ship.Pos, dest) {
		target := m.At(m.grid.Step(ship.Pos, d))
		if !target.IsOccupied() {
			target.MarkUnsafe(ship)
			return d
		}
	}
	return core.Still
}
