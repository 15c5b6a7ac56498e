// Package multiplier - карта множителей по ячейкам поля.
package multiplier

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"

	"genesis_reels/internal/model"
)

const DefaultCap = 8192

// Map - целочисленная матрица множителей. 0 означает ячейку без множителя
type Map struct {
	rows, cols int
	cap        int
	cells      []int
}

// New создает карту, заполненную нулями
func New(rows, cols, limit int) *Map {
	if limit < 1 {
		limit = DefaultCap
	}
	return &Map{rows: rows, cols: cols, cap: limit, cells: make([]int, rows*cols)}
}

func (m *Map) Rows() int { return m.rows }
func (m *Map) Cols() int { return m.cols }
func (m *Map) Cap() int  { return m.cap }

func (m *Map) Clone() *Map {
	cells := make([]int, len(m.cells))
	copy(cells, m.cells)
	return &Map{rows: m.rows, cols: m.cols, cap: m.cap, cells: cells}
}

// Fits - совпадают ли размеры с полем
func (m *Map) Fits(rows, cols int) bool {
	return m.rows == rows && m.cols == cols
}

func (m *Map) At(p model.Position) int {
	return m.cells[p.Row*m.cols+p.Col]
}

// Set записывает значение с ограничением [0, cap]
func (m *Map) Set(p model.Position, v int) {
	m.cells[p.Row*m.cols+p.Col] = m.Clamp(v)
}

func (m *Map) Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > m.cap {
		return m.cap
	}
	return v
}

// Add прибавляет delta к ячейке
func (m *Map) Add(p model.Position, delta int) {
	m.Set(p, m.At(p)+delta)
}

// Grow применяет правило роста к одной ячейке
func (m *Map) Grow(p model.Position, policy Policy) {
	m.Set(p, policy.Next(m.At(p), m.cap))
}

// ProductUnder - произведение множителей под позициями. Ноль считается как 1,
// результат насыщается на cap
func (m *Map) ProductUnder(positions []model.Position) int {
	product := 1
	for _, p := range positions {
		v := m.At(p)
		if v <= 1 {
			continue
		}
		if product > m.cap/v {
			return m.cap
		}
		product *= v
	}
	if product > m.cap {
		return m.cap
	}
	return product
}

// Scale умножает все засеянные ячейки на factor
func (m *Map) Scale(factor int) {
	for i, v := range m.cells {
		if v > 0 {
			m.cells[i] = m.mulClamp(v, factor)
		}
	}
}

// AddSeeded прибавляет delta ко всем засеянным ячейкам
func (m *Map) AddSeeded(delta int) {
	for i, v := range m.cells {
		if v > 0 {
			m.cells[i] = m.Clamp(v + delta)
		}
	}
}

// Unseeded - позиции без множителя, построчно
func (m *Map) Unseeded() []model.Position {
	var out []model.Position
	for i, v := range m.cells {
		if v == 0 {
			out = append(out, model.Position{Row: i / m.cols, Col: i % m.cols})
		}
	}
	return out
}

// Max - наибольшее значение на карте
func (m *Map) Max() int {
	best := 0
	for _, v := range m.cells {
		if v > best {
			best = v
		}
	}
	return best
}

func (m *Map) mulClamp(v, factor int) int {
	if factor > 0 && v > m.cap/factor {
		return m.cap
	}
	return m.Clamp(v * factor)
}

// Bump растит множитель под каждой позицией
func Bump(m *Map, positions []model.Position, policy Policy) {
	for _, p := range positions {
		m.Grow(p, policy)
	}
}

// Matrix - значения по строкам
func (m *Map) Matrix() [][]int {
	out := make([][]int, m.rows)
	for r := range out {
		out[r] = make([]int, m.cols)
		copy(out[r], m.cells[r*m.cols:(r+1)*m.cols])
	}
	return out
}

type mapJSON struct {
	Cap   int     `json:"cap"`
	Cells [][]int `json:"cells"`
}

func (m *Map) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal(mapJSON{Cap: m.cap, Cells: m.Matrix()})
}

func (m *Map) UnmarshalJSON(b []byte) error {
	var raw mapJSON
	if err := jsoniter.Unmarshal(b, &raw); err != nil {
		return err
	}
	if len(raw.Cells) == 0 || len(raw.Cells[0]) == 0 {
		return fmt.Errorf("multiplier map: empty matrix")
	}
	next := New(len(raw.Cells), len(raw.Cells[0]), raw.Cap)
	for r, row := range raw.Cells {
		if len(row) != next.cols {
			return fmt.Errorf("multiplier map: ragged row %d", r)
		}
		for c, v := range row {
			next.Set(model.Position{Row: r, Col: c}, v)
		}
	}
	*m = *next
	return nil
}
