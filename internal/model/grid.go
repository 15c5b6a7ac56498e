package model

import "fmt"

const (
	MinGridSide = 3
	MaxGridSide = 20
)

// Grid - прямоугольное поле, ячейки хранятся построчно
type Grid struct {
	Rows  int    `json:"rows"`
	Cols  int    `json:"cols"`
	Cells []Cell `json:"cells"`
}

func ValidateDimensions(rows, cols int) error {
	if rows < MinGridSide || rows > MaxGridSide || cols < MinGridSide || cols > MaxGridSide {
		return fmt.Errorf("%w: %dx%d", ErrInvalidGridDimensions, rows, cols)
	}
	return nil
}

// NewGrid создает поле из пустых ячеек
func NewGrid(rows, cols int) Grid {
	return Grid{Rows: rows, Cols: cols, Cells: make([]Cell, rows*cols)}
}

// GridFromRows собирает поле из строк, удобно в тестах
func GridFromRows(rows [][]Cell) Grid {
	g := NewGrid(len(rows), len(rows[0]))
	for r, row := range rows {
		copy(g.Cells[r*g.Cols:(r+1)*g.Cols], row)
	}
	return g
}

func (g Grid) In(r, c int) bool {
	return r >= 0 && r < g.Rows && c >= 0 && c < g.Cols
}

func (g Grid) At(r, c int) Cell {
	return g.Cells[r*g.Cols+c]
}

func (g Grid) Set(r, c int, cell Cell) {
	g.Cells[r*g.Cols+c] = cell
}

func (g Grid) AtPos(p Position) Cell {
	return g.At(p.Row, p.Col)
}

func (g Grid) Clone() Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return Grid{Rows: g.Rows, Cols: g.Cols, Cells: cells}
}

// Count - количество ячеек данного типа
func (g Grid) Count(kind Kind) int {
	n := 0
	for _, c := range g.Cells {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Matrix - представление поля в виде строк для клиента
func (g Grid) Matrix() [][]Cell {
	out := make([][]Cell, g.Rows)
	for r := 0; r < g.Rows; r++ {
		out[r] = make([]Cell, g.Cols)
		copy(out[r], g.Cells[r*g.Cols:(r+1)*g.Cols])
	}
	return out
}
