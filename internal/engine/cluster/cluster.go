// Package cluster ищет связные группы одинаковых символов с учетом вайлдов.
package cluster

import (
	"sort"

	"genesis_reels/internal/model"
)

// Cluster - найденная группа. Позиции упорядочены построчно
type Cluster struct {
	Species   model.Species
	Tier      model.Tier
	Positions []model.Position
}

func (c Cluster) Size() int { return len(c.Positions) }

// Find - BFS по 4 направлениям. Начинают кластер только стандартные символы,
// вайлд может войти в несколько кластеров, обычный символ - только в один.
// Результат отсортирован по убыванию размера, при равенстве - в порядке обнаружения
func Find(g model.Grid, minSize int) []Cluster {
	n := g.Rows * g.Cols
	visited := make([]bool, n)
	wildMark := make([]int, n)
	epoch := 0
	queue := make([]int, 0, n)

	var out []Cluster
	for i := 0; i < n; i++ {
		seed := g.Cells[i]
		if !seed.IsStandard() || visited[i] {
			continue
		}
		epoch++
		queue = append(queue[:0], i)
		visited[i] = true

		for head := 0; head < len(queue); head++ {
			cur := queue[head]
			r, c := cur/g.Cols, cur%g.Cols
			for _, d := range dirs {
				nr, nc := r+d[0], c+d[1]
				if !g.In(nr, nc) {
					continue
				}
				next := nr*g.Cols + nc
				cell := g.Cells[next]
				switch {
				case cell.Kind == model.KindWild:
					if wildMark[next] != epoch {
						wildMark[next] = epoch
						queue = append(queue, next)
					}
				case cell.SameGroup(seed):
					if !visited[next] {
						visited[next] = true
						queue = append(queue, next)
					}
				}
			}
		}

		if len(queue) < minSize {
			continue
		}
		idx := make([]int, len(queue))
		copy(idx, queue)
		sort.Ints(idx)
		positions := make([]model.Position, len(idx))
		for k, v := range idx {
			positions[k] = model.Position{Row: v / g.Cols, Col: v % g.Cols}
		}
		out = append(out, Cluster{Species: seed.Species, Tier: seed.Tier, Positions: positions})
	}

	sort.SliceStable(out, func(a, b int) bool { return len(out[a].Positions) > len(out[b].Positions) })
	return out
}

var dirs = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

// Neighbors4 - соседи по 4 направлениям внутри поля
func Neighbors4(g model.Grid, p model.Position) []model.Position {
	out := make([]model.Position, 0, 4)
	for _, d := range dirs {
		r, c := p.Row+d[0], p.Col+d[1]
		if g.In(r, c) {
			out = append(out, model.Position{Row: r, Col: c})
		}
	}
	return out
}

// Neighbors8 - соседи с диагоналями
func Neighbors8(g model.Grid, p model.Position) []model.Position {
	out := make([]model.Position, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := p.Row+dr, p.Col+dc
			if g.In(r, c) {
				out = append(out, model.Position{Row: r, Col: c})
			}
		}
	}
	return out
}
