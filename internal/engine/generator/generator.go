// Package generator строит кумулятивную таблицу весов символов
// и заполняет ячейки поля.
package generator

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"
	"sync"

	"genesis_reels/internal/engine/rng"
	"genesis_reels/internal/model"
)

// Fallback - ячейка на случай пустой таблицы
var Fallback = model.Standard(0, 1)

type bucket struct {
	upper float64 // накопленный вес включительно
	cell  model.Cell
	key   string
}

// Table - неизменяемая кумулятивная таблица
type Table struct {
	buckets     []bucket
	total       float64
	fingerprint uint64
}

// NewTable строит таблицу. Нулевые и отрицательные веса отбрасываются,
// ключи сортируются, чтобы порядок корзин не зависел от map
func NewTable(weights map[string]float64, species []model.SpeciesConfig, maxTier model.Tier) (*Table, error) {
	keys := make([]string, 0, len(weights))
	for k, w := range weights {
		if w > 0 && !math.IsInf(w, 0) && !math.IsNaN(w) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	t := &Table{
		buckets:     make([]bucket, 0, len(keys)),
		fingerprint: Fingerprint(weights, species, maxTier),
	}
	for _, k := range keys {
		sk, err := model.ParseSymbolKey(k, species, maxTier)
		if err != nil {
			return nil, err
		}
		t.total += weights[k]
		t.buckets = append(t.buckets, bucket{upper: t.total, cell: sk.Cell, key: k})
	}
	return t, nil
}

// Draw - одна ячейка по весам
func (t *Table) Draw(r *rng.RNG) model.Cell {
	if len(t.buckets) == 0 {
		return Fallback
	}
	x := r.Float64() * t.total
	i := sort.Search(len(t.buckets), func(i int) bool { return t.buckets[i].upper > x })
	if i >= len(t.buckets) {
		i = len(t.buckets) - 1
	}
	return t.buckets[i].cell
}

// Fill заполняет все поле построчно
func (t *Table) Fill(rows, cols int, r *rng.RNG) model.Grid {
	g := model.NewGrid(rows, cols)
	for i := range g.Cells {
		g.Cells[i] = t.Draw(r)
	}
	return g
}

func (t *Table) Len() int { return len(t.buckets) }

func (t *Table) Total() float64 { return t.total }

func (t *Table) Fingerprint() uint64 { return t.fingerprint }

// Probability - доля ключа в таблице, для отчетов симуляции
func (t *Table) Probability(key string) float64 {
	prev := 0.0
	for _, b := range t.buckets {
		if b.key == key {
			return (b.upper - prev) / t.total
		}
		prev = b.upper
	}
	return 0
}

// Fingerprint - структурный хеш таблицы весов и списка видов
func Fingerprint(weights map[string]float64, species []model.SpeciesConfig, maxTier model.Tier) uint64 {
	keys := make([]string, 0, len(weights))
	for k := range weights {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := fnv.New64a()
	var buf [8]byte
	for _, k := range keys {
		_, _ = h.Write([]byte(k))
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(weights[k]))
		_, _ = h.Write(buf[:])
	}
	for _, sp := range species {
		_, _ = h.Write([]byte(sp.Name))
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write([]byte{byte(maxTier)})
	return h.Sum64()
}

// Cache - явный кеш таблиц по отпечатку. Безопасен для конкурентного использования
type Cache struct {
	mu     sync.RWMutex
	tables map[uint64]*Table
}

func NewCache() *Cache {
	return &Cache{tables: make(map[uint64]*Table)}
}

// Table возвращает таблицу из кеша или строит новую
func (c *Cache) Table(weights map[string]float64, species []model.SpeciesConfig, maxTier model.Tier) (*Table, error) {
	fp := Fingerprint(weights, species, maxTier)

	c.mu.RLock()
	t, ok := c.tables[fp]
	c.mu.RUnlock()
	if ok {
		return t, nil
	}

	t, err := NewTable(weights, species, maxTier)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.tables[fp]; ok {
		return cached, nil
	}
	c.tables[fp] = t
	return t, nil
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.tables)
}
