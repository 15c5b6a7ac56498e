// Package rng - детерминированный 32-битный генератор (mulberry32)
// и разделение сида на независимые потоки.
package rng

import (
	"hash/fnv"
	"math/bits"
)

// RNG - состояние генератора. Передается явно, глобального состояния нет
type RNG struct {
	state uint32
}

func New(seed uint32) *RNG {
	return &RNG{state: seed}
}

// Uint32 - следующее значение mulberry32
func (r *RNG) Uint32() uint32 {
	r.state += 0x6D2B79F5
	t := r.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return t ^ (t >> 14)
}

// Uint64 позволяет использовать RNG как rand.Source
func (r *RNG) Uint64() uint64 {
	return uint64(r.Uint32())<<32 | uint64(r.Uint32())
}

// Float64 возвращает число из [0,1)
func (r *RNG) Float64() float64 {
	return float64(r.Uint32()) / 4294967296.0
}

// IntN возвращает число из [0,n). При n <= 0 возвращает 0
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	v := int(r.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Chance - бросок с вероятностью p
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.Float64() < p
}

// Shuffle - Фишер-Йейтс
func (r *RNG) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		swap(i, r.IntN(i+1))
	}
}

// MixSeed смешивает родительский сид с меткой потока
func MixSeed(parent, label uint32) uint32 {
	h := parent ^ bits.RotateLeft32(label*0x9E3779B9, 13)
	h *= 0x85EBCA6B
	h ^= bits.RotateLeft32(h, 7)
	h *= 0xC2B2AE35
	h ^= h >> 16
	return h
}

// LabelHash - FNV-1a от имени потока
func LabelHash(label string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(label))
	return h.Sum32()
}

// Stream - сид дочернего потока label с номером index
func Stream(root uint32, label string, index int) uint32 {
	return MixSeed(MixSeed(root, LabelHash(label)), uint32(index))
}

// Названия потоков
const (
	StreamGrid      = "grid"
	StreamCascade   = "cascade"
	StreamRefill    = "refill"
	StreamBonus     = "bonus"
	StreamEvolution = "evolution"
	StreamMorph     = "morph"
	StreamFreeSpins = "freespins"
	StreamSession   = "session"
)
