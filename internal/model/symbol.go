package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind - тип содержимого ячейки
type Kind uint8

const (
	KindEmpty Kind = iota
	KindStandard
	KindWild
	KindEgg
	KindScatter
)

var kindNames = [...]string{"empty", "standard", "wild", "egg", "scatter"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown cell kind %q", b)
}

// Species - индекс вида в списке видов конфигурации
type Species uint8

// Tier - уровень эволюции, начиная с 1
type Tier uint8

// Cell - одна ячейка поля. Значимый тип, копируется целиком
type Cell struct {
	Kind    Kind    `json:"kind"`
	Species Species `json:"species,omitempty"`
	Tier    Tier    `json:"tier,omitempty"`
	Variant uint8   `json:"variant,omitempty"` // вариант скаттера
}

func Standard(sp Species, tier Tier) Cell {
	return Cell{Kind: KindStandard, Species: sp, Tier: tier}
}

func Wild() Cell { return Cell{Kind: KindWild} }

func Egg() Cell { return Cell{Kind: KindEgg} }

func Scatter(variant uint8) Cell { return Cell{Kind: KindScatter, Variant: variant} }

func (c Cell) IsStandard() bool { return c.Kind == KindStandard }

func (c Cell) IsEmpty() bool { return c.Kind == KindEmpty }

// SameGroup - совпадение вида и уровня двух стандартных символов
func (c Cell) SameGroup(o Cell) bool {
	return c.Kind == KindStandard && o.Kind == KindStandard && c.Species == o.Species && c.Tier == o.Tier
}

// Position - координата ячейки
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// SymbolKey - ключ таблицы весов, разобранный один раз при построении таблицы
type SymbolKey struct {
	Cell Cell
	Key  string
}

// ParseSymbolKey разбирает ключи вида tier2_volt, wild, egg, scatter, scatter_3.
// Неизвестный вид или кривой уровень - ошибка конфигурации
func ParseSymbolKey(key string, species []SpeciesConfig, maxTier Tier) (SymbolKey, error) {
	switch {
	case key == "wild":
		return SymbolKey{Cell: Wild(), Key: key}, nil
	case key == "egg":
		return SymbolKey{Cell: Egg(), Key: key}, nil
	case key == "scatter":
		return SymbolKey{Cell: Scatter(0), Key: key}, nil
	case strings.HasPrefix(key, "scatter_"):
		v, err := strconv.Atoi(strings.TrimPrefix(key, "scatter_"))
		if err != nil || v < 0 || v > 255 {
			return SymbolKey{}, fmt.Errorf("%w: bad scatter variant in %q", ErrInvalidConfiguration, key)
		}
		return SymbolKey{Cell: Scatter(uint8(v)), Key: key}, nil
	case strings.HasPrefix(key, "tier"):
		head, name, ok := strings.Cut(strings.TrimPrefix(key, "tier"), "_")
		if !ok {
			return SymbolKey{}, fmt.Errorf("%w: bad symbol key %q", ErrInvalidConfiguration, key)
		}
		t, err := strconv.Atoi(head)
		if err != nil || t < 1 || t > int(maxTier) {
			return SymbolKey{}, fmt.Errorf("%w: bad tier in %q", ErrInvalidConfiguration, key)
		}
		for i, sp := range species {
			if sp.Name == name {
				return SymbolKey{Cell: Standard(Species(i), Tier(t)), Key: key}, nil
			}
		}
		return SymbolKey{}, fmt.Errorf("%w: unknown species in %q", ErrInvalidConfiguration, key)
	}
	return SymbolKey{}, fmt.Errorf("%w: bad symbol key %q", ErrInvalidConfiguration, key)
}
