package model

type EventType string

const (
	EventSpinStart    EventType = "spin_start"
	EventCascadeStart EventType = "cascade_start"
	EventWin          EventType = "win"
	EventEvolution    EventType = "evolution"
	EventMorph        EventType = "morph"
	EventWildInject   EventType = "wild_inject"
	EventMasterBall   EventType = "master_ball"
	EventScatters     EventType = "scatters"
	EventCascadeEnd   EventType = "cascade_end"
	EventSpinEnd      EventType = "spin_end"
)

const (
	WinCluster = "cluster"
	WinWays    = "ways"
)

// Event - одно событие спина. Заполнено ровно одно поле, соответствующее Type
type Event struct {
	Type       EventType        `json:"type"`
	SpinStart  *SpinStartEvent  `json:"spinStart,omitempty"`
	Cascade    *CascadeEvent    `json:"cascade,omitempty"`
	Win        *WinEvent        `json:"win,omitempty"`
	Evolution  *EvolutionEvent  `json:"evolution,omitempty"`
	Morph      *MorphEvent      `json:"morph,omitempty"`
	WildInject *WildInjectEvent `json:"wildInject,omitempty"`
	MasterBall *MasterBallEvent `json:"masterBall,omitempty"`
	Scatters   *ScattersEvent   `json:"scatters,omitempty"`
	SpinEnd    *SpinEndEvent    `json:"spinEnd,omitempty"`
}

type SpinStartEvent struct {
	Seed uint32 `json:"seed"`
}

type CascadeEvent struct {
	Index        int `json:"index"`
	RemovedCount int `json:"removedCount"`
}

type WinEvent struct {
	Cells      []Position `json:"cells"`
	Species    Species    `json:"species"`
	Tier       Tier       `json:"tier"`
	Symbol     string     `json:"symbol"`
	Size       int        `json:"size"`
	Multiplier int        `json:"multiplier"`
	WinAmount  int64      `json:"winAmount"`
	Ways       int        `json:"ways,omitempty"`
	Category   string     `json:"category"`
	Capped     bool       `json:"capped,omitempty"`
}

// EvolutionEvent - повышение уровня. Вид не меняется, From/ToSpecies равны
type EvolutionEvent struct {
	Positions   []Position `json:"positions"`
	FromSpecies Species    `json:"fromSpecies"`
	ToSpecies   Species    `json:"toSpecies"`
	FromSymbol  string     `json:"fromSymbol"`
	ToSymbol    string     `json:"toSymbol"`
	TierAfter   Tier       `json:"tierAfter"`
	Mega        bool       `json:"mega,omitempty"`
	Egg         *Position  `json:"egg,omitempty"` // съеденное яйцо, только для Mega
}

type MorphEvent struct {
	Positions   []Position `json:"positions"`
	FromSpecies Species    `json:"fromSpecies"`
	ToSpecies   Species    `json:"toSpecies"`
	Tier        Tier       `json:"tier"`
}

type WildInjectEvent struct {
	Index     int        `json:"index"`
	Positions []Position `json:"positions"`
}

type MasterBallEvent struct {
	Index      int `json:"index"`
	Multiplier int `json:"multiplier"`
}

type ScattersEvent struct {
	Count int `json:"count"`
}

type SpinEndEvent struct {
	TotalWin int64 `json:"totalWin"`
}

func SpinStart(seed uint32) Event {
	return Event{Type: EventSpinStart, SpinStart: &SpinStartEvent{Seed: seed}}
}

func CascadeStart(index int) Event {
	return Event{Type: EventCascadeStart, Cascade: &CascadeEvent{Index: index}}
}

func CascadeEnd(index, removed int) Event {
	return Event{Type: EventCascadeEnd, Cascade: &CascadeEvent{Index: index, RemovedCount: removed}}
}

func Win(w WinEvent) Event {
	return Event{Type: EventWin, Win: &w}
}

func Evolution(e EvolutionEvent) Event {
	return Event{Type: EventEvolution, Evolution: &e}
}

func Morph(m MorphEvent) Event {
	return Event{Type: EventMorph, Morph: &m}
}

func WildInject(index int, positions []Position) Event {
	return Event{Type: EventWildInject, WildInject: &WildInjectEvent{Index: index, Positions: positions}}
}

func MasterBall(index, multiplier int) Event {
	return Event{Type: EventMasterBall, MasterBall: &MasterBallEvent{Index: index, Multiplier: multiplier}}
}

func Scatters(count int) Event {
	return Event{Type: EventScatters, Scatters: &ScattersEvent{Count: count}}
}

func SpinEnd(total int64) Event {
	return Event{Type: EventSpinEnd, SpinEnd: &SpinEndEvent{TotalWin: total}}
}

// SumWins - сумма выигрышей по событиям Win
func SumWins(events []Event) int64 {
	var sum int64
	for _, e := range events {
		if e.Type == EventWin {
			sum += e.Win.WinAmount
		}
	}
	return sum
}
