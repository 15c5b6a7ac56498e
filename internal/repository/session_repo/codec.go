package session_repo

import (
	"fmt"

	"genesis_reels/internal/engine/freespins"

	jsoniter "github.com/json-iterator/go"
)

// encodeState - состояние для колонки jsonb. Последний спин клиент уже получил, он не хранится
func encodeState(st freespins.State) (string, error) {
	st.LastSpin = nil
	st.StepEvents = nil
	s, err := jsoniter.MarshalToString(st)
	if err != nil {
		return "", fmt.Errorf("encode session state: %w", err)
	}
	return s, nil
}

func decodeState(raw []byte) (freespins.State, error) {
	var st freespins.State
	if err := jsoniter.Unmarshal(raw, &st); err != nil {
		return freespins.State{}, fmt.Errorf("decode session state: %w", err)
	}
	if st.Multipliers == nil {
		return freespins.State{}, fmt.Errorf("decode session state: no multiplier map")
	}
	return st, nil
}
