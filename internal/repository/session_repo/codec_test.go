package session_repo

import (
	"reflect"
	"testing"

	"genesis_reels/internal/engine/freespins"
	"genesis_reels/internal/model"
)

func TestStateCodec(t *testing.T) {
	cfg := model.DefaultGameConfig()
	st, err := freespins.Enter(&cfg, 4, 321)
	if err != nil {
		t.Fatal(err)
	}
	st, err = freespins.Step(st, &cfg)
	if err != nil {
		t.Fatal(err)
	}
	st.Multipliers.Set(model.Position{Row: 2, Col: 5}, 64)

	raw, err := encodeState(st)
	if err != nil {
		t.Fatal(err)
	}
	back, err := decodeState([]byte(raw))
	if err != nil {
		t.Fatal(err)
	}

	if back.LastSpin != nil || back.StepEvents != nil {
		t.Error("last spin must not be persisted")
	}
	if st.LastSpin == nil {
		t.Error("encoding must not touch the caller state")
	}
	if !reflect.DeepEqual(back.Multipliers.Matrix(), st.Multipliers.Matrix()) || back.Multipliers.Cap() != st.Multipliers.Cap() {
		t.Fatal("multiplier map lost in encoding")
	}
	if back.SpinsLeft != st.SpinsLeft || back.StepIndex != st.StepIndex || back.Seed != st.Seed ||
		back.TotalWin != st.TotalWin || back.Features != st.Features || back.Bet != st.Bet {
		t.Fatalf("state mismatch: %+v vs %+v", back, st)
	}

	next1, err := freespins.Step(st, &cfg)
	if err != nil {
		t.Fatal(err)
	}
	next2, err := freespins.Step(back, &cfg)
	if err != nil {
		t.Fatal(err)
	}
	if next1.TotalWin != next2.TotalWin || next1.SpinsLeft != next2.SpinsLeft {
		t.Error("restored session must continue identically")
	}
}

func TestDecodeStateRejectsGarbage(t *testing.T) {
	if _, err := decodeState([]byte(`{"seed":1}`)); err == nil {
		t.Error("state without a map must fail")
	}
	if _, err := decodeState([]byte(`not json`)); err == nil {
		t.Error("broken json must fail")
	}
}
