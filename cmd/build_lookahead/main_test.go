package main

import (
	"testing"

	"github.com/timpalpant/go-deepstack"
)

func TestRootStreet(t *testing.T) {
	params := deepstack.DefaultParams()
	if s := rootStreet(0, params); s != params.StreetsCount {
		t.Errorf("expected default to the last street %d, got %d", params.StreetsCount, s)
	}

	if s := rootStreet(1, params); s != 1 {
		t.Errorf("expected explicit street 1, got %d", s)
	}
}

func TestParseBets(t *testing.T) {
	bets, err := parseBets("100, 250")
	if err != nil {
		t.Fatal(err)
	}
	if bets != [2]float32{100, 250} {
		t.Errorf("unexpected bets %v", bets)
	}

	if _, err := parseBets("100"); err == nil {
		t.Errorf("expected error for a single bet")
	}
}
