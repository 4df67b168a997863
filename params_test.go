package deepstack

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultParams_Valid(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("expected default params to be valid: %v", err)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(p *Params){
		"three players":    func(p *Params) { p.PlayersCount = 3 },
		"no cards":         func(p *Params) { p.CardCount = 0 },
		"no stack":         func(p *Params) { p.Stack = 0 },
		"ante above stack": func(p *Params) { p.Ante = 2 * p.Stack },
		"no streets":       func(p *Params) { p.StreetsCount = 0 },
		"negative epsilon": func(p *Params) { p.RegretEpsilon = -1 },
		"zero bet size":    func(p *Params) { p.BetSizing = []float32{0.5, 0} },
	}

	for name, mutate := range cases {
		p := DefaultParams()
		mutate(&p)
		if err := p.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestLoadParams(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "deepstack-params-")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "params.toml")
	config := []byte("stack = 2000.0\nbet_sizing = [0.5, 1.0]\n")
	if err := ioutil.WriteFile(path, config, 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadParams(path)
	if err != nil {
		t.Fatal(err)
	}

	if p.Stack != 2000 {
		t.Errorf("expected stack %v, got %v", 2000, p.Stack)
	}

	if len(p.BetSizing) != 2 || p.BetSizing[0] != 0.5 {
		t.Errorf("unexpected bet sizing: %v", p.BetSizing)
	}

	if p.CardCount != DefaultParams().CardCount {
		t.Errorf("expected unset fields to keep defaults, got card_count=%d", p.CardCount)
	}

	if _, err := LoadParams(filepath.Join(tmpDir, "missing.toml")); err == nil {
		t.Errorf("expected error loading missing file")
	}
}
