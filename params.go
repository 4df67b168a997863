package deepstack

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Params are the game settings shared by the public tree builder,
// the lookahead builder and the value network.
type Params struct {
	// The number of players in the game. Only 2 is supported.
	PlayersCount int `toml:"players_count"`
	// The number of private hands each player may hold.
	CardCount int `toml:"card_count"`
	// The size of each player's stack, in chips.
	Stack float32 `toml:"stack"`
	// The size of the game's ante, in chips.
	Ante float32 `toml:"ante"`
	// The number of betting rounds in the game.
	StreetsCount int `toml:"streets_count"`
	// Floor value for regrets, so that regret matching never sees
	// an all-zero vector.
	RegretEpsilon float32 `toml:"regret_epsilon"`
	// Pot-scaled bet sizes to use in the tree. All-in is always allowed.
	BetSizing []float32 `toml:"bet_sizing"`
}

// DefaultParams returns the settings for Leduc Hold'em.
func DefaultParams() Params {
	return Params{
		PlayersCount:  2,
		CardCount:     6,
		Stack:         1200,
		Ante:          100,
		StreetsCount:  2,
		RegretEpsilon: 1.0 / 1000000000,
		BetSizing:     []float32{1},
	}
}

// LoadParams decodes a TOML file on top of DefaultParams.
func LoadParams(path string) (Params, error) {
	p := DefaultParams()
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return p, errors.Wrapf(err, "loading params from %s", path)
	}

	return p, p.Validate()
}

// Validate returns an error if the configuration cannot size lookahead tensors.
func (p Params) Validate() error {
	if p.PlayersCount != 2 {
		return errors.Errorf("players_count must be 2, got %d", p.PlayersCount)
	}

	if p.CardCount <= 0 {
		return errors.Errorf("card_count must be positive, got %d", p.CardCount)
	}

	if p.Stack <= 0 {
		return errors.Errorf("stack must be positive, got %v", p.Stack)
	}

	if p.Ante < 0 || p.Ante > p.Stack {
		return errors.Errorf("ante must be in [0, stack], got %v", p.Ante)
	}

	if p.StreetsCount < 1 {
		return errors.Errorf("streets_count must be at least 1, got %d", p.StreetsCount)
	}

	if p.RegretEpsilon < 0 {
		return errors.Errorf("regret_epsilon must not be negative, got %v", p.RegretEpsilon)
	}

	for _, f := range p.BetSizing {
		if f <= 0 {
			return errors.Errorf("bet sizes must be positive pot fractions, got %v", p.BetSizing)
		}
	}

	return nil
}
