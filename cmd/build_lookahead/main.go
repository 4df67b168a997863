package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"strconv"
	"strings"

	"github.com/golang/glog"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/timpalpant/go-deepstack"
	"github.com/timpalpant/go-deepstack/ldbstore"
	"github.com/timpalpant/go-deepstack/lookahead"
	"github.com/timpalpant/go-deepstack/nn"
	"github.com/timpalpant/go-deepstack/rdbstore"
	"github.com/timpalpant/go-deepstack/tree"
)

func parseBets(s string) ([2]float32, error) {
	var bets [2]float32
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return bets, fmt.Errorf("expected two comma-separated bets, got %q", s)
	}

	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 32)
		if err != nil {
			return bets, err
		}
		bets[i] = float32(v)
	}

	return bets, nil
}

// rootStreet resolves the -street flag, where 0 means the last street.
func rootStreet(street int, params deepstack.Params) int {
	if street == 0 {
		return params.StreetsCount
	}

	return street
}

func openStore(ldbPath, rdbPath string) (lookahead.SnapshotStore, error) {
	switch {
	case ldbPath != "":
		return ldbstore.New(ldbPath, &opt.Options{})
	case rdbPath != "":
		return rdbstore.New(rdbstore.DefaultParams(rdbPath))
	}

	return nil, nil
}

func main() {
	street := flag.Int("street", 0, "Street of the root node, 0 for the last street. "+
		"Earlier streets require -model")
	player := flag.Int("player", 0, "Player to act at the root (0 or 1)")
	betsFlag := flag.String("bets", "100,100", "Chips committed by each player at the root")
	paramsPath := flag.String("params", "", "TOML file with game parameters")
	modelPath := flag.String("model", "", "Value network for street transitions")
	ldbPath := flag.String("ldb", "", "Cache snapshots in a LevelDB database at this path")
	rdbPath := flag.String("rdb", "", "Cache snapshots in a RocksDB database at this path")
	pprofAddr := flag.String("pprof", "localhost:4123", "Address to serve pprof on")
	flag.Parse()

	go http.ListenAndServe(*pprofAddr, nil)

	params := deepstack.DefaultParams()
	if *paramsPath != "" {
		var err error
		if params, err = deepstack.LoadParams(*paramsPath); err != nil {
			glog.Fatal(err)
		}
	}

	bets, err := parseBets(*betsFlag)
	if err != nil {
		glog.Fatal(err)
	}

	root, err := tree.NewBuilder(params).Build(tree.Root{
		Street: rootStreet(*street, params),
		Player: deepstack.Player(*player),
		Bets:   bets,
	})
	if err != nil {
		glog.Fatal(err)
	}

	glog.Infof("Built public tree with %d nodes (%d terminal), depth %d",
		deepstack.CountNodes(root), deepstack.CountTerminalNodes(root), root.Depth())

	var values nn.Provider
	if *modelPath != "" {
		values = nn.LazyMLPFile(*modelPath)
	}

	la, err := lookahead.NewBuilder(params, values).Build(root)
	if err != nil {
		glog.Fatalf("%+v", err)
	}

	for d, layer := range la.Layers {
		var pending int
		if la.NextStreetBoxes != nil && la.NextStreetBoxes[d] != nil {
			pending = la.NextStreetBoxes[d].BatchSize()
		}

		fmt.Printf("depth %d: [%d %d %d] %d slots, %d live (%d terminal, %d all-in), %d transitions\n",
			d, layer.Actions, layer.Parents, layer.Grandparents, la.Counts.All.At(d),
			layer.LiveSlots(), la.Counts.Terminal.At(d), la.Counts.Allin.At(d), pending)
	}

	if la.NextStreetBoxes != nil {
		if err := evaluateUniform(la); err != nil {
			glog.Fatal(err)
		}
	}

	store, err := openStore(*ldbPath, *rdbPath)
	if err != nil {
		glog.Fatal(err)
	} else if store == nil {
		return
	}
	defer store.Close()

	key := lookahead.Key(root)
	if err := store.Put(key, la.Snapshot()); err != nil {
		glog.Fatal(err)
	}
	glog.Infof("Saved snapshot %v", key)
}

// evaluateUniform queries the value network at every transition
// with uniform ranges for both players.
func evaluateUniform(la *lookahead.Lookahead) error {
	ranges := make([][]float32, len(la.NextStreetBoxes))
	values := make([][]float32, len(la.NextStreetBoxes))
	for d, box := range la.NextStreetBoxes {
		if box == nil {
			continue
		}

		n := box.BatchSize() * 2 * la.Params.CardCount
		ranges[d] = make([]float32, n)
		for i := range ranges[d] {
			ranges[d][i] = 1 / float32(la.Params.CardCount)
		}
		values[d] = make([]float32, n)
	}

	if err := nn.ValueAll(context.Background(), la.NextStreetBoxes, ranges, values); err != nil {
		return err
	}

	for d, v := range values {
		if v != nil {
			glog.Infof("Depth %d: next street values %v", d, v)
		}
	}

	return nil
}
