package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mitchelldurbincs/HaliteForager/internal/trace"
)

func main() {
	verbose := flag.Bool("actions", false, "Print every ship action")
	fromTurn := flag.Int("from", 0, "First turn to print")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tracedump [-actions] [-from N] <forager-*.jsonl.zst>")
		os.Exit(2)
	}

	recs, err := trace.ReadAll(flag.Arg(0))
	if err != nil {
		log.Fatal().Err(err).Str("path", flag.Arg(0)).Msg("Failed to read trace")
	}

	reasons := make(map[string]int)
	spawns := 0
	for _, r := range recs {
		if r.Spawn {
			spawns++
		}
		for _, a := range r.Actions {
			reasons[a.Reason]++
		}
		if r.Turn < *fromTurn {
			continue
		}
		fmt.Printf("turn %3d  halite %6d  ships %3d  dropoffs %d  spawn %-5v  %6dus\n",
			r.Turn, r.Halite, r.Ships, r.Dropoffs, r.Spawn, r.ElapsedUS)
		if *verbose {
			for _, a := range r.Actions {
				fmt.Printf("    ship %4d %-7s %-5s (%d,%d)->(%d,%d) %-7s %s\n",
					a.ShipID, a.Kind, a.Direction, a.FromX, a.FromY, a.ToX, a.ToY, a.Reason, a.Status)
			}
		}
	}

	fmt.Printf("\n%d turns, %d spawns\n", len(recs), spawns)
	keys := make([]string, 0, len(reasons))
	for k := range reasons {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-8s %d\n", k, reasons[k])
	}
}
