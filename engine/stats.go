package engine

import (
	"fmt"
	"io"
)

// Stats collects node and cutoff counts for one BestMove call.
type Stats struct {
	Nodes       uint64
	BetaCutoffs uint64
	Leaves      uint64
	Mates       uint64
	Stalemates  uint64
	FiftyMove   uint64
}

// Dump writes the counters as UCI "info string" lines.
func (s Stats) Dump(w io.Writer) {
	fmt.Fprintln(w, "info string Search statistics:")
	fmt.Fprintf(w, "info string   Nodes: %d\n", s.Nodes)
	fmt.Fprintf(w, "info string   Leaves: %d\n", s.Leaves)
	fmt.Fprintf(w, "info string   Beta cutoffs: %d\n", s.BetaCutoffs)
	fmt.Fprintf(w, "info string   Mates: %d\n", s.Mates)
	fmt.Fprintf(w, "info string   Stalemates: %d\n", s.Stalemates)
	fmt.Fprintf(w, "info string   Fifty-move draws: %d\n", s.FiftyMove)
}
