package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
)

// benchPackages are the packages whose benchmarks are run.
var benchPackages = []string{"./board", "./engine", "."}

// perftRuns are the macro throughput positions: label, FEN, depth.
var perftRuns = [][3]string{
	{"Initial", "", "4"},
	{"Initial", "", "5"},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "3"},
	{"Kiwipete", "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", "4"},
	{"Endgame", "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", "5"},
}

// goTool runs the go command with its output attached to ours and returns
// the exit status.
func goTool(args ...string) int {
	cmd := exec.Command("go", args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	err := cmd.Run()
	var ee *exec.ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &ee):
		return ee.ExitCode()
	default:
		fmt.Fprintf(os.Stderr, "go %s: %v\n", args[0], err)
		return 1
	}
}

// benchArgs builds the go test invocation that runs only benchmarks.
func benchArgs() []string {
	args := append([]string{"test"}, benchPackages...)
	return append(args, "-run", "^$", "-bench", ".", "-benchmem", "-benchtime=1s")
}

// perftArgs builds the go run invocation of cmd/perft for one table row.
func perftArgs(r [3]string) []string {
	args := []string{"run", "./cmd/perft", "-depth", r[2], "-label", r[0]}
	if r[1] != "" {
		args = append(args, "-fen", r[1])
	}
	return args
}

func main() {
	// Usage: go run ./cmd/benchrun
	fmt.Println("Columns: BENCHMARK  N  ns/op  B/op  allocs/op")
	if code := goTool(benchArgs()...); code != 0 {
		os.Exit(code)
	}

	fmt.Println("\nPerft Performance:")
	fmt.Println("TEST \t\tDepth \t\tNodes \t\tTime \tNPS")
	failed := 0
	for _, r := range perftRuns {
		if goTool(perftArgs(r)...) != 0 {
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d perft runs failed\n", failed)
		os.Exit(1)
	}
}
