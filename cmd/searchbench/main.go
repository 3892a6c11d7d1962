package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"chesscore/board"
	"chesscore/engine"
)

func main() {
	// --- Flags ---
	depthFlag := flag.Int("depth", engine.DefaultConfig().Depth, "search depth in plies, root move included")
	repeatFlag := flag.Int("repeat", 1, "number of searches to run")
	fenFlag := flag.String("fen", "", "FEN to search (empty = startpos)")
	statsFlag := flag.Bool("stats", false, "print node and cutoff counters after each search")
	cpuProfile := flag.String("cpuprofile", "", "write CPU profile to file")
	memProfile := flag.String("memprofile", "", "write memory profile (heap) to file")
	flag.Parse()

	if *depthFlag <= 0 {
		log.Fatalf("depth must be positive, got %d", *depthFlag)
	}

	// --- Optional CPU profiling setup ---
	if *cpuProfile != "" {
		cpuFile, err := os.Create(*cpuProfile)
		if err != nil {
			log.Fatalf("could not create CPU profile: %v", err)
		}
		if err := pprof.StartCPUProfile(cpuFile); err != nil {
			log.Fatalf("could not start CPU profile: %v", err)
		}
		defer func() {
			pprof.StopCPUProfile()
			cpuFile.Close()
		}()
	}

	fen := board.StartFEN
	if *fenFlag != "" {
		fen = *fenFlag
	}
	start, err := board.ParseFEN(fen)
	if err != nil {
		log.Fatalf("bad fen: %v", err)
	}

	fmt.Printf("searchbench: fen=%q depth=%d repeat=%d\n", fen, *depthFlag, *repeatFlag)

	s := engine.NewSearcher(engine.Config{Depth: *depthFlag})
	startAll := time.Now()
	for i := 0; i < *repeatFlag; i++ {
		// Fresh position for each run
		pos := start

		iterStart := time.Now()
		best, score := s.BestMove(&pos)
		iterElapsed := time.Since(iterStart)

		fmt.Printf("iteration %d: bestmove %v score %d nodes %d time=%v\n", i+1, best, score, s.Stats.Nodes, iterElapsed)
		if *statsFlag {
			s.Stats.Dump(os.Stdout)
		}
	}
	fmt.Printf("total time: %v\n", time.Since(startAll))

	// --- Optional heap profile at the end ---
	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			log.Fatalf("could not create memory profile: %v", err)
		}
		defer f.Close()

		runtime.GC() // get up-to-date heap info
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatalf("could not write memory profile: %v", err)
		}
	}
}
