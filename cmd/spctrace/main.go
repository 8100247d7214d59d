// Command spctrace drives a single .spc snapshot instruction-by-
// instruction for debugging, printing a per-step trace (step index and
// sub-cycle count; PC and opcode are not shown) and stopping on a step
// limit or wall-clock timeout. Adapted from the teacher's
// cmd/cpurunner (ring-buffered trace log, timeout, exit-code
// conventions) to drive the SPC700 core directly instead of the Game
// Boy's.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/giannitedesco/spu-kit/internal/aram"
	"github.com/giannitedesco/spu-kit/internal/hexdump"
	"github.com/giannitedesco/spu-kit/internal/machine"
)

func main() {
	snapPath := flag.String("snapshot", "", "path to a .spc snapshot")
	steps := flag.Int("steps", 5_000_000, "max CPU steps to run")
	trace := flag.Bool("trace", false, "print step index and sub-cycle count per step")
	timeout := flag.Duration("timeout", 0, "optional wall-clock timeout; 0 disables")
	dumpEvery := flag.Int("dump-every", 0, "print the CPU registers loaded from the snapshot every N steps; 0 disables")
	bootROMPolicy := flag.String("boot-rom-policy", "accurate", "accurate|naive")
	flag.Parse()

	if *snapPath == "" {
		fmt.Fprintln(os.Stderr, "-snapshot is required")
		os.Exit(2)
	}

	raw, err := os.ReadFile(*snapPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read %s: %v\n", *snapPath, err)
		os.Exit(1)
	}

	policy := aram.PolicyAccurate
	if *bootROMPolicy == "naive" {
		policy = aram.PolicyNaive
	}
	m := machine.New(policy, aram.DefaultIPLROM, nil)
	snap, err := m.LoadSnapshot(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "decode %s: %v\n", *snapPath, err)
		os.Exit(1)
	}
	fmt.Printf("loaded %s: song=%q game=%q\n", *snapPath, snap.ID666.SongTitle, snap.ID666.GameTitle)

	start := time.Now()
	var deadline time.Time
	if *timeout > 0 {
		deadline = start.Add(*timeout)
	}

	var cycles int
	for i := 0; i < *steps && !m.Halted(); i++ {
		cyc := m.Step()
		cycles += cyc
		if *trace {
			fmt.Printf("step=%d cyc=%d\n", i, cyc)
		}
		if *dumpEvery > 0 && i%(*dumpEvery) == 0 {
			hexdump.Regs(fmt.Sprintf("step %d", i), snap.Regs)
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			fmt.Printf("timeout after %s\n", time.Since(start).Truncate(time.Millisecond))
			os.Exit(2)
		}
	}

	fmt.Printf("done: cycles=%d elapsed=%s halted=%t\n",
		cycles, time.Since(start).Truncate(time.Millisecond), m.Halted())
}
