// Command spckit loads one or more .spc snapshot files and renders
// each to a 32 kHz/16-bit/stereo WAV file. Grounded on
// _examples/original_source/src/main.c's handle_file loop (one
// positional argument per snapshot, process continues past individual
// failures, exit status reflects whether every file succeeded), with
// argument parsing done via github.com/urfave/cli/v2 per
// SPEC_FULL.md §4.17 rather than the teacher's bare flag package,
// since spec.md §6 leaves the CLI's option surface unconstrained.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/urfave/cli/v2"

	"github.com/giannitedesco/spu-kit/internal/aram"
	"github.com/giannitedesco/spu-kit/internal/config"
	"github.com/giannitedesco/spu-kit/internal/dsp"
	"github.com/giannitedesco/spu-kit/internal/liveplay"
	"github.com/giannitedesco/spu-kit/internal/machine"
	"github.com/giannitedesco/spu-kit/internal/wavsink"
)

// fanoutSink duplicates every sample to both the WAV encoder and the
// optional live-preview stream.
type fanoutSink struct {
	sinks []machine.Sink
}

func (f *fanoutSink) Write(sample dsp.Sample) {
	for _, s := range f.sinks {
		s.Write(sample)
	}
}

func outputPathFor(snapshotPath, outFlag string) string {
	if outFlag != "" {
		return outFlag
	}
	base := strings.TrimSuffix(filepath.Base(snapshotPath), filepath.Ext(snapshotPath))
	return base + ".wav"
}

func renderOne(cCtx *cli.Context, cfg config.Config, audioCtx *audio.Context, snapshotPath string, logger *log.Logger) error {
	raw, err := os.ReadFile(snapshotPath)
	if err != nil {
		return fmt.Errorf("%s: read: %w", snapshotPath, err)
	}

	iplROM := aram.DefaultIPLROM
	if !cfg.SeedIPLROM {
		iplROM = [aram.OverlaySize]byte{}
	}

	m := machine.New(cfg.AramPolicy(), iplROM, logger)

	snap, err := m.LoadSnapshot(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", snapshotPath, err)
	}
	logger.Info("decoded snapshot", "file", snapshotPath, "song", snap.ID666.SongTitle)
	if cfg.Trace {
		snap.ID666.Dump(logger)
	}

	outPath := outputPathFor(snapshotPath, cCtx.String("out"))
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("%s: create %s: %w", snapshotPath, outPath, err)
	}
	defer f.Close()

	sink := wavsink.New(f)
	fanout := &fanoutSink{sinks: []machine.Sink{sink}}

	var player *liveplay.Player
	if cCtx.Bool("live") && audioCtx != nil {
		stream := liveplay.NewStream(0)
		p, err := liveplay.NewPlayer(audioCtx, stream, false)
		if err != nil {
			logger.Error("live preview unavailable", "err", err)
		} else {
			player = p
			fanout.sinks = append(fanout.sinks, stream)
		}
	}

	m.SetSink(fanout)

	var maxSamples uint64
	if seconds := cCtx.Int("seconds"); seconds > 0 {
		maxSamples = uint64(seconds) * uint64(cfg.SampleRate)
	} else if cfg.SampleLimit > 0 {
		maxSamples = uint64(cfg.SampleLimit)
	}

	m.RunSamples(maxSamples)

	if player != nil {
		if err := player.Close(); err != nil {
			logger.Error("closing live preview", "err", err)
		}
	}

	if err := sink.Close(); err != nil {
		return fmt.Errorf("%s: finalize %s: %w", snapshotPath, outPath, err)
	}

	logger.Info("wrote output", "file", outPath)
	return nil
}

func run(cCtx *cli.Context) error {
	cfg, err := config.Load(cCtx.String("config"))
	if err != nil {
		return err
	}
	if cCtx.Bool("trace") {
		cfg.Trace = true
	}
	if policy := cCtx.String("boot-rom-policy"); policy != "" {
		cfg.BootROMPolicy = config.BootROMPolicy(policy)
	}

	logger := log.Default()
	if cfg.Trace {
		logger.SetLevel(log.DebugLevel)
	}

	if cCtx.NArg() == 0 {
		return cli.Exit("no snapshot files given", 1)
	}

	var audioCtx *audio.Context
	if cCtx.Bool("live") {
		audioCtx = audio.NewContext(liveplay.SampleRate)
	}

	failures := 0
	for _, path := range cCtx.Args().Slice() {
		if err := renderOne(cCtx, cfg, audioCtx, path, logger); err != nil {
			logger.Error("run failed", "err", err)
			failures++
		}
	}

	if failures > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d snapshots failed", failures, cCtx.NArg()), 1)
	}
	return nil
}

func main() {
	app := &cli.App{
		Name:      "spckit",
		Usage:     "render .spc snapshots to 32kHz/16-bit stereo WAV",
		ArgsUsage: "SNAPSHOT...",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "path to a YAML config file"},
			&cli.StringFlag{Name: "out", Usage: "output WAV path (single-file runs only; default derives from the input name)"},
			&cli.IntFlag{Name: "seconds", Usage: "stop after this many seconds of audio (0 = run until the CPU halts)"},
			&cli.BoolFlag{Name: "live", Usage: "additionally preview audio live while rendering"},
			&cli.StringFlag{Name: "boot-rom-policy", Usage: "accurate|naive"},
			&cli.BoolFlag{Name: "trace", Usage: "enable debug-level logging"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
