package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/armtrack/armtrack/internal/analysis"
	"github.com/armtrack/armtrack/internal/replay"
	"github.com/armtrack/armtrack/internal/scoring"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	input := flag.String("input", "", "path to a JSONL file of landmark frames (one 132-float frame per line)")
	fps := flag.Float64("fps", 30, "frame rate of the recorded video")
	stride := flag.Int("stride", 1, "keep every Nth frame (capture pipelines often sample sparsely)")
	videoName := flag.String("video", "", "video name to record with the analysis (defaults to the input filename)")
	list := flag.Bool("list", false, "list previously recorded runs and exit")
	fullOutput := flag.Bool("full", false, "print per-frame results, not just the summary")
	version := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *version {
		fmt.Println("armtrack-replay", Version)
		return
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Error("failed to get home directory", "error", err)
		os.Exit(1)
	}
	results, err := replay.OpenResultsDB(filepath.Join(homeDir, ".armtrack-replay"))
	if err != nil {
		log.Error("failed to open results database", "error", err)
		os.Exit(1)
	}
	defer results.Close()

	if *list {
		entries, err := results.List()
		if err != nil {
			log.Error("failed to list runs", "error", err)
			os.Exit(1)
		}
		printEntries(entries)
		return
	}

	if *input == "" {
		fmt.Fprintf(os.Stderr, "Usage: armtrack-replay -input <frames.jsonl> [-fps N] [-stride N] [-full]\n\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	f, err := os.Open(*input)
	if err != nil {
		log.Error("failed to open input", "path", *input, "error", err)
		os.Exit(1)
	}
	frames, err := replay.ReadFrames(f, *stride)
	f.Close()
	if err != nil {
		log.Error("failed to read frames", "path", *input, "error", err)
		os.Exit(1)
	}
	if len(frames) == 0 {
		log.Error("no frames in input", "path", *input)
		os.Exit(1)
	}

	name := *videoName
	if name == "" {
		name = filepath.Base(*input)
	}

	// The stride thins the frame stream, so the effective rate drops with it.
	effectiveFPS := *fps
	if *stride > 1 {
		effectiveFPS = *fps / float64(*stride)
	}

	analyzer := analysis.NewAnalyzer(scoring.DefaultConfig(), log)
	result, err := analyzer.Run(context.Background(), &analysis.Request{
		VideoName: name,
		FPS:       effectiveFPS,
		Frames:    frames,
	})
	if err != nil {
		log.Error("analysis failed", "error", err)
		os.Exit(1)
	}

	if err := results.Record(result, *input); err != nil {
		log.Error("failed to record run", "error", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if *fullOutput {
		err = enc.Encode(result)
	} else {
		err = enc.Encode(result.Summary)
	}
	if err != nil {
		log.Error("failed to print result", "error", err)
		os.Exit(1)
	}
}

func printEntries(entries []replay.Entry) {
	if len(entries) == 0 {
		fmt.Println("no recorded runs")
		return
	}
	fmt.Println("=== Recorded Runs ===")
	for _, e := range entries {
		fmt.Printf("  %s  %s  reps=%d  avg=%.1f  %s  (%s)\n",
			e.CreatedAt.Format("2006-01-02 15:04"), e.AnalysisID,
			e.TotalReps, e.AverageScore, e.Level, e.Source)
	}
}
