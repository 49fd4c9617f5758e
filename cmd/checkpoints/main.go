package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/donatenet/donated/domain/chaincfg"
	"github.com/donatenet/donated/infrastructure/logger"
	"github.com/donatenet/donated/util/panics"
)

func main() {
	defer panics.HandlePanic(log)

	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		os.Exit(1)
	}
	err = logger.ParseAndSetLogLevels(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.InitLogStdout(logger.LevelTrace)
	defer logger.BackendLog.Close()

	run(os.Stdout, cfg, cfg.NetParams(), time.Now())
}

func run(w io.Writer, cfg *configFlags, params *chaincfg.Params, now time.Time) {
	checkpoints := params.Checkpoints
	if cfg.UseGoOutput {
		writeGoCheckpoints(w, checkpoints)
	} else {
		writeSummary(w, params.Name, checkpoints, now)
	}

	if cfg.hash != nil {
		result := checkpoints.Verify(cfg.Height, cfg.hash)
		fmt.Fprintf(w, "Block %d %s: %s\n", cfg.Height, cfg.hash, result)
	}
	if cfg.Time != 0 {
		at := time.Unix(cfg.Time, 0)
		fmt.Fprintf(w, "Estimated height at %s: %d\n", at.UTC().Format(time.RFC3339),
			checkpoints.EstimateHeightFromTime(at))
	}
}

func writeSummary(w io.Writer, name string, checkpoints *chaincfg.CheckpointTable, now time.Time) {
	list := checkpoints.Checkpoints()
	last := list[len(list)-1]
	fmt.Fprintf(w, "Network %s has %d checkpoints\n", name, len(list))
	fmt.Fprintf(w, "Last checkpoint: %d %s at %s\n", last.Height, last.Hash,
		checkpoints.LastCheckpointTime().UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Transactions up to the last checkpoint: %d, estimated per day: %.0f\n",
		checkpoints.TransactionsLastCheckpoint(), checkpoints.TransactionsPerDay())
	fmt.Fprintf(w, "Maximum reorganization depth: %d\n", checkpoints.MaxReorgDepth())
	fmt.Fprintf(w, "Estimated height now: %d\n", checkpoints.EstimateHeightFromTime(now))
}

func writeGoCheckpoints(w io.Writer, checkpoints *chaincfg.CheckpointTable) {
	for _, checkpoint := range checkpoints.Checkpoints() {
		fmt.Fprintf(w, "{%d, newHashFromStr(\"%s\")},\n", checkpoint.Height, checkpoint.Hash)
	}
}
