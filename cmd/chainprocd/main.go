// Command chainprocd is a thin CLI wrapper around core.Processor for
// manual and CI exercising of the block processor: wiring configuration,
// logging, and a `process` subcommand that replays a branch description
// file against a genesis state root. It carries none of the processor's
// own logic — everything here is composition — and sits entirely outside
// spec.md §1's scope for the core itself.
//
// Grounded on go-ethereum's cmd/geth entrypoint: a urfave/cli/v2 App with
// global flags plus one command per operation.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/chainproc/chainproc/chainconfig"
	"github.com/chainproc/chainproc/checkpoint"
	"github.com/chainproc/chainproc/core"
	"github.com/chainproc/chainproc/core/state"
	"github.com/chainproc/chainproc/core/types"
	"github.com/chainproc/chainproc/log"
	"github.com/chainproc/chainproc/params"
)

var (
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "path to a chainconfig TOML file",
	}
	checkpointDirFlag = &cli.StringFlag{
		Name:  "checkpoint-dir",
		Usage: "directory for the on-disk checkpoint journal",
		Value: "./chainprocd-checkpoints",
	}
	branchFileFlag = &cli.StringFlag{
		Name:     "branch",
		Usage:    "path to a JSON branch description file",
		Required: true,
	}
	readOnlyFlag = &cli.BoolFlag{
		Name:  "read-only",
		Usage: "process the branch with ReadOnlyChain: no witness persistence or block-processed events",
	}
)

func main() {
	app := &cli.App{
		Name:  "chainprocd",
		Usage: "replay a branch of blocks through the chainproc block processor",
		Commands: []*cli.Command{
			processCommand,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var processCommand = &cli.Command{
	Name:  "process",
	Usage: "re-execute a branch of suggested blocks",
	Flags: []cli.Flag{configFlag, checkpointDirFlag, branchFileFlag, readOnlyFlag},
	Action: func(c *cli.Context) error {
		cfg := chainconfig.DefaultConfig()
		if path := c.String(configFlag.Name); path != "" {
			loaded, err := chainconfig.Load(path)
			if err != nil {
				return err
			}
			cfg = loaded
		}

		logger := log.Root().With("component", "chainprocd")

		branch, err := loadBranch(c.String(branchFileFlag.Name))
		if err != nil {
			return err
		}

		store, err := checkpoint.Open(c.String(checkpointDirFlag.Name))
		if err != nil {
			return err
		}

		ws := state.NewMemoryState()
		processor, err := core.NewProcessor(
			ws,
			core.NewCachedSpecProvider(defaultChainConfig(), 256),
			&core.SimpleExecutor{State: ws},
			core.DefaultValidator{},
			&core.FixedRewardCalculator{},
			core.DefaultReceiptsRootCalculator{},
			core.NewInMemoryReceiptStorage(),
		)
		if err != nil {
			return err
		}
		processor.Log = logger
		if cfg.HashWorkers > 0 {
			processor.Precomputer.Stop()
			processor.Precomputer = core.NewHashPrecomputer(cfg.HashWorkers)
		}
		defer processor.Precomputer.Stop()

		options := core.ProcessingOptions(0)
		if c.Bool(readOnlyFlag.Name) || cfg.ReadOnly {
			options |= core.ReadOnlyChain
		}

		markDone, err := store.RecordStart(branch.RunLabel, ws.StateRoot())
		if err != nil {
			logger.Warn("checkpoint journal unavailable, continuing without it", "err", err)
			markDone = func() error { return nil }
		}

		processed, err := processor.Process(ws.StateRoot(), branch.Blocks, options, core.NoopTracer{})
		if err != nil {
			return fmt.Errorf("process: %w", err)
		}
		if err := markDone(); err != nil {
			logger.Warn("failed to record checkpoint completion", "err", err)
		}

		logger.Info("branch processed", "blocks", len(processed))
		return nil
	},
}

// branchFile is the JSON-on-disk shape `process` reads: a label for the
// checkpoint journal plus the suggested blocks to replay.
type branchFile struct {
	RunLabel string         `json:"run_label"`
	Blocks   []*types.Block `json:"blocks"`
}

func loadBranch(path string) (*branchFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read branch file: %w", err)
	}
	var bf branchFile
	if err := json.Unmarshal(data, &bf); err != nil {
		return nil, fmt.Errorf("parse branch file: %w", err)
	}
	return &bf, nil
}

func defaultChainConfig() *params.ChainConfig {
	return &params.ChainConfig{}
}
