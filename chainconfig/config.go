// Package chainconfig loads the ambient ProcessorConfig the CLI and any
// long-running host wires around a core.Processor: periodic-commit
// interval, default processing options, metrics namespace, and worker-pool
// sizing. The core package itself never imports this package — it takes a
// plain Go struct — matching spec.md §1's exclusion of configuration
// loading from the processor's own scope.
//
// Grounded on go-ethereum's cmd/utils/flags.go tomlSettings/loadConfig
// pattern: a naoina/toml Config with strict field-name normalization and a
// MissingField hook that turns typos into load-time errors instead of
// silently ignored fields.
package chainconfig

import (
	"bufio"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/naoina/toml"
)

// ProcessorConfig is the on-disk shape of a chainprocd TOML config file.
type ProcessorConfig struct {
	// PeriodicCommitInterval is the block-count for mid-branch
	// checkpoints. It is loaded but not applied: core uses its fixed
	// periodicCommitInterval constant (64) and nothing reads this field.
	PeriodicCommitInterval uint64

	// ReadOnly, when true, has the CLI default every Process call to
	// core.ReadOnlyChain.
	ReadOnly bool

	// MetricsNamespace is a name prefix for metrics. It is loaded but not
	// applied: metrics.NewRegistry registers fixed names ("chain/reorgs",
	// ...) and nothing reads this field.
	MetricsNamespace string

	// HashWorkers sizes the background hash-precompute worker pool
	// (core.NewHashPrecomputer).
	HashWorkers int
}

// DefaultConfig is the configuration used when no file is supplied, and
// the base that Load overlays a file's values onto.
func DefaultConfig() ProcessorConfig {
	return ProcessorConfig{
		PeriodicCommitInterval: 64,
		MetricsNamespace:       "chainproc",
		HashWorkers:            4,
	}
}

// tomlSettings mirrors go-ethereum's cmd/utils/flags.go: field names are
// matched case-insensitively with underscores stripped, and an unknown key
// in the file is a load error rather than being silently dropped.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return strings.ToLower(strings.ReplaceAll(key, "_", ""))
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return fmt.Errorf("field %q is not defined in %s", field, rt.String())
	},
}

// Load reads and parses a ProcessorConfig from path, seeded with
// DefaultConfig's values so a file only needs to set what it overrides.
func Load(path string) (ProcessorConfig, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("chainconfig: open %s: %w", path, err)
	}
	defer f.Close()

	if err := tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("chainconfig: parse %s: %w", path, err)
	}
	return cfg, nil
}
