package cmd

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/helena-lang/helena-go/eval"
	"github.com/helena-lang/helena-go/scope"
)

// fileConfig is the YAML shape accepted by -c/--config: a host pinning
// scope/process options for production vs. development the way an
// embedder would, rather than every host hand-rolling its own flag set
// (SPEC_FULL.md §3, §4).
type fileConfig struct {
	CapturePositions  bool `yaml:"capture_positions"`
	CaptureErrorStack bool `yaml:"capture_error_stack"`
	StepLimit         int  `yaml:"step_limit"`
}

// loadConfig reads path (if non-empty) and returns the scope.Options and
// eval.Options it describes. An empty path yields the zero-cost
// defaults for both.
func loadConfig(path string) (scope.Options, eval.Options, error) {
	if path == "" {
		return scope.DefaultOptions(), eval.Options{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return scope.Options{}, eval.Options{}, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return scope.Options{}, eval.Options{}, err
	}

	return scope.Options{
			CapturePositions:  fc.CapturePositions,
			CaptureErrorStack: fc.CaptureErrorStack,
		}, eval.Options{
			CaptureErrorStack: fc.CaptureErrorStack,
			StepLimit:         fc.StepLimit,
		}, nil
}
