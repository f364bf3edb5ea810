package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agbru/modcalc/internal/engine"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// JSON prints the result as a JSON document.
	JSON bool
	// Quiet mode suppresses verbose output.
	Quiet bool
	// Verbose shows the full result value.
	Verbose bool
}

// JSONResult is the document written in JSON mode.
type JSONResult struct {
	engine.Result
	Duration string `json:"duration"`
}

// FormatQuietResult formats a result for quiet mode output: the verdict, the
// values and the factorization separated by single spaces. Suitable for
// scripting.
func FormatQuietResult(res engine.Result) string {
	parts := make([]string, 0, len(res.Values)+2)
	if res.Verdict != nil {
		parts = append(parts, fmt.Sprintf("%t", *res.Verdict))
	}
	for _, v := range res.Values {
		parts = append(parts, v.Value.String())
	}
	if len(res.Factors) > 0 {
		parts = append(parts, strings.ReplaceAll(engine.FormatFactors(res.Factors), " ", ""))
	}
	return strings.Join(parts, " ")
}

// DisplayResultWithConfig displays a result with the given output configuration.
// This is a unified function that handles all output modes.
//
// Parameters:
//   - out: The output writer.
//   - res: The evaluation result.
//   - duration: The evaluation duration.
//   - config: Output configuration.
//
// Returns:
//   - error: An error if JSON encoding fails.
func DisplayResultWithConfig(out io.Writer, res engine.Result, duration time.Duration, config OutputConfig) error {
	switch {
	case config.JSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(JSONResult{Result: res, Duration: duration.String()}); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
	case config.Quiet:
		fmt.Fprintln(out, FormatQuietResult(res))
	default:
		DisplayResult(res, duration, config.Verbose, out)
	}
	return nil
}
