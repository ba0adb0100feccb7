// SPDX-License-Identifier: MIT

package assign

// Logger defines methods for structured logging.
//
// All methods accept alternating key-value pairs, the same calling
// convention as zap.SugaredLogger's *w methods and log/slog.
type Logger interface {
	Debug(msg string, keysAndValues ...any)
	Info(msg string, keysAndValues ...any)
	Warn(msg string, keysAndValues ...any)
	Error(msg string, keysAndValues ...any)
}

// Metrics records per-round outcomes. Implementations must be safe for
// concurrent use; Engine calls them from whatever goroutine runs Assign.
type Metrics interface {
	// RecordRound records one Assign call.
	//
	// Parameters:
	//   - outcome: "success", "invalid_input", "malformed_graph" or "error"
	//   - seconds: wall time spent in Assign
	RecordRound(outcome string, seconds float64)

	// RecordAssignments records the size of a successful round and how many
	// of its assignments were priced at the unassignable sentinel.
	RecordAssignments(assigned, lowConfidence int)
}

// Round outcomes reported to Metrics.
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidInput   = "invalid_input"
	OutcomeMalformedGraph = "malformed_graph"
	OutcomeError          = "error"
)

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any) {}
func (nopLogger) Warn(string, ...any) {}
func (nopLogger) Error(string, ...any) {}

// nopMetrics records nothing.
type nopMetrics struct{}

func (nopMetrics) RecordRound(string, float64) {}
func (nopMetrics) RecordAssignments(int, int) {}

// NopLogger returns a Logger that discards all messages.
func NopLogger() Logger { return nopLogger{} }

// NopMetrics returns a Metrics that records nothing.
func NopMetrics() Metrics { return nopMetrics{} }
