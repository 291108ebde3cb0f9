package enrichment

import "strings"

// llmSpanMarkers are span-name substrings associated with known LLM-call
// auto-instrumentation. A span whose name contains any of them very likely
// belongs to the active session even when no baggage made it across the
// instrumentation boundary.
var llmSpanMarkers = []string{"openai", "chat", "completion", "gpt"}

// DefaultRecoveryHeuristic reports whether the span name matches known
// LLM-call instrumentation, case-insensitively. This is the heuristic the
// processor uses unless one is injected via WithHeuristic: it recovers the
// session association for spans created by third-party instrumentation that
// does not propagate baggage.
//
// It is best-effort by nature — a user span that happens to contain "chat"
// will also match. Baggage always wins when present; the heuristic only
// runs for spans with no explicit session.
func DefaultRecoveryHeuristic(spanName string) bool {
	name := strings.ToLower(spanName)
	for _, marker := range llmSpanMarkers {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}
