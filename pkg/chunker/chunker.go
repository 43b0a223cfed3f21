// Package chunker segments crash logs into model-sized pieces while
// preserving their structure: ANR traces split at thread boundaries,
// tombstones at section markers, and anything else by line packing.
// For a given (content, mode, model) the produced sequence is deterministic.
package chunker

import (
	"regexp"
	"strings"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

// minChunkChars is the floor for the per-chunk character budget.
const minChunkChars = 10_000

// contextHeadroom leaves room in the context window for the prompt template
// and the model's reply.
const contextHeadroom = 0.8

// Chunk is one contiguous slice of input sized for a single upstream
// round trip.
type Chunk struct {
	Index          int    `json:"index"`
	Total          int    `json:"total"`
	Text           string `json:"text"`
	EstInputTokens int    `json:"est_input_tokens"`
}

// threadCap limits how many ANR threads are packed into one chunk.
// Zero means unlimited.
func threadCap(mode models.AnalysisMode) int {
	switch mode {
	case models.ModeQuick:
		return 20
	case models.ModeIntelligent:
		return 50
	case models.ModeLargeFile:
		return 100
	default:
		return 0
	}
}

// MaxChars is the per-chunk character budget for a model's context window
// in the given mode.
func MaxChars(contextWindow int, mode models.AnalysisMode, provider models.ProviderType) int {
	budget := int(float64(contextWindow) * contextHeadroom * mode.ContextRatio() * provider.CharsPerToken())
	if budget < minChunkChars {
		budget = minChunkChars
	}
	return budget
}

// Split segments content for one upstream model. The returned chunks carry
// their index, the total count, and an input-token estimate.
func Split(content []byte, kind models.LogKind, mode models.AnalysisMode, provider models.ProviderType, contextWindow int) []Chunk {
	maxChars := MaxChars(contextWindow, mode, provider)
	text := string(content)

	var pieces []string
	switch kind {
	case models.LogKindANR:
		pieces = splitANR(text, mode, maxChars)
	case models.LogKindTombstone:
		pieces = splitTombstone(text, mode, maxChars)
	default:
		pieces = splitLines(text, maxChars)
	}
	if len(pieces) == 0 {
		pieces = []string{text}
	}

	chunks := make([]Chunk, len(pieces))
	for i, p := range pieces {
		chunks[i] = Chunk{
			Index:          i,
			Total:          len(pieces),
			Text:           p,
			EstInputTokens: int(float64(len(p)) / provider.CharsPerToken()),
		}
	}
	return chunks
}

// threadHeaderRe matches the first line of an ANR thread block, e.g.
//
//	"main" prio=5 tid=1 Blocked
var threadHeaderRe = regexp.MustCompile(`^".*" prio=\d+ tid=\d+`)

// splitANR splits at thread-header boundaries. The preamble (process header
// block before the first thread) leads the first chunk and is prepended to
// every subsequent chunk. Threads pack into a chunk until the character
// budget or the per-mode thread cap is reached, whichever comes first.
func splitANR(text string, mode models.AnalysisMode, maxChars int) []string {
	lines := strings.SplitAfter(text, "\n")

	var preamble strings.Builder
	var threads []string
	var current strings.Builder
	inThread := false

	for _, line := range lines {
		if threadHeaderRe.MatchString(line) {
			if inThread {
				threads = append(threads, current.String())
				current.Reset()
			}
			inThread = true
		}
		if inThread {
			current.WriteString(line)
		} else {
			preamble.WriteString(line)
		}
	}
	if inThread && current.Len() > 0 {
		threads = append(threads, current.String())
	}

	if len(threads) == 0 {
		return splitLines(text, maxChars)
	}

	header := preamble.String()
	limit := threadCap(mode)

	var out []string
	var chunk strings.Builder
	chunk.WriteString(header)
	packed := 0

	flush := func() {
		out = append(out, chunk.String())
		chunk.Reset()
		chunk.WriteString(header)
		packed = 0
	}

	for _, th := range threads {
		overBudget := packed > 0 && chunk.Len()+len(th) > maxChars
		overCap := limit > 0 && packed >= limit
		if overBudget || overCap {
			flush()
		}
		chunk.WriteString(th)
		packed++
	}
	if packed > 0 {
		out = append(out, chunk.String())
	}
	return out
}

// Tombstone section markers, checked as line prefixes after trimming.
var tombstoneMarkers = []string{
	"*** *** ***",
	"backtrace:",
	"stack:",
	"memory near",
	"code around",
	"registers:",
	"memory map:",
}

// criticalMarkers identify the sections Quick mode keeps.
var criticalMarkers = []string{
	"signal ",
	"abort message",
	"backtrace:",
	"fault addr",
}

func isTombstoneSectionStart(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, m := range tombstoneMarkers {
		if strings.HasPrefix(trimmed, m) {
			return true
		}
	}
	return false
}

func containsCriticalMarker(section string) bool {
	lower := strings.ToLower(section)
	for _, m := range criticalMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// splitTombstone splits at section markers. Quick mode keeps only the first
// three sections carrying critical markers; MaxToken keeps everything;
// otherwise sections merge into chunks up to the character budget.
func splitTombstone(text string, mode models.AnalysisMode, maxChars int) []string {
	lines := strings.SplitAfter(text, "\n")

	var sections []string
	var current strings.Builder
	for _, line := range lines {
		if isTombstoneSectionStart(line) && current.Len() > 0 {
			sections = append(sections, current.String())
			current.Reset()
		}
		current.WriteString(line)
	}
	if current.Len() > 0 {
		sections = append(sections, current.String())
	}

	if len(sections) == 0 {
		return splitLines(text, maxChars)
	}

	if mode == models.ModeQuick {
		var kept []string
		for _, s := range sections {
			if containsCriticalMarker(s) {
				kept = append(kept, s)
				if len(kept) == 3 {
					break
				}
			}
		}
		if len(kept) > 0 {
			sections = kept
		}
	}

	return mergeSections(sections, maxChars)
}

// mergeSections packs consecutive sections into chunks bounded by maxChars.
// A single oversized section becomes its own chunk rather than being split
// mid-section.
func mergeSections(sections []string, maxChars int) []string {
	var out []string
	var chunk strings.Builder
	for _, s := range sections {
		if chunk.Len() > 0 && chunk.Len()+len(s) > maxChars {
			out = append(out, chunk.String())
			chunk.Reset()
		}
		chunk.WriteString(s)
	}
	if chunk.Len() > 0 {
		out = append(out, chunk.String())
	}
	return out
}

// splitLines is the generic fallback: line-oriented packing that preserves
// order and never splits a line.
func splitLines(text string, maxChars int) []string {
	if len(text) <= maxChars {
		return []string{text}
	}
	lines := strings.SplitAfter(text, "\n")

	var out []string
	var chunk strings.Builder
	for _, line := range lines {
		if chunk.Len() > 0 && chunk.Len()+len(line) > maxChars {
			out = append(out, chunk.String())
			chunk.Reset()
		}
		chunk.WriteString(line)
	}
	if chunk.Len() > 0 {
		out = append(out, chunk.String())
	}
	return out
}
