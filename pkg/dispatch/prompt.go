package dispatch

import (
	"fmt"
	"strings"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/chunker"
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

func systemPrompt(kind models.LogKind, mode models.AnalysisMode) string {
	var b strings.Builder
	switch kind {
	case models.LogKindANR:
		b.WriteString("You are an Android stability engineer analyzing an ANR (Application Not Responding) thread dump. ")
		b.WriteString("Identify the blocked main thread, lock contention, and the most likely root cause.")
	case models.LogKindTombstone:
		b.WriteString("You are an Android stability engineer analyzing a native crash tombstone. ")
		b.WriteString("Identify the fatal signal, the faulting frame in the backtrace, and the most likely root cause.")
	}
	switch mode {
	case models.ModeQuick:
		b.WriteString(" Be brief: report only the top findings.")
	case models.ModeMaxToken:
		b.WriteString(" Be exhaustive: examine every section and explain your reasoning.")
	}
	return b.String()
}

func userPrompt(kind models.LogKind, c chunker.Chunk) string {
	var b strings.Builder
	if c.Total > 1 {
		fmt.Fprintf(&b, "This is part %d of %d of the %s log.\n\n", c.Index+1, c.Total, kind)
	}
	b.WriteString(c.Text)
	return b.String()
}
