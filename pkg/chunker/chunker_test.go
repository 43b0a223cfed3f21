package chunker

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

func buildANR(threads int) string {
	var b strings.Builder
	b.WriteString("----- pid 12345 at 2025-01-15 10:00:00 -----\n")
	b.WriteString("Cmd line: com.example.app\n\n")
	for i := 1; i <= threads; i++ {
		fmt.Fprintf(&b, "\"Thread-%d\" prio=5 tid=%d Waiting\n", i, i)
		b.WriteString("  | group=\"main\" sCount=1 dsCount=0\n")
		b.WriteString("  at java.lang.Object.wait(Native method)\n")
		b.WriteString("  at java.lang.Thread.run(Thread.java:919)\n\n")
	}
	return b.String()
}

func buildTombstone() string {
	var b strings.Builder
	b.WriteString("*** *** *** *** *** *** *** *** *** *** *** *** *** *** *** ***\n")
	b.WriteString("Build fingerprint: 'google/flame/flame:11/RQ1A'\n")
	b.WriteString("signal 11 (SIGSEGV), code 1 (SEGV_MAPERR), fault addr 0x0\n")
	b.WriteString("Abort message: 'null deref'\n")
	b.WriteString("registers:\n    x0 0000000000000000  x1 0000007c1f2a3b40\n")
	b.WriteString("backtrace:\n      #00 pc 00000000000542f4  /system/lib64/libc.so\n")
	b.WriteString("stack:\n         0000007fe5a8c000  0000000000000000\n")
	b.WriteString("memory near x1:\n    0000007c1f2a3b20 0000000000000000\n")
	b.WriteString("memory map:\n    12c00000-52c00000 rw-  /dev/ashmem\n")
	return b.String()
}

func TestSplitANR_ThreadCapIntelligent(t *testing.T) {
	content := buildANR(120)

	chunks := Split([]byte(content), models.LogKindANR, models.ModeIntelligent, models.ProviderAnthropic, 200_000)

	require.Len(t, chunks, 3, "120 threads at 50 per chunk")
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		assert.Equal(t, 3, c.Total)
		assert.True(t, strings.HasPrefix(c.Text, "----- pid 12345"), "chunk %d missing header block", i)
	}
	assert.Equal(t, 50, strings.Count(chunks[0].Text, "\" prio="))
	assert.Equal(t, 50, strings.Count(chunks[1].Text, "\" prio="))
	assert.Equal(t, 20, strings.Count(chunks[2].Text, "\" prio="))
}

func TestSplitANR_Deterministic(t *testing.T) {
	content := []byte(buildANR(73))

	a := Split(content, models.LogKindANR, models.ModeQuick, models.ProviderOpenAI, 128_000)
	b := Split(content, models.LogKindANR, models.ModeQuick, models.ProviderOpenAI, 128_000)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].Text, b[i].Text)
	}
}

func TestSplitANR_ThreadsStayIntact(t *testing.T) {
	content := buildANR(60)

	chunks := Split([]byte(content), models.LogKindANR, models.ModeLargeFile, models.ProviderAnthropic, 200_000)

	var reassembled strings.Builder
	header := "----- pid 12345 at 2025-01-15 10:00:00 -----\nCmd line: com.example.app\n\n"
	for i, c := range chunks {
		body := strings.TrimPrefix(c.Text, header)
		if i == 0 {
			reassembled.WriteString(header)
		}
		reassembled.WriteString(body)
	}
	assert.Equal(t, content, reassembled.String(), "no thread body may be truncated")
}

func TestSplitANR_NoThreadHeadersFallsBackToLines(t *testing.T) {
	content := []byte("just some log output\nwith no thread blocks\n")

	chunks := Split(content, models.LogKindANR, models.ModeQuick, models.ProviderAnthropic, 200_000)

	require.Len(t, chunks, 1)
	assert.Equal(t, string(content), chunks[0].Text)
}

func TestSplitTombstone_QuickKeepsCriticalSections(t *testing.T) {
	content := buildTombstone()

	chunks := Split([]byte(content), models.LogKindTombstone, models.ModeQuick, models.ProviderAnthropic, 200_000)

	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Text, "signal 11")
	assert.Contains(t, chunks[0].Text, "backtrace:")
	assert.NotContains(t, chunks[0].Text, "memory map:")
}

func TestSplitTombstone_MaxTokenKeepsEverything(t *testing.T) {
	content := buildTombstone()

	chunks := Split([]byte(content), models.LogKindTombstone, models.ModeMaxToken, models.ProviderAnthropic, 200_000)

	require.Len(t, chunks, 1)
	assert.Equal(t, content, chunks[0].Text)
}

func TestSplitGeneric_NeverSplitsALine(t *testing.T) {
	line := strings.Repeat("x", 512) + "\n"
	content := strings.Repeat(line, 200)

	// Tiny window forces the floor budget of 10 000 chars.
	chunks := Split([]byte(content), models.LogKind("logcat"), models.ModeQuick, models.ProviderLocal, 1)

	require.Greater(t, len(chunks), 1)
	var joined strings.Builder
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.Text), minChunkChars)
		for _, l := range strings.SplitAfter(c.Text, "\n") {
			if l != "" {
				assert.Equal(t, line, l)
			}
		}
		joined.WriteString(c.Text)
	}
	assert.Equal(t, content, joined.String())
}

func TestMaxChars_Floor(t *testing.T) {
	assert.Equal(t, minChunkChars, MaxChars(1000, models.ModeQuick, models.ProviderAnthropic))
}

func TestMaxChars_Budget(t *testing.T) {
	// 200 000 * 0.8 * 0.7 * 2.5
	assert.Equal(t, 280_000, MaxChars(200_000, models.ModeIntelligent, models.ProviderAnthropic))
}

func TestEstInputTokens(t *testing.T) {
	content := []byte(strings.Repeat("a", 1000))
	chunks := Split(content, models.LogKind("other"), models.ModeQuick, models.ProviderAnthropic, 200_000)
	require.Len(t, chunks, 1)
	assert.Equal(t, 400, chunks[0].EstInputTokens)
}
