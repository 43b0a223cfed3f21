package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

// keyPrefixLen bounds how much raw content feeds the key digest directly;
// the full-content digest still folds in so two files with a shared prefix
// never collide.
const keyPrefixLen = 1000

// Key derives the content-addressed cache key for an analysis result.
// The same (content, mode, model) always maps to the same key, and the
// key is stable across process restarts.
func Key(content []byte, mode models.AnalysisMode, model string) string {
	full := sha256.Sum256(content)

	h := sha256.New()
	if len(content) > keyPrefixLen {
		h.Write(content[:keyPrefixLen])
	} else {
		h.Write(content)
	}
	h.Write(full[:])
	h.Write([]byte(mode))
	h.Write([]byte(model))

	// 128 bits is plenty for a single deployment's result space.
	return hex.EncodeToString(h.Sum(nil)[:16])
}
