package api

import (
	"github.com/qqringman/anr-tombstone-ai-analyzer-sub000/pkg/models"
)

// analyzeRequest is the JSON body shared by the submit and stream endpoints.
type analyzeRequest struct {
	Content  string `json:"content" binding:"required"`
	Kind     string `json:"kind" binding:"required"`
	Mode     string `json:"mode"`
	Provider string `json:"provider"`
	UseCache *bool  `json:"use_cache"`
	Priority int    `json:"priority"`
	ClientID string `json:"client_id"`
}

// toModel applies server defaults for omitted fields.
func (r analyzeRequest) toModel(defaultMode string) models.AnalysisRequest {
	mode := r.Mode
	if mode == "" {
		mode = defaultMode
	}
	useCache := true
	if r.UseCache != nil {
		useCache = *r.UseCache
	}
	clientID := r.ClientID
	if clientID == "" {
		clientID = "anonymous"
	}
	return models.AnalysisRequest{
		Content:      []byte(r.Content),
		Kind:         models.LogKind(r.Kind),
		Mode:         models.AnalysisMode(mode),
		ProviderHint: r.Provider,
		UseCache:     useCache,
		Priority:     r.Priority,
		ClientID:     clientID,
	}
}
