// Package models defines the shared domain types for crash-log analysis:
// log kinds, analysis modes, provider identifiers, and the request/estimate
// structures exchanged between the API, queue, and dispatch layers.
package models

// LogKind identifies the kind of crash artifact submitted for analysis.
type LogKind string

const (
	// LogKindANR is an Android "Application Not Responding" thread dump.
	LogKindANR LogKind = "anr"
	// LogKindTombstone is an Android native-crash dump.
	LogKindTombstone LogKind = "tombstone"
)

// IsValid checks if the log kind is valid.
func (k LogKind) IsValid() bool {
	return k == LogKindANR || k == LogKindTombstone
}

// AnalysisMode selects thoroughness vs. cost for an analysis.
type AnalysisMode string

const (
	// ModeQuick favors speed: smallest prompt budget, top findings only.
	ModeQuick AnalysisMode = "quick"
	// ModeIntelligent is the balanced default.
	ModeIntelligent AnalysisMode = "intelligent"
	// ModeLargeFile tunes chunking for very large inputs.
	ModeLargeFile AnalysisMode = "large_file"
	// ModeMaxToken spends the full context window for maximum depth.
	ModeMaxToken AnalysisMode = "max_token"
)

// IsValid checks if the analysis mode is valid.
func (m AnalysisMode) IsValid() bool {
	switch m {
	case ModeQuick, ModeIntelligent, ModeLargeFile, ModeMaxToken:
		return true
	default:
		return false
	}
}

// OutputRatio is the estimated output/input token ratio for the mode.
func (m AnalysisMode) OutputRatio() float64 {
	switch m {
	case ModeQuick:
		return 0.2
	case ModeIntelligent:
		return 0.4
	case ModeLargeFile:
		return 0.5
	case ModeMaxToken:
		return 0.8
	default:
		return 0.4
	}
}

// ContextRatio is the fraction of a model's context window a single chunk
// may occupy in this mode.
func (m AnalysisMode) ContextRatio() float64 {
	switch m {
	case ModeQuick:
		return 0.9
	case ModeIntelligent:
		return 0.7
	case ModeLargeFile:
		return 0.6
	case ModeMaxToken:
		return 0.5
	default:
		return 0.7
	}
}

// ProviderType identifies an upstream streaming analysis backend.
type ProviderType string

const (
	// ProviderAnthropic is the Anthropic Messages API.
	ProviderAnthropic ProviderType = "anthropic"
	// ProviderOpenAI is the OpenAI Chat Completions API.
	ProviderOpenAI ProviderType = "openai"
	// ProviderLocal is a gRPC sidecar speaking the analyzer streaming protocol.
	ProviderLocal ProviderType = "local"
)

// IsValid checks if the provider type is valid.
func (t ProviderType) IsValid() bool {
	switch t {
	case ProviderAnthropic, ProviderOpenAI, ProviderLocal:
		return true
	default:
		return false
	}
}

// CharsPerToken is the provider-specific character/token estimation ratio
// for mixed Latin/CJK log text.
func (t ProviderType) CharsPerToken() float64 {
	switch t {
	case ProviderAnthropic:
		return 2.5
	case ProviderOpenAI:
		return 4.0
	default:
		return 4.0
	}
}
