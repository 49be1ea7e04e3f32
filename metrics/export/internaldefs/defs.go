package internaldefs

import (
	authgate "github.com/devlucky14/authgate"
)

// CounterDef binds a core counter ID to its exported name and help text.
type CounterDef struct {
	ID   authgate.MetricID
	Name string
	Help string
}

// HistogramDef binds a core histogram ID to its exported name and help text.
type HistogramDef struct {
	ID   authgate.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter in a stable order.
var CounterDefs = []CounterDef{
	{ID: authgate.MetricAuthSuccess, Name: "authgate_auth_success_total", Help: "Requests that resolved a principal."},
	{ID: authgate.MetricAuthRejected, Name: "authgate_auth_rejected_total", Help: "Requests rejected as unauthenticated."},
	{ID: authgate.MetricAuthSkipped, Name: "authgate_auth_skipped_total", Help: "Requests matching a path exclusion rule."},
	{ID: authgate.MetricAuthBackendFailure, Name: "authgate_auth_backend_failure_total", Help: "Requests failed by backend faults."},
	{ID: authgate.MetricBasicMalformedHeader, Name: "authgate_basic_malformed_header_total", Help: "Basic rejections at the header stage."},
	{ID: authgate.MetricBasicDecodeFailed, Name: "authgate_basic_decode_failed_total", Help: "Basic rejections at the decode stage."},
	{ID: authgate.MetricBasicMalformedCredentials, Name: "authgate_basic_malformed_credentials_total", Help: "Basic rejections at the credential-split stage."},
	{ID: authgate.MetricBasicUnknownUser, Name: "authgate_basic_unknown_user_total", Help: "Basic rejections at the user lookup stage."},
	{ID: authgate.MetricBasicBadPassword, Name: "authgate_basic_bad_password_total", Help: "Basic rejections at the password verify stage."},
	{ID: authgate.MetricSessionCreated, Name: "authgate_session_created_total", Help: "Created sessions."},
	{ID: authgate.MetricSessionDestroyed, Name: "authgate_session_destroyed_total", Help: "Destroyed sessions."},
	{ID: authgate.MetricSessionMiss, Name: "authgate_session_miss_total", Help: "Session lookups that resolved nothing."},
	{ID: authgate.MetricTokenInvalid, Name: "authgate_token_invalid_total", Help: "Bearer tokens that failed verification."},
}

// HistogramDefs lists every exported histogram in a stable order.
var HistogramDefs = []HistogramDef{
	{ID: authgate.MetricIdentifyLatency, Name: "authgate_identify_latency_seconds", Help: "Strategy identify latency histogram."},
}

// HistogramBounds are the upper bounds of the core latency buckets, in
// seconds, rendered the way Prometheus expects them.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix mirrors HistogramBounds with characters legal in OTel
// instrument names.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets pads or truncates a raw snapshot slice to the fixed bucket
// count.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// Prometheus histograms use.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
