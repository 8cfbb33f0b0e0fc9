// Package health tracks provider reachability as reported by probes.
package health

import (
	stderrors "errors"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/Quinlan2018/SDMX/errors"
)

// Status levels.
const (
	StatusHealthy   = "healthy"
	StatusDegraded  = "degraded"
	StatusUnhealthy = "unhealthy"
)

// DefaultSlowThreshold marks a successful probe slower than this as degraded.
const DefaultSlowThreshold = 5 * time.Second

// Pre-compiled regexes for error message sanitization
var (
	httpURLRegex     = regexp.MustCompile(`https?://[^\s]+`)
	unixPathRegex    = regexp.MustCompile(`/[a-zA-Z0-9/_.-]+`)
	windowsPathRegex = regexp.MustCompile(`[A-Z]:\\[^:\s]+`)
	ipAddrRegex      = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`)
	portRegex        = regexp.MustCompile(`:\d{2,5}\b`)
	credentialRegex  = regexp.MustCompile(`(?i)(password|token|key|secret|credential)[^a-zA-Z]*[:=][^,\s}]+`)
)

// Status represents the health state of a provider or of the probe run
type Status struct {
	Provider    string       `json:"provider"`
	Healthy     bool         `json:"healthy"` // true if status is "healthy"
	Status      string       `json:"status"`  // "healthy", "unhealthy", "degraded"
	Message     string       `json:"message"`
	Timestamp   time.Time    `json:"timestamp"`
	SubStatuses []Status     `json:"sub_statuses,omitempty"`
	Probe       *ProbeResult `json:"probe,omitempty"`
}

// ProbeResult describes one request against a provider endpoint.
type ProbeResult struct {
	Endpoint string        `json:"endpoint"`
	Latency  time.Duration `json:"latency"`
	Bytes    int           `json:"bytes"`
}

// New creates a status at level for provider, stamped now.
func New(provider, level, message string) Status {
	return Status{
		Provider:  provider,
		Healthy:   level == StatusHealthy,
		Status:    level,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// severity ranks the levels; unknown levels rank as healthy.
var severity = map[string]int{
	StatusHealthy:   0,
	StatusDegraded:  1,
	StatusUnhealthy: 2,
}

var rollupMessages = map[string]string{
	StatusHealthy:   "All providers are reachable",
	StatusDegraded:  "One or more providers are degraded",
	StatusUnhealthy: "One or more providers are unreachable",
}

// Aggregate rolls subStatuses up into a status at the worst level among
// them. An empty set is healthy.
func Aggregate(name string, subStatuses []Status) Status {
	if len(subStatuses) == 0 {
		return New(name, StatusHealthy, "No providers probed")
	}

	worst := StatusHealthy
	for _, sub := range subStatuses {
		if severity[sub.Status] > severity[worst] {
			worst = sub.Status
		}
	}

	status := New(name, worst, rollupMessages[worst])
	status.SubStatuses = slices.Clone(subStatuses)
	return status
}

// IsHealthy returns true if the status is healthy
func (s Status) IsHealthy() bool {
	return s.Status == StatusHealthy
}

// IsDegraded returns true if the status is degraded
func (s Status) IsDegraded() bool {
	return s.Status == StatusDegraded
}

// IsUnhealthy returns true if the status is unhealthy
func (s Status) IsUnhealthy() bool {
	return s.Status == StatusUnhealthy
}

// WithSubStatus adds a sub-status and returns a copy
func (s Status) WithSubStatus(subStatus Status) Status {
	// Create a new slice to avoid sharing the underlying array
	newSubStatuses := make([]Status, len(s.SubStatuses), len(s.SubStatuses)+1)
	copy(newSubStatuses, s.SubStatuses)
	s.SubStatuses = append(newSubStatuses, subStatus)
	return s
}

// FromProbe converts the outcome of a probe into a status:
//   - success within slow is healthy, slower is degraded;
//   - a provider that answered but has nothing to list (errors.ErrNoResults)
//     or is throttling (errors.ErrRateLimited) is degraded;
//   - anything else is unhealthy.
//
// Error messages are sanitized. A zero slow uses DefaultSlowThreshold.
func FromProbe(provider string, result ProbeResult, err error, slow time.Duration) Status {
	if slow <= 0 {
		slow = DefaultSlowThreshold
	}

	var status Status
	switch {
	case err == nil && result.Latency > slow:
		status = New(provider, StatusDegraded, "Provider responded slowly")
	case err == nil:
		status = New(provider, StatusHealthy, "Provider responded")
	case stderrors.Is(err, errors.ErrNoResults), stderrors.Is(err, errors.ErrRateLimited):
		status = New(provider, StatusDegraded, sanitizeErrorMessage(err.Error()))
	default:
		status = New(provider, StatusUnhealthy, sanitizeErrorMessage(err.Error()))
	}

	probe := result
	status.Probe = &probe
	return status
}

// sanitizeErrorMessage removes potentially sensitive information from error messages.
//
// Sanitization patterns:
//   - URLs (http://, https://) → [URL]
//   - File paths (Unix: /path/to/file, Windows: C:\path\to\file) → [PATH]
//   - IP addresses (192.168.1.100) → [IP]
//   - Port numbers (:8080) → [PORT]
//   - Credentials (password=X, token=X, key=X, secret=X) → [REDACTED]
func sanitizeErrorMessage(err string) string {
	if err == "" {
		return ""
	}

	sanitized := err

	// Remove URLs first (before paths, as they contain paths)
	sanitized = httpURLRegex.ReplaceAllString(sanitized, "[URL]")

	sanitized = unixPathRegex.ReplaceAllString(sanitized, "[PATH]")
	sanitized = windowsPathRegex.ReplaceAllString(sanitized, "[PATH]")

	sanitized = ipAddrRegex.ReplaceAllString(sanitized, "[IP]")
	sanitized = portRegex.ReplaceAllString(sanitized, "[PORT]")

	// Check against lowercase but replace in original case
	lowerSanitized := strings.ToLower(sanitized)
	if strings.Contains(lowerSanitized, "password") || strings.Contains(lowerSanitized, "token") ||
		strings.Contains(lowerSanitized, "key") || strings.Contains(lowerSanitized, "secret") ||
		strings.Contains(lowerSanitized, "credential") {
		sanitized = credentialRegex.ReplaceAllString(sanitized, "[REDACTED]")
	}

	return sanitized
}
