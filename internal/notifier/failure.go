package notifier

import "math/rand"

// FailureCause enumerates the simulated transient failures of the
// confirmation channel.
type FailureCause string

const (
	FailureTimeout            FailureCause = "timeout"
	FailureRateLimit          FailureCause = "rate_limit"
	FailureServiceUnavailable FailureCause = "service_unavailable"
	FailureNetworkError       FailureCause = "network_error"
)

var failureCauses = []FailureCause{
	FailureTimeout,
	FailureRateLimit,
	FailureServiceUnavailable,
	FailureNetworkError,
}

// Message returns the human readable error text for the cause.
func (c FailureCause) Message() string {
	switch c {
	case FailureTimeout:
		return "Request timeout"
	case FailureRateLimit:
		return "Rate limit exceeded"
	case FailureServiceUnavailable:
		return "Email service temporarily unavailable"
	case FailureNetworkError:
		return "Network connection error"
	default:
		return string(c)
	}
}

func randomFailureCause() FailureCause {
	return failureCauses[rand.Intn(len(failureCauses))]
}
