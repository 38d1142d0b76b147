package reply

import (
	"strings"

	"eli5-bot/internal/constant"
)

// Failure is the informational class of a failed generation.
type Failure string

const (
	FailureInvalidKey       Failure = "INVALID_KEY"
	FailurePermissionDenied Failure = "PERMISSION_DENIED"
	FailureQuotaExceeded    Failure = "QUOTA_EXCEEDED"
	FailureOther            Failure = "OTHER"
)

// Classify inspects the error text; providers and the proxy report these
// conditions only in free-form messages.
func Classify(err error) Failure {
	if err == nil {
		return ""
	}
	text := err.Error()
	switch {
	case strings.Contains(text, "API_KEY_INVALID"),
		strings.Contains(text, "API key not valid"),
		strings.Contains(text, "INVALID_ARGUMENT"):
		return FailureInvalidKey
	case strings.Contains(text, "403"),
		strings.Contains(text, "permission denied"):
		return FailurePermissionDenied
	case strings.Contains(text, "quota"),
		strings.Contains(text, "429"):
		return FailureQuotaExceeded
	default:
		return FailureOther
	}
}

// DiagnosticText is the substitute model message shown for err.
func DiagnosticText(err error) string {
	switch Classify(err) {
	case FailureInvalidKey:
		return constant.ReplyErrorInvalidKey
	case FailurePermissionDenied:
		return constant.ReplyErrorPermission
	case FailureQuotaExceeded:
		return constant.ReplyErrorQuota
	default:
		return constant.ReplyErrorDefault
	}
}
