package constants

import "time"

// RFC 3339 date-time format string.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

const (
	// DefaultOutboundTimeout bounds every call to an SMS, chat or grocery provider.
	DefaultOutboundTimeout = 10 * time.Second
	// DefaultRequestTimeout bounds a whole request, including outbound calls.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultMaxRequestBodyBytes caps inbound JSON bodies.
	DefaultMaxRequestBodyBytes int64 = 1 << 20
)

const (
	DefaultChatModel       = "gpt-4"
	DefaultInstacartAPIURL = "https://api.instacart.com/v2"
)
