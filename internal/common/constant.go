package common

// AuthorizationHeaderName is the HTTP header used to carry the bearer token
// on outbound requests.
const AuthorizationHeaderName = "Authorization"

// RequestIDHeaderName carries a per-request correlation id.
const RequestIDHeaderName = "X-Request-Id"

// Durable storage keys for the persisted session snapshot. All three are
// removed together on logout.
const (
	StorageKeyToken     = "token"
	StorageKeyUser      = "user"
	StorageKeyLastOrder = "last_order"
)
