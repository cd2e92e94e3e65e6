package common

// AccessTokenHeaderName is the HTTP header carrying the access token on
// mutating requests.
const AccessTokenHeaderName = "Authorization"

// BearerPrefix is the optional scheme prefix in AccessTokenHeaderName.
const BearerPrefix = "Bearer "

// RequestIDHeaderName carries the per-request correlation id.
const RequestIDHeaderName = "X-Request-ID"
