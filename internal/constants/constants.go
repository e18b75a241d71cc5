package constants

// ContextKeyIdentity is the gin context key holding the caller identity
// parsed from the request query parameters.
const ContextKeyIdentity = "identity"

// DateLayout is the wire format for calendar dates (completion dates,
// client dates on daily checks).
const DateLayout = "2006-01-02"
