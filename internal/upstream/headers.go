package upstream

import "strings"

const (
	ClientName    = "nchc-wrapper"
	ClientVersion = "1.0.0"
	apiKeyHeader  = "x-api-key"
)

type HeaderBuilder struct {
	userAgent string
}

func NewHeaderBuilder() *HeaderBuilder {
	return &HeaderBuilder{userAgent: ClientName + "/" + ClientVersion}
}

// Build returns the headers for one chat completions call. The key is sent
// verbatim in x-api-key; no bearer scheme is involved.
func (b *HeaderBuilder) Build(apiKey string) map[string]string {
	headers := map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
		"User-Agent":   b.userAgent,
	}

	apiKey = strings.TrimSpace(apiKey)
	if apiKey != "" {
		headers[apiKeyHeader] = apiKey
	}
	return headers
}

// MaskToken keeps the first and last four characters of a secret for logs.
func MaskToken(token string) string {
	token = strings.TrimSpace(token)
	if token == "" {
		return ""
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + "..." + token[len(token)-4:]
}
