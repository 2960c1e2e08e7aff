// Package clients holds the outbound gateway clients.
package clients

import "fmt"

// ProviderError is a non-2xx answer from a notification gateway. Raw keeps the
// response body as received so it can be stored in the delivery log.
type ProviderError struct {
	Provider   string
	StatusCode int
	Code       int
	Message    string
	Raw        string
}

func (e *ProviderError) Error() string {
	if e.Code != 0 && e.Code != e.StatusCode {
		return fmt.Sprintf("%s api error: status=%d, code=%d, message=%s", e.Provider, e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%s api error: status=%d, message=%s", e.Provider, e.StatusCode, e.Message)
}
