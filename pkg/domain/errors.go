package domain

import "fmt"

// ConfigurationError reports a site config with a missing or malformed mandatory field.
// Empty Reason means the field is missing.
type ConfigurationError struct {
	Site   string
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is required"
	}
	if e.Site == "" {
		return fmt.Sprintf("site config: %s %s", e.Field, reason)
	}
	return fmt.Sprintf("site config %s: %s %s", e.Site, e.Field, reason)
}

// FetchError reports a failure to fetch a site's document.
// StatusCode is zero for transport-level failures.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// StoreUnavailableError reports that the article store can't be reached
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }
