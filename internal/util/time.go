package util

import (
	"fmt"
	"sync"
	"time"
)

// EventTimeLayout is how event timestamps are rendered on the console.
const EventTimeLayout = "2006-01-02 15:04:05.000000"

// TimeProvider handles timezone-aware time formatting.
type TimeProvider struct {
	location *time.Location
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	timeProviderMu     sync.Mutex
)

// InitializeTimeProvider initializes the global time provider with the
// specified timezone ("Local", "UTC", or an IANA name).
func InitializeTimeProvider(timezone string) error {
	timeProviderMu.Lock()
	defer timeProviderMu.Unlock()

	provider := &TimeProvider{}
	if err := provider.SetTimezone(timezone); err != nil {
		return err
	}
	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the global time provider, defaulting to Local.
// Safe to call from concurrent group workers before any explicit
// InitializeTimeProvider.
func GetTimeProvider() *TimeProvider {
	timeProviderMu.Lock()
	defer timeProviderMu.Unlock()
	if globalTimeProvider == nil {
		provider := &TimeProvider{}
		// "Local" cannot fail to resolve.
		_ = provider.SetTimezone("Local")
		globalTimeProvider = provider
	}
	return globalTimeProvider
}

// SetTimezone updates the timezone for the time provider.
func (tp *TimeProvider) SetTimezone(timezone string) error {
	tp.mu.Lock()
	defer tp.mu.Unlock()

	loc := time.Local
	if timezone != "" && timezone != "Local" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Europe/London", timezone, err)
		}
		loc = l
	}
	tp.location = loc
	return nil
}

// FormatMillis formats a millisecond epoch timestamp in the configured timezone.
func (tp *TimeProvider) FormatMillis(ms int64, layout string) string {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return time.UnixMilli(ms).In(tp.location).Format(layout)
}

// Now returns the current time in the configured timezone.
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return time.Now().In(tp.location)
}
