package util

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeProviderFormatMillis(t *testing.T) {
	tp := &TimeProvider{}
	require.NoError(t, tp.SetTimezone("UTC"))

	got := tp.FormatMillis(1700000000000, EventTimeLayout)
	assert.Equal(t, "2023-11-14 22:13:20.000000", got)
}

func TestTimeProviderSubsecondPrecision(t *testing.T) {
	tp := &TimeProvider{}
	require.NoError(t, tp.SetTimezone("UTC"))

	got := tp.FormatMillis(1700000000123, EventTimeLayout)
	assert.Equal(t, "2023-11-14 22:13:20.123000", got)
}

func TestTimeProviderInvalidTimezone(t *testing.T) {
	tp := &TimeProvider{}
	err := tp.SetTimezone("Not/AZone")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timezone")
}

func TestTimeProviderLocalAliases(t *testing.T) {
	tp := &TimeProvider{}
	assert.NoError(t, tp.SetTimezone(""))
	assert.NoError(t, tp.SetTimezone("Local"))
}

func TestGetTimeProviderConcurrentFirstUse(t *testing.T) {
	// Group workers may format timestamps before the command has configured a
	// timezone; every caller must observe the same initialized provider.
	providers := make([]*TimeProvider, 8)
	var wg sync.WaitGroup
	for i := range providers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			providers[i] = GetTimeProvider()
		}(i)
	}
	wg.Wait()

	require.NotNil(t, providers[0])
	for _, p := range providers[1:] {
		assert.Same(t, providers[0], p)
	}
}
