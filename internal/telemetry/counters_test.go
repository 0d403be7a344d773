package telemetry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   string
	}{
		{"bare", nil, "bare"},
		{"m", []string{"strategy", "hdhp"}, "m|strategy=hdhp"},
		{"m", []string{"a", "1", "b", "2"}, "m|a=1|b=2"},
		{"m", []string{"a", "1", "dangling"}, "m|a=1"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Key(tt.name, tt.labels...))
	}
}

func TestRegistry_IncAndGet(t *testing.T) {
	r := NewRegistry()
	assert.Equal(t, int64(0), r.Get("missing"))

	r.Inc("runs", "strategy", "hdhp")
	r.Inc("runs", "strategy", "hdhp")
	r.Inc("runs", "strategy", "first_dollar_coverage")

	assert.Equal(t, int64(2), r.Get("runs", "strategy", "hdhp"))
	assert.Equal(t, int64(1), r.Get("runs", "strategy", "first_dollar_coverage"))
	assert.Equal(t, []string{"runs|strategy=first_dollar_coverage", "runs|strategy=hdhp"}, r.Keys())
}

func TestRegistry_ConcurrentInc(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Inc("runs")
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(5000), r.Get("runs"))
	assert.Equal(t, map[string]int64{"runs": 5000}, r.Snapshot())
}
