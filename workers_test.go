package dazzlodocs

import (
	"runtime"
	"testing"
)

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{
			name:    "explicit takes priority",
			workers: 4,
			want:    4,
		},
		{
			name:    "explicit=1 for sequential",
			workers: 1,
			want:    1,
		},
		{
			name:    "explicit above cap is kept",
			workers: 12,
			want:    12,
		},
		{
			name:    "zero uses auto calculation",
			workers: 0,
			want:    clampWorkers(gomaxprocs / cpuDivisor),
		},
		{
			name:    "negative uses auto calculation",
			workers: -1,
			want:    clampWorkers(gomaxprocs / cpuDivisor),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolveWorkers(tt.workers); got != tt.want {
				t.Errorf("ResolveWorkers(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}

func clampWorkers(n int) int {
	return max(MinWorkers, min(n, MaxWorkers))
}
