package monitor

import (
	"testing"

	"github.com/rileyhilliard/beacon/internal/indicator"
	"github.com/stretchr/testify/assert"
)

func TestComputeLayout(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		n             int
		want          Layout
	}{
		{name: "unknown size", n: 3, want: Layout{Columns: 1, CardWidth: 40, CardHeight: 10}},
		{name: "one row fills width", width: 100, height: 40, n: 4, want: Layout{Columns: 4, CardWidth: 24, CardHeight: 16}},
		{name: "columns capped by widget count", width: 200, height: 30, n: 3, want: Layout{Columns: 3, CardWidth: 40, CardHeight: 16}},
		{name: "short terminal hits minimum height", width: 60, height: 24, n: 6, want: Layout{Columns: 2, CardWidth: 29, CardHeight: 6}},
		{name: "narrow terminal", width: 10, n: 2, want: Layout{Columns: 1, CardWidth: 9, CardHeight: 10}},
		{name: "tiny terminal keeps chrome", width: 4, height: 5, n: 1, want: Layout{Columns: 1, CardWidth: 6, CardHeight: 6}},
		{name: "no widgets", width: 80, height: 24, n: 0, want: Layout{Columns: 1, CardWidth: 40, CardHeight: 16}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeLayout(tt.width, tt.height, tt.n))
		})
	}
}

func TestLayout_Inner(t *testing.T) {
	l := Layout{Columns: 1, CardWidth: 40, CardHeight: 10}
	cols, rows := l.Inner()
	assert.Equal(t, 36, cols)
	assert.Equal(t, 7, rows)
	assert.Equal(t, indicator.Bounds{Width: 18, Height: 7}, l.Bounds())

	cols, rows = Layout{CardWidth: 2, CardHeight: 1}.Inner()
	assert.Zero(t, cols)
	assert.Zero(t, rows)
}
