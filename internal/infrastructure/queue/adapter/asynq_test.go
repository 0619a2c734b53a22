package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQueueWeights(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]int
	}{
		{
			name: "weighted list",
			in:   "critical=6,default=3,low=1",
			want: map[string]int{"critical": 6, "default": 3, "low": 1},
		},
		{
			name: "missing weight defaults to one",
			in:   "default,notifications=2",
			want: map[string]int{"default": 1, "notifications": 2},
		},
		{
			name: "whitespace and empty parts tolerated",
			in:   " default = 3 ,, low=1 ",
			want: map[string]int{"default": 3, "low": 1},
		},
		{
			name: "invalid weight falls back to one",
			in:   "default=abc,low=-4",
			want: map[string]int{"default": 1, "low": 1},
		},
		{
			name: "empty input",
			in:   "",
			want: map[string]int{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseQueueWeights(tt.in))
		})
	}
}
