package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubunits(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   int64
	}{
		{name: "whole amount", amount: 500, want: 50000},
		{name: "two decimals keep every paisa", amount: 499.99, want: 49999},
		{name: "binary float representation rounds up", amount: 0.29, want: 29},
		{name: "zero", amount: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Subunits(tt.amount))
		})
	}
}
