package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestElementCount(t *testing.T) {
	tests := []struct {
		name    string
		dims    []int
		want    int
		wantErr bool
	}{
		{
			name: "scalar",
			dims: nil,
			want: 1,
		},
		{
			name: "one dimension",
			dims: []int{128},
			want: 128,
		},
		{
			name: "three dimensions",
			dims: []int{16, 32, 8},
			want: 4096,
		},
		{
			name: "zero-length axis",
			dims: []int{0, 10},
			want: 0,
		},
		{
			name:    "negative dimension",
			dims:    []int{-4},
			wantErr: true,
		},
		{
			name:    "overflowing product",
			dims:    []int{1 << 20, 1 << 20, 1 << 20},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := ElementCount(tt.dims)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, n)
		})
	}
}
