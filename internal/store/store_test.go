package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Page
		want Page
		skip int
	}{
		{"zero value", Page{}, Page{Page: 0, PageSize: DefaultPageSize}, 0},
		{"negative page", Page{Page: -3, PageSize: 10}, Page{Page: 0, PageSize: 10}, 0},
		{"oversized", Page{Page: 2, PageSize: 1000}, Page{Page: 2, PageSize: MaxPageSize}, 200},
		{"regular", Page{Page: 3, PageSize: 15}, Page{Page: 3, PageSize: 15}, 45},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Normalize()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.skip, got.Skip())
		})
	}
}
