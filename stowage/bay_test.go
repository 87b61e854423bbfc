package stowage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBayGroup(t *testing.T) {
	tests := []struct {
		name string
		bay  int
		want []int
	}{
		{name: "odd bay groups with even neighbour", bay: 41, want: []int{41, 42}},
		{name: "even bay groups with both odd neighbours", bay: 42, want: []int{41, 42, 43}},
		{name: "bay 1", bay: 1, want: []int{1, 2}},
		{name: "bay 2", bay: 2, want: []int{1, 2, 3}},
		{name: "zero is invalid", bay: 0, want: nil},
		{name: "negative is invalid", bay: -3, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BayGroup(tt.bay))
		})
	}
}

func TestDisplayBay(t *testing.T) {
	tests := []struct {
		bay    int
		want   int
		wantOK bool
	}{
		{bay: 41, want: 41, wantOK: true},
		{bay: 42, want: 41, wantOK: true},
		{bay: 1, want: 1, wantOK: true},
		{bay: 2, want: 1, wantOK: true},
		{bay: 0, wantOK: false},
		{bay: -1, wantOK: false},
	}

	for _, tt := range tests {
		got, ok := DisplayBay(tt.bay)
		assert.Equal(t, tt.wantOK, ok, "bay %d", tt.bay)
		if tt.wantOK {
			assert.Equal(t, tt.want, got, "bay %d", tt.bay)
		}
	}
}

// The two normalizer functions must stay mutually consistent: for every
// valid bay, the display bay is odd, belongs to its own group, and the
// group of the display bay covers the original physical bay.
func TestBayNormalizerConsistency(t *testing.T) {
	for bay := 1; bay <= 400; bay++ {
		display, ok := DisplayBay(bay)
		assert.True(t, ok)
		assert.Equal(t, 1, display%2, "display bay for %d must be odd", bay)

		group := BayGroup(display)
		assert.Contains(t, group, display, "display bay %d must be in its own group", display)
		assert.Contains(t, group, bay, "group of display bay %d must cover physical bay %d", display, bay)
	}
}

func TestAreaForTier(t *testing.T) {
	assert.Equal(t, AreaHold, AreaForTier(2))
	assert.Equal(t, AreaHold, AreaForTier(79))
	assert.Equal(t, AreaDeck, AreaForTier(80))
	assert.Equal(t, AreaDeck, AreaForTier(86))
}

func TestValidArea(t *testing.T) {
	assert.True(t, ValidArea("DECK"))
	assert.True(t, ValidArea("HOLD"))
	assert.False(t, ValidArea("deck"))
	assert.False(t, ValidArea(""))
	assert.False(t, ValidArea("REEFER"))
}
