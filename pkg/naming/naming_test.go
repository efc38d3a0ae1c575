package naming

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentName(t *testing.T) {
	testCases := []struct {
		stem     string
		expected string
	}{
		{"arrow-trending-up", "ArrowTrendingUpIcon"},
		{"bell", "BellIcon"},
		{"square-3-stack-3d", "Square3Stack3DIcon"},
		{"squares-2x2", "Squares2X2Icon"},
		{"cube-3d-view", "Cube3DViewIcon"},
		{"h1", "H1Icon"},
		{"arrow--up", "ArrowUpIcon"},
		{"", "Icon"},
	}

	for _, tc := range testCases {
		t.Run(tc.stem, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComponentName(tc.stem))
		})
	}
}

// Tokens outside the irregular table only get their first letter raised.
func TestComponentName_MatchesNaiveTransform(t *testing.T) {
	stems := []string{
		"cursor-arrow-rays",
		"chat-bubble-left-right",
		"x-mark",
		"document-2d",
		"bars-3-bottom-left",
	}

	for _, stem := range stems {
		var naive strings.Builder
		for _, token := range strings.Split(stem, "-") {
			naive.WriteString(strings.ToUpper(token[:1]) + token[1:])
		}
		naive.WriteString("Icon")
		assert.Equal(t, naive.String(), ComponentName(stem), stem)
	}
}

func TestStem(t *testing.T) {
	assert.Equal(t, "arrow-trending-up", Stem("/icons/react/arrow-trending-up.tsx"))
	assert.Equal(t, "bell", Stem("bell.jsx"))
	assert.Equal(t, "types.d", Stem("types.d.ts"))
}
