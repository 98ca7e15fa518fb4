package listing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/apperr"
)

func TestBuildQuery(t *testing.T) {
	q, err := BuildQuery(ModeSaved, "  golang ", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, Query{Mode: ModeSaved, Filter: JobFilter{Search: "golang"}, Page: 3, Limit: DefaultLimit, Offset: 18}, q)

	tests := []struct {
		name        string
		mode        Mode
		page, limit int
	}{
		{"unknown mode", "popular", 1, 9},
		{"zero page", ModeRecommended, 0, 9},
		{"negative limit", ModeRecommended, 1, -1},
		{"limit too large", ModeRecommended, 1, MaxLimit + 1},
		{"offset overflow", ModeRecommended, 1 << 40, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildQuery(tt.mode, "", tt.page, tt.limit)
			assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err))
		})
	}
}

func TestBuildQueryTrimsSearch(t *testing.T) {
	tests := []struct{ in, want string }{
		{" dev", "dev"},
		{"dev\t", "dev"},
		{"   ", ""},
		{"full stack", "full stack"},
	}
	for _, tt := range tests {
		q, err := BuildQuery(ModeRecommended, tt.in, 1, 0)
		require.NoError(t, err)
		assert.Equal(t, tt.want, q.Filter.Search, "%q", tt.in)
	}
}

func TestBuildQueryIsPure(t *testing.T) {
	a, _ := BuildQuery(ModeApplied, "x", 2, 5)
	b, _ := BuildQuery(ModeApplied, "x", 2, 5)
	assert.Equal(t, a, b)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("applied")
	require.NoError(t, err)
	assert.Equal(t, ModeApplied, m)
	_, err = ParseMode("Applied")
	assert.EqualError(t, err, "Invalid type")
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 9))
	assert.Equal(t, 1, TotalPages(9, 9))
	assert.Equal(t, 2, TotalPages(10, 9))
	assert.Equal(t, 0, TotalPages(5, 0))
}
