package relation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/jobboard/pkg/apperr"
)

func TestParseAppStatus(t *testing.T) {
	for _, s := range []string{"new", "shortlisted", "interview", "hired", "rejected"} {
		got, err := ParseAppStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, AppStatus(s), got)
	}
	for _, s := range []string{"", "NEW", "offer"} {
		_, err := ParseAppStatus(s)
		assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(err), s)
	}
}

func TestIsTransitionAllowed(t *testing.T) {
	tests := []struct {
		from, to AppStatus
		want     bool
	}{
		{StatusNew, StatusShortlisted, true},
		{StatusShortlisted, StatusInterview, true},
		{StatusInterview, StatusHired, true},
		{StatusNew, StatusRejected, true},
		{StatusShortlisted, StatusRejected, true},
		{StatusInterview, StatusRejected, true},
		{StatusNew, StatusInterview, false},
		{StatusNew, StatusHired, false},
		{StatusInterview, StatusShortlisted, false},
		{StatusNew, StatusNew, false},
		{StatusHired, StatusRejected, false},
		{StatusRejected, StatusNew, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransitionAllowed(tt.from, tt.to))
		})
	}
}
