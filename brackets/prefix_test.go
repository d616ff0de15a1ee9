package brackets

import (
	"strings"
	"testing"

	"github.com/Nosajool/vct-manager-sub005/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDPrefix(t *testing.T) {
	assert.Equal(t, "short", IDPrefix("short"))
	assert.Equal(t, "426614174000", IDPrefix("8426614174000"))
	assert.Equal(t, "426614174000", IDPrefix("123e4567-e89b-12d3-a456-426614174000"))
}

func TestApplyIDPrefixRewritesAllReferences(t *testing.T) {
	b := GenerateDoubleElimination([]string{"a", "b", "c", "d"}, nil)
	out := ApplyIDPrefix(b, "426614174000")

	forEachMatch(&out, func(m *models.BracketMatch) {
		assert.True(t, strings.HasPrefix(m.MatchID, "426614174000_"), m.MatchID)
		assert.True(t, strings.HasPrefix(m.RoundID, "426614174000_"), m.RoundID)
		for _, src := range []models.SlotSource{m.TeamASource, m.TeamBSource} {
			if src.MatchID != "" {
				assert.True(t, strings.HasPrefix(src.MatchID, "426614174000_"), src.MatchID)
			}
		}
		for _, dst := range []models.Destination{m.WinnerDestination, m.LoserDestination} {
			if dst.MatchID != "" {
				assert.True(t, strings.HasPrefix(dst.MatchID, "426614174000_"), dst.MatchID)
			}
		}
	})
	for _, r := range out.Upper {
		assert.True(t, strings.HasPrefix(r.RoundID, "426614174000_"))
	}

	// исходная структура не тронута
	assert.Equal(t, "ur1-m1", b.Upper[0].Matches[0].MatchID)
}

func TestApplyIDPrefixKeepsPropagationConsistent(t *testing.T) {
	b := GenerateSingleElimination([]string{"a", "b", "c", "d"}, nil)
	b = ApplyIDPrefix(b, "p1")

	b = CompleteMatch(b, "p1_r1-m1", "a", "b", ptr(resultFor("a", "b")))
	b = CompleteMatch(b, "p1_r1-m2", "c", "d", ptr(resultFor("c", "d")))

	final := findMatch(&b, "p1_r2-m1")
	require.NotNil(t, final)
	assert.Equal(t, "a", final.TeamAID)
	assert.Equal(t, "c", final.TeamBID)
	assert.Equal(t, models.MatchReady, final.Status)
}
