package idx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/hireproof/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewAndParse(t *testing.T) {
	id := idx.New()
	require.NotEqual(t, idx.Zero, id)

	parsed, err := idx.Parse(" " + id.String() + " ")
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	lower, err := idx.Parse(strings.ToLower(id.String()))
	require.NoError(t, err)
	require.Equal(t, id, lower)
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "not-a-ulid", "missing", "01HQ7T3Z1MZ0JQ3M6MZQ1FQ3Z", "../../etc/passwd"} {
		_, err := idx.Parse(in)
		require.ErrorIs(t, err, idx.ErrInvalid, "input %q", in)
	}
}

func TestMonotonicWithinMillisecond(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()

	prev := idx.NewAt(at)
	for range 100 {
		next := idx.NewAt(at)
		require.Less(t, prev.String(), next.String())
		prev = next
	}
}

func TestNewAtSortsByTime(t *testing.T) {
	at := time.Unix(1700000000, 0).UTC()
	require.Less(t, idx.NewAt(at).String(), idx.NewAt(at.Add(time.Second)).String())
}
