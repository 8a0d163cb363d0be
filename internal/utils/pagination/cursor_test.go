package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestBumpAndReset(t *testing.T) {
	c := New(FlagFeed)

	c = c.Bump()
	assert.Equal(t, 1, c.Page)
	c = c.Bump()
	assert.Equal(t, 2, c.Page)

	// reset without "more" returns to page 0
	assert.Equal(t, 0, c.Reset().Page)

	// reset with "more" keeps the counter and clears the flag
	c.More = true
	c = c.Reset()
	assert.Equal(t, 2, c.Page)
	assert.False(t, c.More)
}

func TestBackNeverNegative(t *testing.T) {
	c := New(FlagFeed).Back()
	assert.Equal(t, 0, c.Page)

	c = New(FlagFeed).Bump().Bump().Back()
	assert.Equal(t, 1, c.Page)
}

func TestApplySignals(t *testing.T) {
	c := New(FlagSearch)

	c = c.Apply(SignalMore)
	assert.Equal(t, 1, c.Page)
	c = c.Apply(SignalMore)
	assert.Equal(t, 2, c.Page)
	c = c.Apply(SignalBack)
	assert.Equal(t, 1, c.Page)
	assert.False(t, c.More)

	// a fresh request starts over
	c = c.Apply(SignalNone)
	assert.Equal(t, 0, c.Page)
}

// 12 items, page size 5: pages are 1–5, 6–10, 11–12 of the reversed input.
func TestPaginate_TwelveItems(t *testing.T) {
	items := seq(12) // oldest first: 1..12, so newest is 12
	c := New(FlagFeed)

	assert.Equal(t, []int{12, 11, 10, 9, 8}, Paginate(items, c))
	c = c.Bump()
	assert.Equal(t, []int{7, 6, 5, 4, 3}, Paginate(items, c))
	c = c.Bump()
	assert.Equal(t, []int{2, 1}, Paginate(items, c))
	c = c.Bump()
	assert.Empty(t, Paginate(items, c))
	c = c.Bump()
	assert.Empty(t, Paginate(items, c))

	// input untouched
	assert.Equal(t, seq(12), items)
}

// Repeated bump+paginate partitions the reversed input without overlap.
func TestPaginate_Partition(t *testing.T) {
	for _, n := range []int{0, 1, 4, 5, 6, 23} {
		items := seq(n)
		var seen []int
		c := New(FlagSearch)
		for i := 0; i < n/PageSize+3; i++ {
			page := Paginate(items, c)
			assert.LessOrEqual(t, len(page), PageSize)
			seen = append(seen, page...)
			c = c.Bump()
		}

		want := make([]int, 0, n)
		for i := n; i >= 1; i-- {
			want = append(want, i)
		}
		assert.Equal(t, want, append([]int{}, seen...), "n=%d", n)
	}
}

func TestWindowKeepsOrder(t *testing.T) {
	items := seq(7)
	c := New(FlagFeed)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, Window(items, c))
	assert.True(t, c.HasNext(len(items)))

	c = c.Bump()
	assert.Equal(t, []int{6, 7}, Window(items, c))
	assert.False(t, c.HasNext(len(items)))
}

func TestEncodeDecode(t *testing.T) {
	token, err := Encode(Cursor{Flag: FlagFeed, Page: 3})
	require.NoError(t, err)

	c, err := Decode(FlagFeed, token)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Page)

	// empty token is the first page
	c, err = Decode(FlagFeed, "")
	require.NoError(t, err)
	assert.Equal(t, New(FlagFeed), c)

	// a token minted for another list is rejected
	_, err = Decode(FlagSearch, token)
	assert.Error(t, err)

	_, err = Decode(FlagFeed, "not-base64!!")
	assert.Error(t, err)
}
