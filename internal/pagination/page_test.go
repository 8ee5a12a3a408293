package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndRuleIsEnd(t *testing.T) {
	tcases := []struct {
		name     string
		rule     EndRule
		offset   int
		returned int
		total    int
		expected bool
	}{
		{name: "total: first page of many", rule: EndRuleTotal, offset: 0, returned: 20, total: 50, expected: false},
		{name: "total: last page", rule: EndRuleTotal, offset: 40, returned: 10, total: 50, expected: true},
		{name: "total: empty dialog", rule: EndRuleTotal, offset: 0, returned: 0, total: 0, expected: true},
		{name: "total: offset past end", rule: EndRuleTotal, offset: 60, returned: 0, total: 50, expected: true},
		{name: "first offset: first page", rule: EndRuleFirstOffset, offset: 0, returned: 20, total: 50, expected: true},
		{name: "first offset: later page", rule: EndRuleFirstOffset, offset: 40, returned: 10, total: 50, expected: false},
	}

	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.rule.IsEnd(tc.offset, tc.returned, tc.total))
		})
	}
}

func TestNewPage(t *testing.T) {
	page := NewPage[int](EndRuleTotal, nil, 20, 0, 0)
	assert.NotNil(t, page.Items)
	assert.True(t, page.IsEnd)

	page = NewPage(EndRuleTotal, []int{1, 2}, 2, 0, 5)
	assert.Equal(t, 5, page.TotalCount)
	assert.False(t, page.IsEnd)
}

func TestParseEndRule(t *testing.T) {
	rule, err := ParseEndRule("total")
	require.NoError(t, err)
	assert.Equal(t, EndRuleTotal, rule)

	_, err = ParseEndRule("bogus")
	require.Error(t, err)
}

func TestParseParams(t *testing.T) {
	limit, offset, err := ParseParams("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, limit)
	assert.Equal(t, 0, offset)

	limit, offset, err = ParseParams("500", "10")
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, limit)
	assert.Equal(t, 10, offset)

	for _, bad := range [][2]string{{"x", ""}, {"0", ""}, {"", "-1"}, {"", "y"}} {
		_, _, err = ParseParams(bad[0], bad[1])
		assert.ErrorIs(t, err, ErrInvalidParams)
	}
}
