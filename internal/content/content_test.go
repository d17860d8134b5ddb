package content

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/geo-locator/internal/model"
)

func newTestAssigner(t *testing.T, lists Lists) *Assigner {
	t.Helper()
	a, err := NewAssigner(lists, DefaultPalette, "")
	require.NoError(t, err)
	return a
}

func TestAssign_KeywordRotation(t *testing.T) {
	t.Parallel()

	a := newTestAssigner(t, Lists{
		Keywords:      []string{"A", "B"},
		BusinessNames: []string{"X"},
		Descriptions:  []string{"D"},
	})

	want := []string{"A", "B", "A", "B", "A"}
	for i, w := range want {
		v := a.Assign(i, 1)
		assert.Equal(t, w, v.Keyword, "index %d", i)
		assert.Equal(t, "X", v.BusinessName)
		assert.Equal(t, "D", v.Description)
	}
}

func TestAssign_IndependentListLengths(t *testing.T) {
	t.Parallel()

	a := newTestAssigner(t, Lists{
		Keywords:      []string{"k0", "k1", "k2"},
		BusinessNames: []string{"b0", "b1"},
		Descriptions:  []string{"d0", "d1", "d2", "d3"},
	})

	v := a.Assign(7, 2)
	assert.Equal(t, "k1", v.Keyword)
	assert.Equal(t, "b1", v.BusinessName)
	assert.Equal(t, "d3", v.Description)
}

func TestAssign_Color(t *testing.T) {
	t.Parallel()

	a := newTestAssigner(t, Lists{
		Keywords:      []string{"k"},
		BusinessNames: []string{"b"},
		Descriptions:  []string{"d"},
	})

	tests := []struct {
		ring int
		want string
	}{
		{0, "black"},
		{1, "red"},
		{2, "blue"},
		{5, "purple"},
		{10, "yellow"},
		{11, "red"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, a.Assign(0, tt.ring).Color, "ring %d", tt.ring)
	}
}

func TestAssign_CustomCenterColor(t *testing.T) {
	t.Parallel()

	a, err := NewAssigner(Lists{
		Keywords:      []string{"k"},
		BusinessNames: []string{"b"},
		Descriptions:  []string{"d"},
	}, []string{"teal"}, " white ")
	require.NoError(t, err)

	assert.Equal(t, "white", a.Assign(0, 0).Color)
	assert.Equal(t, "teal", a.Assign(1, 1).Color)
	assert.Equal(t, "teal", a.Assign(9, 4).Color)
}

func TestAssign_Deterministic(t *testing.T) {
	t.Parallel()

	a := newTestAssigner(t, Lists{
		Keywords:      []string{"a", "b", "c"},
		BusinessNames: []string{"x", "y"},
		Descriptions:  []string{"d"},
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assert.Equal(t, a.Assign(i, i%6), a.Assign(i, i%6))
		}(i)
	}
	wg.Wait()
}

func TestNewAssigner_Validation(t *testing.T) {
	t.Parallel()

	full := Lists{
		Keywords:      []string{"k"},
		BusinessNames: []string{"b"},
		Descriptions:  []string{"d"},
	}

	tests := []struct {
		name    string
		lists   Lists
		palette []string
		field   string
	}{
		{"no keywords", Lists{BusinessNames: full.BusinessNames, Descriptions: full.Descriptions}, DefaultPalette, "content.keywords"},
		{"blank keywords", Lists{Keywords: []string{" ", ""}, BusinessNames: full.BusinessNames, Descriptions: full.Descriptions}, DefaultPalette, "content.keywords"},
		{"no descriptions", Lists{Keywords: full.Keywords, BusinessNames: full.BusinessNames}, DefaultPalette, "content.descriptions"},
		{"no business names", Lists{Keywords: full.Keywords, Descriptions: full.Descriptions}, DefaultPalette, "content.business_names"},
		{"no palette", full, nil, "content.palette"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a, err := NewAssigner(tt.lists, tt.palette, "")
			require.Error(t, err)
			assert.Nil(t, a)

			var cfgErr *model.ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestAssigner_ListsIsCopy(t *testing.T) {
	t.Parallel()

	a := newTestAssigner(t, Lists{
		Keywords:      []string{" a ", "b"},
		BusinessNames: []string{"x"},
		Descriptions:  []string{"d"},
	})

	l := a.Lists()
	assert.Equal(t, []string{"a", "b"}, l.Keywords)
	l.Keywords[0] = "changed"
	assert.Equal(t, "a", a.Assign(0, 0).Keyword)
}

func TestParseList(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" Air Conditioning Repair ,  HVAC ", []string{"Air Conditioning Repair", "HVAC"}},
		{"a,,b, ,", []string{"a", "b"}},
		{"", []string{}},
		{"  ", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseList(tt.in), "input %q", tt.in)
	}
}

func TestNormalize_ComposesUnicode(t *testing.T) {
	t.Parallel()

	decomposed := "Cafe\u0301 Cooling"
	l := Lists{Keywords: []string{decomposed}}.Normalize()
	assert.Equal(t, []string{"Caf\u00e9 Cooling"}, l.Keywords)
}
