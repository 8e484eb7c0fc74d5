package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-planner/internal/errors"
)

func TestSplitItemCount(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		wantName  string
		wantCount int64
	}{
		{name: "count and name", token: "2 plank", wantName: "plank", wantCount: 2},
		{name: "no count defaults to one", token: "log", wantName: "log", wantCount: 1},
		{name: "multi word name with count", token: "3 iron  gear wheel", wantName: "iron gear wheel", wantCount: 3},
		{name: "multi word name without count keeps token", token: "iron  gear wheel", wantName: "iron  gear wheel", wantCount: 1},
		{name: "numeral later in name is not a count", token: "gear 2", wantName: "gear 2", wantCount: 1},
		{name: "signed count", token: "+4 torch", wantName: "torch", wantCount: 4},
		{name: "negative count", token: "-2 stick", wantName: "stick", wantCount: -2},
		{name: "bare count", token: "5", wantName: "", wantCount: 5},
		{name: "surrounding space", token: "  7 coal ", wantName: "coal", wantCount: 7},
		{name: "empty", token: "", wantName: "", wantCount: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, count := SplitItemCount(tt.token)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestParseRecipeLine(t *testing.T) {
	r, err := ParseRecipeLine("4 stick = 2 plank, iron nugget")
	require.NoError(t, err)

	assert.Equal(t, "stick", r.Product)
	assert.Equal(t, int64(4), r.Yield)
	assert.Equal(t, []ItemCount{
		{Name: "plank", Count: 2},
		{Name: "iron nugget", Count: 1},
	}, r.Ingredients)
}

func TestParseRecipeLineKeepsNonPositiveYield(t *testing.T) {
	r, err := ParseRecipeLine("0 stick = 2 plank")
	require.NoError(t, err)
	assert.Equal(t, int64(0), r.Yield)
}

func TestParseRecipeLineErrors(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{name: "no equals", line: "stick 2 plank", want: "found 0"},
		{name: "two equals", line: "stick = plank = log", want: "found 2"},
		{name: "empty product", line: " = 2 plank", want: "no product"},
		{name: "count only product", line: "4 = 2 plank", want: "no name"},
		{name: "empty ingredient list", line: "stick = ", want: "empty item"},
		{name: "trailing comma", line: "stick = plank,", want: "empty item"},
		{name: "zero ingredient count", line: "stick = 0 plank", want: "at least 1"},
		{name: "count out of range", line: "stick = 99999999999999999999 plank", want: "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRecipeLine(tt.line)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeFormat), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseGoalLine(t *testing.T) {
	goal, err := ParseGoalLine("4 stick, torch, 2 iron plate")
	require.NoError(t, err)
	assert.Equal(t, []ItemCount{
		{Name: "stick", Count: 4},
		{Name: "torch", Count: 1},
		{Name: "iron plate", Count: 2},
	}, goal)

	_, err = ParseGoalLine("stick = 2 plank")
	assert.True(t, errors.IsType(err, errors.TypeFormat))
}

func TestParseText(t *testing.T) {
	text := `
# planks first
plank = 1 log

stick = 2 plank
4 stick
`
	book, err := ParseText(text)
	require.NoError(t, err)

	require.Len(t, book.Recipes, 2)
	assert.Equal(t, "plank", book.Recipes[0].Product)
	assert.Equal(t, 3, book.Recipes[0].Line)
	assert.Equal(t, "stick", book.Recipes[1].Product)
	assert.Equal(t, 5, book.Recipes[1].Line)
	assert.Equal(t, []ItemCount{{Name: "stick", Count: 4}}, book.Goal)
}

func TestParseTextGoalOnly(t *testing.T) {
	book, err := ParseText("3 log\n")
	require.NoError(t, err)
	assert.Empty(t, book.Recipes)
	assert.Equal(t, []ItemCount{{Name: "log", Count: 3}}, book.Goal)
}

func TestParseTextErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "empty", text: "\n  \n# only a comment\n", want: "empty"},
		{name: "bad recipe reports line", text: "plank = 1 log\nstick = plank = log\n4 stick", want: "line 2:"},
		{name: "missing goal line", text: "plank = 1 log\nstick = 2 plank", want: "line 2: goal line"},
		{name: "crlf input still parses bad goal", text: "plank = 1 log\r\n0 plank\r\n", want: "line 2:"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseText(tt.text)
			require.Error(t, err)
			assert.True(t, errors.IsType(err, errors.TypeFormat), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
