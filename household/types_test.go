package household_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/chorewheel/household"
)

func TestParsePreference(t *testing.T) {
	cases := []struct {
		in   string
		want household.Preference
	}{
		{"favor", household.Favor},
		{"love", household.Favor},
		{" Neutral ", household.Neutral},
		{"AVOID", household.Avoid},
	}
	for _, tc := range cases {
		got, err := household.ParsePreference(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}

	_, err := household.ParsePreference("3")
	require.True(t, errors.Is(err, household.ErrUnknownPreference))
}

func TestPreferenceString(t *testing.T) {
	assert.Equal(t, "favor", household.Favor.String())
	assert.Equal(t, "avoid", household.Avoid.String())
	assert.Equal(t, "Preference(0)", household.Preference(0).String())
	assert.False(t, household.Preference(0).Valid())
}

func TestPreferenceMarshalInvalid(t *testing.T) {
	_, err := household.Preference(9).MarshalText()
	require.True(t, errors.Is(err, household.ErrUnknownPreference))
}

// TestJSONDecode checks the wire shape used by the HTTP layer, including the
// legacy "love" spelling.
func TestJSONDecode(t *testing.T) {
	raw := `{
		"id": "h1",
		"users": [{"id": "ana", "preferences": {"dishes": "love", "trash": "avoid"}}],
		"chores": [{"id": "dishes", "assignedTo": "ana"}, {"id": "trash"}]
	}`
	var h household.Household
	require.NoError(t, json.Unmarshal([]byte(raw), &h))

	p, ok := h.Users[0].Preference("dishes")
	require.True(t, ok)
	require.Equal(t, household.Favor, p)
	require.Equal(t, "ana", h.Chores[0].AssignedTo)

	out, err := json.Marshal(h.Users[0])
	require.NoError(t, err)
	require.Contains(t, string(out), `"dishes":"favor"`)
}

func TestYAMLDecode(t *testing.T) {
	raw := `
id: h2
users:
  - id: bo
    preferences:
      laundry: neutral
chores:
  - id: laundry
`
	var h household.Household
	require.NoError(t, yaml.Unmarshal([]byte(raw), &h))
	p, ok := h.Users[0].Preference("laundry")
	require.True(t, ok)
	require.Equal(t, household.Neutral, p)
}

func TestUserPreferenceMissing(t *testing.T) {
	u := household.User{ID: "x"}
	_, ok := u.Preference("anything")
	require.False(t, ok)
}

func TestValidate(t *testing.T) {
	ok := household.Household{
		Users:  []household.User{{ID: "a"}, {ID: "b"}},
		Chores: []household.Chore{{ID: "c1"}},
	}
	require.NoError(t, ok.Validate())

	dupUser := household.Household{Users: []household.User{{ID: "a"}, {ID: "a"}}}
	require.True(t, errors.Is(dupUser.Validate(), household.ErrDuplicateUser))

	dupChore := household.Household{Chores: []household.Chore{{ID: "c"}, {ID: "c"}}}
	require.True(t, errors.Is(dupChore.Validate(), household.ErrDuplicateChore))

	empty := household.Household{Chores: []household.Chore{{ID: ""}}}
	require.True(t, errors.Is(empty.Validate(), household.ErrEmptyID))
}

func TestSortedUsersDoesNotMutate(t *testing.T) {
	h := household.Household{Users: []household.User{{ID: "zed"}, {ID: "amy"}, {ID: "kim"}}}
	sorted := h.SortedUsers()

	require.Equal(t, []string{"amy", "kim", "zed"}, []string{sorted[0].ID, sorted[1].ID, sorted[2].ID})
	require.Equal(t, "zed", h.Users[0].ID)

	u, ok := h.User("kim")
	require.True(t, ok)
	require.Equal(t, "kim", u.ID)
}
