package script

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ritzau/socialgraph/pkg/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "network.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeScript(t, `
people = ["Alex", "Jordan", "Morgan"]
friendships = [
  ["Alex", "Jordan"],
  ["Alex", "Morgan"],
]
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alex", "Jordan", "Morgan"}, s.People)
	assert.Equal(t, [][]string{{"Alex", "Jordan"}, {"Alex", "Morgan"}}, s.Friendships)
}

func TestLoad_PeopleOnly(t *testing.T) {
	s, err := Load(writeScript(t, `people = ["Alex"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alex"}, s.People)
	assert.Empty(t, s.Friendships)
}

func TestLoad_BadPair(t *testing.T) {
	_, err := Load(writeScript(t, `
people = ["Alex", "Jordan", "Morgan"]
friendships = [["Alex", "Jordan", "Morgan"]]
`))
	assert.ErrorIs(t, err, ErrInvalidFriendship)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestApply_Default(t *testing.T) {
	var notices bytes.Buffer
	n := network.New(&notices)

	res, err := Apply(n, Default())
	require.NoError(t, err)

	assert.Equal(t, Result{Added: 6, Duplicates: 1, Friendships: 8, Rejected: 1}, res)
	assert.Equal(t, 6, n.Len())
	assert.Equal(t, 8, n.FriendshipCount())
	assert.Equal(t,
		"Alex already exists in the network.\n"+
			"Friendship not created. One or both users not found (Jordan, Johnny).\n",
		notices.String())
}

func TestApply_InvalidScript(t *testing.T) {
	n := network.New(nil)
	s := &Script{People: []string{"Alex"}, Friendships: [][]string{{"Alex"}}}

	_, err := Apply(n, s)
	assert.ErrorIs(t, err, ErrInvalidFriendship)
	assert.Equal(t, 0, n.Len(), "nothing should be applied from an invalid script")
}

func TestDefault_IsFresh(t *testing.T) {
	a := Default()
	a.People[0] = "Changed"
	assert.Equal(t, "Alex", Default().People[0])
}
