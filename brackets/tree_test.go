package brackets

import (
	"context"
	"testing"

	"github.com/Dosada05/tournament-engine/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignIDs(matches []*models.Match) {
	for i, m := range matches {
		m.ID = i + 1
	}
}

// knockout builds a hand-made 4 team bracket:
//
//	       7 (final)
//	  5          6
//	1   2      3   4
func knockout() []*models.Match {
	mk := func(id, round, number int) *models.Match {
		return &models.Match{
			ID:          id,
			RoundNumber: intPtr(round),
			MatchNumber: intPtr(number),
			Status:      models.MatchStatusScheduled,
		}
	}
	return []*models.Match{
		mk(7, 3, 1),
		mk(3, 1, 3), mk(1, 1, 1), mk(4, 1, 4), mk(2, 1, 2),
		mk(6, 2, 2), mk(5, 2, 1),
	}
}

func TestBuildTree_Empty(t *testing.T) {
	assert.Nil(t, BuildTree(nil))

	group := &models.Match{ID: 1, GroupID: intPtr(3), RoundNumber: intPtr(1)}
	unnumbered := &models.Match{ID: 2}
	assert.Nil(t, BuildTree([]*models.Match{group, unnumbered}))
}

func TestBuildTree_Structure(t *testing.T) {
	root := BuildTree(knockout())
	require.NotNil(t, root)

	assert.Equal(t, 7, root.Match.ID)
	assert.Equal(t, 0, root.Level)
	require.NotNil(t, root.Left)
	require.NotNil(t, root.Right)
	assert.Equal(t, 5, root.Left.Match.ID)
	assert.Equal(t, 6, root.Right.Match.ID)
	assert.Equal(t, 1, root.Left.Level)

	assert.Equal(t, 1, root.Left.Left.Match.ID)
	assert.Equal(t, 2, root.Left.Right.Match.ID)
	assert.Equal(t, 3, root.Right.Left.Match.ID)
	assert.Equal(t, 4, root.Right.Right.Match.ID)
	assert.Equal(t, 2, root.Right.Right.Level)
	assert.Nil(t, root.Right.Right.Left, "round 1 matches are leaves")

	assert.Equal(t, 3, Depth(root))
	assert.Equal(t, 0, Depth(nil))
	assert.Equal(t, 1, Depth(&BracketNode{Match: &models.Match{}}))
}

func TestBuildTree_IgnoresGroupMatches(t *testing.T) {
	matches := append(knockout(), &models.Match{ID: 99, GroupID: intPtr(1), RoundNumber: intPtr(5)})
	root := BuildTree(matches)
	require.NotNil(t, root)
	assert.Equal(t, 7, root.Match.ID)
}

func TestBuildTree_GlobalMatchNumbering(t *testing.T) {
	g := NewSingleEliminationGenerator(discardLogger())
	matches, err := g.GenerateBracket(context.Background(), GenerateBracketParams{TournamentID: 1, TeamIDs: teamIDs(8)})
	require.NoError(t, err)
	assignIDs(matches)

	root := BuildTree(matches)
	require.NotNil(t, root)
	assert.Equal(t, 7, *root.Match.MatchNumber)
	assert.Equal(t, 5, *root.Left.Match.MatchNumber)
	assert.Equal(t, 6, *root.Right.Match.MatchNumber)
	assert.Equal(t, 3, *root.Right.Left.Match.MatchNumber)
	assert.Equal(t, 3, Depth(root))
}

func TestInorderTraversal_VisitsEveryMatchOnce(t *testing.T) {
	input := knockout()
	ordered := InorderTraversal(BuildTree(input))

	ids := make([]int, 0, len(ordered))
	for _, m := range ordered {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{1, 5, 2, 7, 3, 6, 4}, ids)
	assert.ElementsMatch(t, input, ordered)

	assert.Empty(t, InorderTraversal(nil))
}

func TestValidatePathAndPathToMatch(t *testing.T) {
	root := BuildTree(knockout())

	assert.True(t, ValidatePath(root, 4))
	assert.True(t, ValidatePath(root, 7))
	assert.False(t, ValidatePath(root, 42))
	assert.False(t, ValidatePath(nil, 1))

	path := PathToMatch(root, 3)
	ids := make([]int, 0, len(path))
	for _, m := range path {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []int{7, 6, 3}, ids)

	assert.Len(t, PathToMatch(root, 7), 1)

	missing := PathToMatch(root, 42)
	assert.NotNil(t, missing)
	assert.Empty(t, missing)
}

func TestSerialize(t *testing.T) {
	matches := knockout()
	matches[0].TeamHomeID = intPtr(10)
	matches[0].WinnerID = intPtr(10)
	root := BuildTree(matches)

	out := Serialize(root)
	assert.Equal(t, 7, out["id"])
	assert.Equal(t, 0, out["level"])
	assert.Equal(t, models.MatchStatusScheduled, out["status"])
	assert.Equal(t, intPtr(10), out["teamHomeId"])

	left, ok := out["leftChild"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 5, left["id"])
	assert.Equal(t, 1, left["level"])

	leaf := left["leftChild"].(map[string]interface{})
	assert.Equal(t, 1, leaf["id"])
	emptyChild, ok := leaf["leftChild"].(map[string]interface{})
	require.True(t, ok, "missing child must serialize to an empty map")
	assert.Empty(t, emptyChild)

	assert.Equal(t, map[string]interface{}{}, Serialize(nil))
}
