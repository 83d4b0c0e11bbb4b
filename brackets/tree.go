package brackets

import (
	"sort"

	"github.com/Dosada05/tournament-engine/models"
)

// BracketNode is one match of an elimination tree. Left and Right are the
// previous-round matches feeding it. Level is the distance from the final.
type BracketNode struct {
	Match *models.Match
	Left  *BracketNode
	Right *BracketNode
	Level int
}

// BuildTree reconstructs the elimination tree from a flat match list.
// Group matches and matches without a round number are ignored.
// Returns nil when there is nothing to build.
func BuildTree(matches []*models.Match) *BracketNode {
	rounds := make(map[int][]*models.Match)
	maxRound := 0
	found := false
	for _, m := range matches {
		if !m.IsBracketMatch() {
			continue
		}
		r := *m.RoundNumber
		rounds[r] = append(rounds[r], m)
		if !found || r > maxRound {
			maxRound = r
			found = true
		}
	}
	if !found {
		return nil
	}

	for r := range rounds {
		sortByMatchNumber(rounds[r])
	}

	finals := rounds[maxRound]
	if len(finals) == 0 {
		return nil
	}
	return buildNode(rounds, finals[0], 0, maxRound)
}

func buildNode(rounds map[int][]*models.Match, m *models.Match, pos, maxRound int) *BracketNode {
	round := *m.RoundNumber
	node := &BracketNode{Match: m, Level: maxRound - round}
	if round <= 1 {
		return node
	}

	prev := rounds[round-1]
	leftIdx, rightIdx := pos*2, pos*2+1
	if leftIdx < len(prev) {
		node.Left = buildNode(rounds, prev[leftIdx], leftIdx, maxRound)
	}
	if rightIdx < len(prev) {
		node.Right = buildNode(rounds, prev[rightIdx], rightIdx, maxRound)
	}
	return node
}

// sortByMatchNumber orders a round by match number, unnumbered matches last,
// keeping input order among equals.
func sortByMatchNumber(round []*models.Match) {
	sort.SliceStable(round, func(i, j int) bool {
		a, b := round[i].MatchNumber, round[j].MatchNumber
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
}

// Depth is the height of the subtree: 0 for nil, 1 for a single node.
func Depth(node *BracketNode) int {
	if node == nil {
		return 0
	}
	return 1 + max(Depth(node.Left), Depth(node.Right))
}

func InorderTraversal(node *BracketNode) []*models.Match {
	result := make([]*models.Match, 0)
	var walk func(n *BracketNode)
	walk = func(n *BracketNode) {
		if n == nil {
			return
		}
		walk(n.Left)
		result = append(result, n.Match)
		walk(n.Right)
	}
	walk(node)
	return result
}

func ValidatePath(root *BracketNode, matchID int) bool {
	if root == nil {
		return false
	}
	if root.Match.ID == matchID {
		return true
	}
	return ValidatePath(root.Left, matchID) || ValidatePath(root.Right, matchID)
}

// PathToMatch returns the matches from the root down to the target, root first.
// The result is empty when the target is not in the tree.
func PathToMatch(root *BracketNode, matchID int) []*models.Match {
	path := make([]*models.Match, 0)
	if findPath(root, matchID, &path) {
		return path
	}
	return []*models.Match{}
}

func findPath(node *BracketNode, matchID int, path *[]*models.Match) bool {
	if node == nil {
		return false
	}
	*path = append(*path, node.Match)
	if node.Match.ID == matchID {
		return true
	}
	if findPath(node.Left, matchID, path) || findPath(node.Right, matchID, path) {
		return true
	}
	*path = (*path)[:len(*path)-1]
	return false
}

// Serialize renders the subtree as nested maps ready for JSON encoding.
// A missing child is an empty map, never nil.
func Serialize(node *BracketNode) map[string]interface{} {
	if node == nil {
		return map[string]interface{}{}
	}
	m := node.Match
	return map[string]interface{}{
		"id":          m.ID,
		"roundName":   m.RoundName,
		"roundNumber": m.RoundNumber,
		"matchNumber": m.MatchNumber,
		"teamHomeId":  m.TeamHomeID,
		"teamAwayId":  m.TeamAwayID,
		"scoreHome":   m.ScoreHome,
		"scoreAway":   m.ScoreAway,
		"status":      m.Status,
		"winnerId":    m.WinnerID,
		"level":       node.Level,
		"leftChild":   Serialize(node.Left),
		"rightChild":  Serialize(node.Right),
	}
}
