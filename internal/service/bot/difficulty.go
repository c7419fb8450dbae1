package bot

// DefaultDepth is how many plies the automated player looks ahead. Depth 3
// answers instantly; every extra ply multiplies the work by up to seven.
const DefaultDepth = 3

var difficultyDepths = map[string]int{
	"easy":   1,
	"medium": 3,
	"hard":   5,
}

// DepthForDifficulty maps a difficulty name to a search depth, falling back
// to DefaultDepth for unknown names.
func DepthForDifficulty(difficulty string) int {
	if depth, ok := difficultyDepths[difficulty]; ok {
		return depth
	}
	return DefaultDepth
}

// IsDifficulty reports whether name is one of the known difficulty levels.
func IsDifficulty(name string) bool {
	_, ok := difficultyDepths[name]
	return ok
}
