package game

type Outcome int

const (
	Lost Outcome = iota
	Won
)

func (outcome Outcome) String() string {
	switch outcome {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}
