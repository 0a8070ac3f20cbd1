package difficulty

// Labels accepted from clients. Anything else maps to Unbounded.
const (
	Easy   = "easy"
	Medium = "medium"
	Hard   = "hard"
	Mixed  = "mixed"
)

// Band is an inclusive range of question difficulty scores.
type Band struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

var Unbounded = Band{Min: 0, Max: 100}

var bands = map[string]Band{
	Easy:   {Min: 10, Max: 13},
	Medium: {Min: 14, Max: 17},
	Hard:   {Min: 18, Max: 20},
}

// ForLabel never fails: unknown labels accept every score.
func ForLabel(label string) Band {
	if b, ok := bands[label]; ok {
		return b
	}
	return Unbounded
}

func (b Band) Contains(score int) bool {
	return score >= b.Min && score <= b.Max
}
