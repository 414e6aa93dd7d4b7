package ui

// Answer is how a notice was dismissed.
type Answer uint8

const (
	AnswerOK Answer = iota
	AnswerYes
	AnswerNo
	AnswerNumber
	AnswerCancel
)

func (a Answer) String() string {
	switch a {
	case AnswerOK:
		return "OK"
	case AnswerYes:
		return "YES"
	case AnswerNo:
		return "NO"
	case AnswerNumber:
		return "NUMBER"
	case AnswerCancel:
		return "CANCEL"
	default:
		return "UNKNOWN"
	}
}

// Intent is the continuation a notice carries. It is plain data: when the
// outcome is applied it looks up whatever panels it needs from the registry
// instead of holding references to them.
type Intent interface {
	Resolve(r *Registry, o Outcome)
}

// Outcome is posted by a notice when it is dismissed. It is a Command, so
// every notice answer flows through the registry queue.
type Outcome struct {
	Intent Intent
	Answer Answer
	Number int
}

// Apply implements Command.
func (o Outcome) Apply(r *Registry) {
	if o.Intent != nil {
		o.Intent.Resolve(r, o)
	}
}

// Confirmed reports whether the answer is affirmative.
func (o Outcome) Confirmed() bool {
	return o.Answer == AnswerOK || o.Answer == AnswerYes || o.Answer == AnswerNumber
}
