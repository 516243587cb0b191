package interview

// Interviewer is the human-approval capability. Implementations never
// block indefinitely without an explicit timeout policy, and Ask never
// panics — an interviewer that cannot obtain an answer returns
// Answer{Value: string(ValueSkipped)} or ValueTimeout rather than erroring.
type Interviewer interface {
	Ask(question Question) Answer
	Inform(message, stage string)
}

// AskMultiple asks each question in order against i, a convenience wrapper
// matching Interviewer.ask_multiple in the original implementation.
func AskMultiple(i Interviewer, questions []Question) []Answer {
	answers := make([]Answer, len(questions))
	for idx, q := range questions {
		answers[idx] = i.Ask(q)
	}
	return answers
}
