package interview

// AutoApproveInterviewer answers every question affirmatively without
// prompting anyone — used for unattended pipeline runs.
type AutoApproveInterviewer struct{}

// Ask returns YES for yes/no and confirmation questions, the first option
// for multiple-choice questions, and a fixed auto-approved answer otherwise.
func (AutoApproveInterviewer) Ask(question Question) Answer {
	switch question.Type {
	case TypeYesNo, TypeConfirmation:
		return Answer{Value: string(ValueYes)}
	case TypeMultipleChoice:
		if len(question.Options) > 0 {
			opt := question.Options[0]
			return Answer{Value: opt.Key, SelectedOption: &opt}
		}
	}
	return Answer{Value: "auto-approved", Text: "auto-approved"}
}

// Inform is a no-op.
func (AutoApproveInterviewer) Inform(string, string) {}
