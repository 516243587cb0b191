package interview

// CallbackInterviewer delegates every question to a caller-supplied
// function, letting embedding applications wire their own UI.
type CallbackInterviewer struct {
	callback func(Question) Answer
}

// NewCallbackInterviewer returns a CallbackInterviewer backed by callback.
func NewCallbackInterviewer(callback func(Question) Answer) *CallbackInterviewer {
	return &CallbackInterviewer{callback: callback}
}

// Ask invokes the callback and returns its result.
func (c *CallbackInterviewer) Ask(question Question) Answer {
	return c.callback(question)
}

// Inform is a no-op.
func (c *CallbackInterviewer) Inform(string, string) {}
