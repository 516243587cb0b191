package interview

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// ConsoleInterviewer prompts a human at a terminal. Options are rendered
// with their accelerator key so a reply can be a single keystroke ("y",
// "2") instead of the full label. When a Question carries a
// TimeoutSeconds, Ask gives up and returns ValueTimeout once that deadline
// passes without a line of input.
type ConsoleInterviewer struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsoleInterviewer wires a ConsoleInterviewer to the given input and
// output streams (os.Stdin / os.Stdout in production, buffers in tests).
func NewConsoleInterviewer(in io.Reader, out io.Writer) *ConsoleInterviewer {
	return &ConsoleInterviewer{in: bufio.NewReader(in), out: out}
}

// Ask renders question, reads one line of reply, and maps it to an Answer.
func (c *ConsoleInterviewer) Ask(question Question) Answer {
	c.render(question)

	line, ok := c.readLineWithTimeout(question.TimeoutSeconds)
	if !ok {
		return Answer{Value: string(ValueTimeout)}
	}

	reply := strings.TrimSpace(line)
	if reply == "" && question.Default != nil {
		return *question.Default
	}

	switch question.Type {
	case TypeYesNo, TypeConfirmation:
		return c.interpretYesNo(reply)
	case TypeMultipleChoice:
		return c.interpretChoice(reply, question.Options)
	default:
		return Answer{Value: reply, Text: reply}
	}
}

// Inform prints message to the console, tagged with stage when present.
func (c *ConsoleInterviewer) Inform(message, stage string) {
	if stage != "" {
		fmt.Fprintf(c.out, "[%s] %s\n", stage, message)
		return
	}
	fmt.Fprintln(c.out, message)
}

func (c *ConsoleInterviewer) render(question Question) {
	fmt.Fprintln(c.out, question.Text)
	for _, opt := range question.Options {
		key, label := ParseAccelerator(opt.Label)
		if key == "" {
			key, label = ParseAccelerator(opt.Key)
		}
		fmt.Fprintf(c.out, "  [%s] %s\n", key, label)
	}
	fmt.Fprint(c.out, "> ")
}

func (c *ConsoleInterviewer) interpretYesNo(reply string) Answer {
	switch strings.ToUpper(reply) {
	case "Y", "YES":
		return Answer{Value: string(ValueYes)}
	case "N", "NO":
		return Answer{Value: string(ValueNo)}
	default:
		return Answer{Value: string(ValueSkipped)}
	}
}

func (c *ConsoleInterviewer) interpretChoice(reply string, options []Option) Answer {
	upper := strings.ToUpper(reply)
	for _, opt := range options {
		key, _ := ParseAccelerator(opt.Label)
		if key == upper || strings.EqualFold(opt.Key, reply) {
			o := opt
			return Answer{Value: opt.Key, SelectedOption: &o}
		}
	}
	return Answer{Value: string(ValueSkipped)}
}

// readLineWithTimeout reads one line from c.in, giving up after
// timeoutSeconds if positive. The read continues on its own goroutine even
// after a timeout fires, since bufio.Reader has no cancellable read — the
// stale goroutine's result is simply discarded.
func (c *ConsoleInterviewer) readLineWithTimeout(timeoutSeconds float64) (string, bool) {
	if timeoutSeconds <= 0 {
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			return "", false
		}
		return line, true
	}

	result := make(chan string, 1)
	go func() {
		line, err := c.in.ReadString('\n')
		if err == nil || line != "" {
			result <- line
		}
	}()

	select {
	case line := <-result:
		return line, true
	case <-time.After(time.Duration(timeoutSeconds * float64(time.Second))):
		return "", false
	}
}
