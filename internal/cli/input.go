package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// LineReader reads one line of input after showing prompt. It returns
// io.EOF when input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

type scanReader struct {
	input  *bufio.Scanner
	output io.Writer
}

// NewScanReader reads plain lines from in, echoing prompts to out
func NewScanReader(in io.Reader, out io.Writer) LineReader {
	return &scanReader{input: bufio.NewScanner(in), output: out}
}

func (r *scanReader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.output, prompt)
	if !r.input.Scan() {
		if err := r.input.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.input.Text(), nil
}

// Terminal is a line editor with history for interactive sessions
type Terminal struct {
	rl *readline.Instance
}

// NewTerminal opens a line editor on the process terminal. historyFile
// may be empty to keep history in memory only.
func NewTerminal(historyFile string) (*Terminal, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}
	return &Terminal{rl: rl}, nil
}

func (t *Terminal) ReadLine(prompt string) (string, error) {
	t.rl.SetPrompt(prompt)
	line, err := t.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

// Output is where display writes go so they do not clobber the prompt
func (t *Terminal) Output() io.Writer {
	return t.rl.Stdout()
}

func (t *Terminal) Close() error {
	return t.rl.Close()
}

// IsInteractive reports whether stdin and stdout are both terminals
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
