// Package console holds the line-oriented prompts shared by the command line
// tools.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrClosed is returned when input ends before a prompt was answered.
var ErrClosed = errors.New("input closed")

// Prompter reads answers line by line. Invalid answers are reported and the
// question is asked again until the input ends.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Printf writes to the prompter's output.
func (p *Prompter) Printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

// Line asks for one line of text and returns it trimmed.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			return "", ErrClosed
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ask repeats label until parse accepts the answer.
func (p *Prompter) ask(label string, parse func(string) error) error {
	for {
		s, err := p.Line(label)
		if err != nil {
			return err
		}
		if err := parse(s); err != nil {
			fmt.Fprintf(p.out, "  %v\n", err)
			continue
		}
		return nil
	}
}

// Int asks for an integer in [min, max].
func (p *Prompter) Int(label string, min, max int) (int, error) {
	var v int
	err := p.ask(fmt.Sprintf("%s [%d-%d]", label, min, max), func(s string) error {
		return parseIntIn(s, min, max, &v)
	})
	return v, err
}

// OptionalInt is Int with def returned for an empty answer.
func (p *Prompter) OptionalInt(label string, min, max, def int) (int, error) {
	v := def
	err := p.ask(fmt.Sprintf("%s [%d-%d] (%d)", label, min, max, def), func(s string) error {
		if s == "" {
			return nil
		}
		return parseIntIn(s, min, max, &v)
	})
	return v, err
}

// Float asks for a number in [min, max].
func (p *Prompter) Float(label string, min, max float64) (float64, error) {
	var v float64
	err := p.ask(fmt.Sprintf("%s [%g-%g]", label, min, max), func(s string) error {
		return parseFloatIn(s, min, max, &v)
	})
	return v, err
}

// OptionalFloat is Float with def returned for an empty answer.
func (p *Prompter) OptionalFloat(label string, min, max, def float64) (float64, error) {
	v := def
	err := p.ask(fmt.Sprintf("%s [%g-%g] (%g)", label, min, max, def), func(s string) error {
		if s == "" {
			return nil
		}
		return parseFloatIn(s, min, max, &v)
	})
	return v, err
}

// Choice lists options numbered from 1 and returns the zero-based index of
// the picked one. def is the index used for an empty answer, or -1 to require
// an answer.
func (p *Prompter) Choice(label string, options []string, def int) (int, error) {
	for i, o := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, o)
	}
	if def >= 0 {
		n, err := p.OptionalInt(label, 1, len(options), def+1)
		return n - 1, err
	}
	n, err := p.Int(label, 1, len(options))
	return n - 1, err
}

// Confirm asks a yes/no question. An empty answer is no.
func (p *Prompter) Confirm(label string) (bool, error) {
	var yes bool
	err := p.ask(label+" [y/N]", func(s string) error {
		switch strings.ToLower(s) {
		case "y", "yes":
			yes = true
		case "", "n", "no":
			yes = false
		default:
			return errors.New("answer y or n")
		}
		return nil
	})
	return yes, err
}

func parseIntIn(s string, min, max int, v *int) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("%q is not a whole number", s)
	}
	if n < min || n > max {
		return fmt.Errorf("must be between %d and %d", min, max)
	}
	*v = n
	return nil
}

func parseFloatIn(s string, min, max float64, v *float64) error {
	f, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil {
		return fmt.Errorf("%q is not a number", s)
	}
	if f < min || f > max {
		return fmt.Errorf("must be between %g and %g", min, max)
	}
	*v = f
	return nil
}
