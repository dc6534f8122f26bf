package commands

import (
	"bufio"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrPasswordMismatch is returned when the confirmation differs from the password.
var ErrPasswordMismatch = errors.New("passwords do not match")

// prompter reads passwords and confirmations.
// On a terminal the password is read without echo; otherwise one line is read from the input.
type prompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, out: out, reader: bufio.NewReader(in)}
}

func (p *prompter) terminal() (int, bool) {
	file, ok := p.in.(*os.File)
	if !ok {
		return 0, false
	}

	fd := int(file.Fd()) //nolint:gosec // file descriptors fit in an int

	return fd, term.IsTerminal(fd)
}

func (p *prompter) readSecret(label string) ([]byte, error) {
	fmt.Fprint(p.out, label)

	if fd, ok := p.terminal(); ok {
		secret, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)

		if err != nil {
			return nil, fmt.Errorf("reading password: %w", err)
		}

		return secret, nil
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading password: %w", err)
	}

	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// Password asks for the password, and asks again for confirmation if confirm is set.
func (p *prompter) Password(confirm bool) (string, error) {
	first, err := p.readSecret("Enter password: ")
	if err != nil {
		return "", err
	}

	if !confirm {
		return string(first), nil
	}

	if _, interactive := p.terminal(); !interactive {
		return string(first), nil
	}

	second, err := p.readSecret("Confirm password: ")
	if err != nil {
		return "", err
	}

	if subtle.ConstantTimeCompare(first, second) != 1 {
		return "", ErrPasswordMismatch
	}

	return string(first), nil
}

// Confirm asks whether to process every file below dir. Anything but y/yes declines.
func (p *prompter) Confirm(dir string, files int) (bool, error) {
	fmt.Fprintf(p.out, "About to rewrite %d file(s) under %q in place. Continue? [y/N]: ", files, dir)

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
