package iocli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх стандартных потоков процесса.
type Stdio struct {
	in *bufio.Reader
}

func NewStdio() IO {
	return &Stdio{in: bufio.NewReader(os.Stdin)}
}

func (s *Stdio) Println(a ...any) {
	fmt.Println(a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	fmt.Printf(format, a...)
}

// ReadInput печатает приглашение и читает строку до перевода строки.
func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)

	line, err := s.in.ReadString('\n')
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// ReadPassword читает пароль без эха. Перевод строки печатаем сами,
// поскольку терминал его в этом режиме не отображает.
func (s *Stdio) ReadPassword(prompt string) (string, error) {
	s.Printf("%s", prompt)

	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	s.Println("")
	if err != nil {
		return "", err
	}

	return string(pw), nil
}
