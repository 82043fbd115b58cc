package session

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/google/uuid"
	"github.com/pterm/pterm"

	"github.com/doeshing/clio-go/internal/domain"
	"github.com/doeshing/clio-go/internal/ports"
)

// ErrClosed is returned when submitting to a session that has ended.
var ErrClosed = errors.New("session closed")

// ErrQueueFull is returned when the submission queue is saturated.
var ErrQueueFull = errors.New("session queue full")

// ShellSession is a long-lived shell process whose stdin is fed from a FIFO queue.
// Submit only enqueues; a single writer goroutine hands commands to the shell in
// submission order, and the shell runs them one after another.
type ShellSession struct {
	id    string
	shell string
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   io.Writer

	mu      sync.Mutex
	queue   chan string
	closed  bool
	exited  chan struct{}
	drained chan struct{}
	waitErr error
}

// StartShell spawns shell with its output wired to stdout/stderr.
func StartShell(shell string, stdout, stderr io.Writer) (*ShellSession, error) {
	cmd := exec.Command(shell)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("session stdin: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start shell %s: %w", shell, err)
	}

	s := &ShellSession{
		id:      uuid.NewString(),
		shell:   shell,
		cmd:     cmd,
		stdin:   stdin,
		out:     stdout,
		queue:   make(chan string, domain.DefaultSessionQueueSize),
		exited:  make(chan struct{}),
		drained: make(chan struct{}),
	}
	go s.wait()
	go s.drain()
	return s, nil
}

// ID implements ports.Session.
func (s *ShellSession) ID() string { return s.id }

// Shell returns the program backing the session.
func (s *ShellSession) Shell() string { return s.shell }

// Show implements ports.Session.
func (s *ShellSession) Show() {
	fmt.Fprintln(s.out, pterm.NewStyle(pterm.FgCyan, pterm.Bold).Sprintf("── clio session %s (%s) ──", s.id[:8], s.shell))
}

// Submit implements ports.Session.
func (s *ShellSession) Submit(command string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.aliveLocked() {
		return ErrClosed
	}
	select {
	case s.queue <- command:
		return nil
	default:
		return ErrQueueFull
	}
}

// Alive implements ports.Session.
func (s *ShellSession) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && s.aliveLocked()
}

func (s *ShellSession) aliveLocked() bool {
	select {
	case <-s.exited:
		return false
	default:
		return true
	}
}

// Close implements ports.Session. Commands already queued still run.
func (s *ShellSession) Close() error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()

	<-s.drained
	<-s.exited
	var exitErr *exec.ExitError
	if errors.As(s.waitErr, &exitErr) {
		return nil
	}
	return s.waitErr
}

func (s *ShellSession) drain() {
	defer close(s.drained)
	defer s.stdin.Close()
	for command := range s.queue {
		if _, err := io.WriteString(s.stdin, command+"\n"); err != nil {
			// The shell went away; discard the rest of the queue.
			for range s.queue {
			}
			return
		}
	}
}

func (s *ShellSession) wait() {
	s.waitErr = s.cmd.Wait()
	close(s.exited)
}

var _ ports.Session = (*ShellSession)(nil)
