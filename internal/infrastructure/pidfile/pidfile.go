package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// ErrAlreadyRunning is returned by Acquire while another live process holds the file
type ErrAlreadyRunning struct {
	PID int
}

func (e *ErrAlreadyRunning) Error() string {
	return fmt.Sprintf("daemon is already running (PID %d)", e.PID)
}

// PIDFile keeps a single daemon instance per PID file
type PIDFile struct {
	path string
	pid  int
}

// New creates a PID file manager for the current process
func New(path string) *PIDFile {
	return &PIDFile{path: path, pid: os.Getpid()}
}

// Acquire writes the current process ID. A file left behind by a dead
// process, or one that does not hold a PID, is replaced.
func (p *PIDFile) Acquire() error {
	if owner, ok, err := p.owner(); err != nil {
		return err
	} else if ok && owner != p.pid && isProcessRunning(owner) {
		return &ErrAlreadyRunning{PID: owner}
	}

	if err := os.WriteFile(p.path, []byte(strconv.Itoa(p.pid)+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Release removes the PID file if it still holds the current process ID
func (p *PIDFile) Release() error {
	owner, ok, err := p.owner()
	if err != nil || !ok || owner != p.pid {
		return err
	}
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

// KillExisting sends SIGTERM to the process holding the file and waits up
// to timeout for it to exit
func (p *PIDFile) KillExisting(timeout time.Duration) error {
	owner, ok, err := p.owner()
	if err != nil || !ok || owner == p.pid || !isProcessRunning(owner) {
		return err
	}

	process, err := os.FindProcess(owner)
	if err != nil {
		return fmt.Errorf("failed to find process %d: %w", owner, err)
	}
	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("failed to stop process %d: %w", owner, err)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if !isProcessRunning(owner) {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("process %d did not exit within %s", owner, timeout)
}

// owner reads the PID stored in the file. ok is false when the file is
// missing or does not hold a PID.
func (p *PIDFile) owner() (pid int, ok bool, err error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read existing PID file: %w", err)
	}

	pid, err = strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false, nil
	}
	return pid, true, nil
}

// isProcessRunning checks pid with signal 0
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	// EPERM: the process exists but belongs to someone else
	return err == nil || errors.Is(err, syscall.EPERM)
}
