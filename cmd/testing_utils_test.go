// Shared helpers for the cmd package tests: temporary config directories,
// output capture, and a terminal-free master password prompt.
package cmd

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/kete-vault/kete/internal/configs"
)

// useTempConfigDir repoints the settings at a temporary directory and
// restores the original settings when the test finishes.
func useTempConfigDir(t *testing.T) {
	t.Helper()
	previous := configs.UseConfigDir(t.TempDir())
	t.Cleanup(func() {
		configs.KeteSettings = previous
	})
}

// stubNewPassword replaces the interactive master password prompt for the
// duration of the test.
func stubNewPassword(t *testing.T, password string) {
	t.Helper()
	original := readNewPassword
	readNewPassword = func() (string, error) {
		return password, nil
	}
	t.Cleanup(func() {
		readNewPassword = original
	})
}

// captureOutput captures both stdout and stderr during function execution.
func captureOutput(fn func() error) (string, error) {
	originalStdout := os.Stdout
	originalStderr := os.Stderr

	reader, writer, pipeErr := os.Pipe()
	if pipeErr != nil {
		return "", pipeErr
	}

	os.Stdout = writer
	os.Stderr = writer

	outputChan := make(chan string, 1)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, reader)
		outputChan <- buf.String()
	}()

	err := fn()

	writer.Close()
	os.Stdout = originalStdout
	os.Stderr = originalStderr

	return <-outputChan, err
}
