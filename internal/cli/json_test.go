package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sync"
	"testing"
)

var captureStdoutMu sync.Mutex

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	captureStdoutMu.Lock()
	defer captureStdoutMu.Unlock()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}

	os.Stdout = w

	outputCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		var buf bytes.Buffer
		_, copyErr := io.Copy(&buf, r)
		_ = r.Close()
		if copyErr != nil {
			errCh <- copyErr
			return
		}
		outputCh <- buf.String()
	}()

	fn()

	os.Stdout = orig
	_ = w.Close()
	select {
	case err := <-errCh:
		t.Fatalf("io.Copy: %v", err)
		return ""
	case output := <-outputCh:
		return output
	}
}

func TestHandleError(t *testing.T) {
	t.Run("json mode emits envelope and silences cobra", func(t *testing.T) {
		origJSON, origSilence := jsonOutput, rootCmd.SilenceErrors
		defer func() {
			jsonOutput = origJSON
			rootCmd.SilenceErrors = origSilence
		}()
		jsonOutput = true
		rootCmd.SilenceErrors = false

		cause := errors.New("vault 'work' not found in config")
		var returned error
		out := captureStdout(t, func() {
			returned = handleError(ErrVaultNotFound, cause)
		})

		if returned != cause {
			t.Errorf("expected the original error back, got %v", returned)
		}
		if !rootCmd.SilenceErrors {
			t.Error("expected SilenceErrors to be set in JSON mode")
		}

		var resp Response
		if err := json.Unmarshal([]byte(out), &resp); err != nil {
			t.Fatalf("output is not valid JSON: %v\n%s", err, out)
		}
		if resp.OK {
			t.Error("expected ok=false")
		}
		if resp.Error == nil || resp.Error.Code != ErrVaultNotFound {
			t.Errorf("expected error code %s, got %+v", ErrVaultNotFound, resp.Error)
		}
	})

	t.Run("text mode passes the error through untouched", func(t *testing.T) {
		origJSON, origSilence := jsonOutput, rootCmd.SilenceErrors
		defer func() {
			jsonOutput = origJSON
			rootCmd.SilenceErrors = origSilence
		}()
		jsonOutput = false
		rootCmd.SilenceErrors = false

		cause := errors.New("no vault specified")
		var returned error
		out := captureStdout(t, func() {
			returned = handleError(ErrVaultNotSpecified, cause)
		})

		if returned != cause {
			t.Errorf("expected the original error back, got %v", returned)
		}
		if out != "" {
			t.Errorf("expected no stdout output in text mode, got %q", out)
		}
		if rootCmd.SilenceErrors {
			t.Error("SilenceErrors should stay unset in text mode")
		}
	})
}
