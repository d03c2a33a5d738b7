// Package cli implements the command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Global JSON output flag
var jsonOutput bool

// Response is the standard JSON envelope for all CLI output.
type Response struct {
	OK       bool        `json:"ok"`
	Data     interface{} `json:"data,omitempty"`
	Error    *ErrorInfo  `json:"error,omitempty"`
	Warnings []Warning   `json:"warnings,omitempty"`
	Meta     *Meta       `json:"meta,omitempty"`
}

// ErrorInfo contains structured error information.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Warning represents a non-fatal warning, e.g. a note skipped as unreadable.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
}

// Meta contains metadata about the response.
type Meta struct {
	Count      int   `json:"count,omitempty"`
	ScanTimeMs int64 `json:"scan_time_ms,omitempty"`
}

// Error codes for structured error responses.
const (
	ErrVaultNotFound     = "VAULT_NOT_FOUND"
	ErrVaultNotSpecified = "VAULT_NOT_SPECIFIED"
	ErrConfigInvalid     = "CONFIG_INVALID"
	ErrScanFailed        = "SCAN_FAILED"
	ErrFileReadError     = "FILE_READ_ERROR"
)

// outputJSON outputs the response as JSON to stdout.
func outputJSON(resp Response) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(resp)
}

// outputSuccess outputs a successful JSON response.
func outputSuccess(data interface{}, warnings []Warning, meta *Meta) {
	outputJSON(Response{
		OK:       true,
		Data:     data,
		Warnings: warnings,
		Meta:     meta,
	})
}

// outputError outputs a failed JSON response.
func outputError(code string, err error) {
	outputJSON(Response{
		OK: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: fmt.Sprintf("%v", err),
		},
	})
}

func isJSONOutput() bool {
	return jsonOutput
}

// handleError reports an error appropriately for the output mode. In JSON
// mode it emits the envelope on stdout and keeps Cobra from printing the
// error again; the returned error still aborts the command.
func handleError(code string, err error) error {
	if jsonOutput {
		outputError(code, err)
		rootCmd.SilenceErrors = true
	}
	return err
}
