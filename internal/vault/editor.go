package vault

import (
	"fmt"
	"os/exec"
	"strings"
)

// OpenInEditor opens a file in the given editor command.
// Returns true if the editor was launched, false otherwise.
// The process is started in the background (non-blocking).
//
// If the editor contains spaces (e.g., "open -a Cursor"), it is executed via
// shell so the arguments are handled correctly.
func OpenInEditor(editor, filePath string) bool {
	if editor == "" {
		return false
	}

	var cmd *exec.Cmd
	if strings.Contains(editor, " ") {
		cmd = exec.Command("sh", "-c", editor+" "+shellQuote(filePath))
	} else {
		cmd = exec.Command(editor, filePath)
	}

	if err := cmd.Start(); err != nil {
		fmt.Printf("Warning: failed to open editor '%s': %v\n", editor, err)
		return false
	}
	return true
}

// shellQuote quotes a string for safe use in shell commands.
func shellQuote(s string) string {
	// Use single quotes and escape any single quotes in the string
	return "'" + strings.ReplaceAll(s, "'", "'\"'\"'") + "'"
}

// OpenInEditorOrPrintPath opens a file in the editor, or prints the path if no
// editor is configured.
func OpenInEditorOrPrintPath(editor, filePath string) {
	if !OpenInEditor(editor, filePath) {
		fmt.Printf("Open: %s\n", filePath)
		fmt.Println("(Set 'editor' in ~/.config/muninn/config.toml or $EDITOR to open automatically)")
	}
}
