package utils

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyToClipboard puts content on the system clipboard.
func CopyToClipboard(content string) error {
	if content == "" {
		return fmt.Errorf("nothing to copy")
	}
	if err := clipboard.WriteAll(content); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
