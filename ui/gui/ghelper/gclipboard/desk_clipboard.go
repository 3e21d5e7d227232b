package gclipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

func WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("clipboard is not available on this system")
	}
	return clipboard.WriteAll(text)
}
