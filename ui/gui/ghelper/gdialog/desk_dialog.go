package gdialog

import (
	"fmt"

	"github.com/sqweek/dialog"
)

// ShowError blocks until the user closes the message box.
func ShowError(title string, err error) {
	dialog.Message("%s", err.Error()).Title(title).Error()
}

// ShowErrorf is ShowError with a formatted message.
func ShowErrorf(title, format string, args ...interface{}) {
	dialog.Message("%s", fmt.Sprintf(format, args...)).Title(title).Error()
}
