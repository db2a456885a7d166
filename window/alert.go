package window

import (
	"fmt"

	"github.com/sqweek/dialog"
)

// alertf surfaces a fatal native failure: it logs the message and raises a
// blocking native error dialog. Used only on the unrecoverable paths
// (class registration, window creation, context creation); benign lookups
// report sentinels instead.
func alertf(title, format string, args ...any) {
	message := fmt.Sprintf(format, args...)
	Logger().Error(message, "title", title)
	dialog.Message("%s", message).Title(title).Error()
}
