package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/raidrisk/raidrisk/device"
)

// WriteTopology prints one tab separated line per member:
// id, device node, backing device id, backing device node, backing device name.
func WriteTopology(w io.Writer, list *device.List) error {
	var b strings.Builder
	for _, i := range list.Logical() {
		rec, parent := list.At(i), list.Parent(i)
		fmt.Fprintf(&b, "%s\t%s\t%s\t%s\t%s\n", rec.ID, rec.File, parent.ID, parent.File, parent.Name)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
