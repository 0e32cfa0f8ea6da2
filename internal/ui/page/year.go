package page

import (
	"strconv"

	"github.com/Its-donkey/landing/internal/ui/dom"
)

// StampYear writes the host's current year into el.
func StampYear(host dom.Host, el dom.Element) {
	if el == nil {
		return
	}
	el.SetText(strconv.Itoa(host.Now().Year()))
}
