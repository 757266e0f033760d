package screen

import (
	"time"

	"github.com/rovshanmuradov/token-monitor/internal/token"
	"github.com/rovshanmuradov/token-monitor/internal/ui/style"
)

// noticeTTL is how long an inline success or error message stays up.
const noticeTTL = 5 * time.Second

// notice is a one-line message under the screen title.
type notice struct {
	text  string
	isErr bool
	at    time.Time
}

func (n *notice) set(text string, isErr bool) {
	n.text, n.isErr, n.at = text, isErr, time.Now()
}

func (n *notice) clear() { *n = notice{} }

// expire clears the notice once it is older than noticeTTL.
func (n *notice) expire(now time.Time) {
	if n.text != "" && now.Sub(n.at) >= noticeTTL {
		n.clear()
	}
}

func (n notice) view() string {
	if n.text == "" {
		return ""
	}
	if n.isErr {
		return style.ErrorStyle.Render("✗ " + n.text)
	}
	return style.SuccessStyle.Render("✓ " + n.text)
}

// indexOf returns the position of address in tokens or -1.
func indexOf(tokens []token.Token, address string) int {
	for i, t := range tokens {
		if t.Address == address {
			return i
		}
	}
	return -1
}

func clampHeight(h, floor int) int {
	if h < floor {
		return floor
	}
	return h
}
