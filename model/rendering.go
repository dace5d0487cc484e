package model

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

const clearCmd = "clear"

// TerminalRenderer writes the universe's text dump to a terminal.
type TerminalRenderer struct {
	Out io.Writer
}

func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{Out: os.Stdout}
}

// Display renders the current grid followed by a newline.
func (r *TerminalRenderer) Display(u *Universe) {
	fmt.Fprintln(r.Out, u.Render())
}

// Clear clears the terminal screen.
func (r *TerminalRenderer) Clear() {
	cmd := exec.Command(clearCmd)
	cmd.Stdout = r.Out
	if err := cmd.Run(); err != nil {
		fmt.Fprintln(r.Out, "Error clearing terminal:", err)
	}
}
