package dispatch

import (
	"fmt"
	"io"
	"time"

	"github.com/pablasso/fwtask/internal/styles"
	"github.com/pablasso/fwtask/internal/task"
)

// reporter prints a header before each task and a summary line on success.
// Command output itself goes straight to the terminal, not through here.
type reporter struct {
	w     io.Writer
	style styles.Styles
}

func newReporter(w io.Writer) *reporter {
	return &reporter{w: w, style: styles.For(w)}
}

func (r *reporter) taskStarted(num, total int, t *task.Task) {
	header := fmt.Sprintf("==> %s", t.Name)
	if total > 1 {
		header = fmt.Sprintf("==> [%d/%d] %s", num, total, t.Name)
	}
	line := r.style.Title.Render(header)
	if t.Description != "" {
		line += r.style.Subtle.Render(": " + t.Description)
	}
	fmt.Fprintln(r.w, line)
}

func (r *reporter) finished(name string, ran int, elapsed time.Duration) {
	msg := fmt.Sprintf("%s done (%d %s, %s)", name, ran, plural(ran, "task", "tasks"), formatDuration(elapsed))
	fmt.Fprintln(r.w, r.style.Success.Render(msg))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// formatDuration formats a duration as HH:MM:SS or MM:SS.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}
