package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pablasso/fwtask/internal/styles"
)

// printTasks writes one line per task, in the spirit of `rake -T`.
func printTasks(w io.Writer, set *taskSet) {
	st := styles.For(w)

	fmt.Fprintln(w, st.Subtle.Render(fmt.Sprintf("# %s, default task: %s", set.Source, set.DefaultTask)))

	tasks := set.Registry.Tasks()
	width := 0
	for _, t := range tasks {
		if len(t.Name) > width {
			width = len(t.Name)
		}
	}

	for _, t := range tasks {
		name := st.Name.Render(t.Name) + strings.Repeat(" ", width-len(t.Name))
		line := fmt.Sprintf("fwtask %s", name)

		var comment []string
		if t.Description != "" {
			comment = append(comment, t.Description)
		}
		if len(t.Prerequisites) > 0 {
			comment = append(comment, "["+strings.Join(t.Prerequisites, ", ")+"]")
		}
		if len(comment) > 0 {
			line += st.Subtle.Render("  # " + strings.Join(comment, " "))
		}
		fmt.Fprintln(w, line)
	}
}
