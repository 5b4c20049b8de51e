package cli

import (
	"fmt"
	"io"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/theme"
)

// renderTasks prints the numbered task listing used by "todo list".
func renderTasks(w io.Writer, tasks []model.Task, p theme.Palette, timeFormat string) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}

	fmt.Fprintln(w, p.Heading("Tasks:"))
	for i, task := range tasks {
		fmt.Fprintf(w, "%d. %s %s (Created: %s)\n",
			i+1,
			p.Marker(task.Completed),
			p.Title(task.Title, task.Completed),
			p.Timestamp(task.CreatedAt.Format(timeFormat)),
		)
	}
}
