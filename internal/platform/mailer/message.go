package mailer

import (
	"fmt"
	"html"
	"strings"

	"github.com/dstanton/taskminder/internal/domain"
)

// dueDateLayout renders the due date the way the reminder reads best:
// "Monday, January 2, 2006".
const dueDateLayout = "Monday, January 2, 2006"

// subjectFor builds the reminder subject line for a task.
func subjectFor(task *domain.Task) string {
	return fmt.Sprintf("Reminder: Task Due Today - %s", task.Text)
}

// textBody composes the plain-text reminder body.
func textBody(task *domain.Task) string {
	status := "Pending"
	if task.Completed {
		status = "Completed"
	}

	var b strings.Builder
	b.WriteString("Task Reminder\n\n")
	b.WriteString("You have a task that is due today:\n\n")
	fmt.Fprintf(&b, "Task: %s\n", task.Text)
	if task.DueDate != nil {
		fmt.Fprintf(&b, "Due Date: %s\n", task.DueDate.Format(dueDateLayout))
	}
	fmt.Fprintf(&b, "Status: %s\n\n", status)
	b.WriteString("Don't forget to complete your task!\n")
	return b.String()
}

// htmlBody composes the HTML alternative of the reminder body.
func htmlBody(task *domain.Task) string {
	status := `<p style="color: #ef4444;"><strong>Status: Pending</strong></p>`
	if task.Completed {
		status = `<p style="color: #10b981;"><strong>Status: Completed</strong></p>`
	}

	dueDate := ""
	if task.DueDate != nil {
		dueDate = fmt.Sprintf("<p><strong>Due Date:</strong> %s</p>", task.DueDate.Format(dueDateLayout))
	}

	return fmt.Sprintf(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #6366f1;">Task Reminder</h2>
  <p>You have a task that is due today:</p>
  <div style="background: #f8fafc; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h3 style="margin-top: 0;">%s</h3>
    %s
    %s
  </div>
  <p>Don't forget to complete your task!</p>
  <p style="color: #64748b; font-size: 12px; margin-top: 30px;">
    This is an automated reminder from Taskminder.
  </p>
</div>`, html.EscapeString(task.Text), dueDate, status)
}
