package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/taskflow/taskflow-go/internal/core/domain"
)

func tasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Work with the task board",
	}
	cmd.AddCommand(tasksListCmd(), tasksCreateCmd(), tasksMoveCmd(), tasksRmCmd())
	return cmd
}

func tasksListCmd() *cobra.Command {
	var status, assignee string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks on the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireAccess(ctx, "/dashboard"); err != nil {
				return err
			}

			tasks, err := a.tasks.List(ctx, domain.TaskFilter{
				Status:   domain.TaskStatus(status),
				Assignee: assignee,
			})
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tTITLE\tDUE")
			for _, t := range tasks {
				due := ""
				if t.DueDate != nil {
					due = t.DueDate.Format("2006-01-02")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Status, t.Priority, t.Title, due)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by column (Todo, 'In Progress', Done)")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Filter by assignee name")
	return cmd
}

func tasksCreateCmd() *cobra.Command {
	var title, description, priority, due string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task in the Todo column",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireAccess(ctx, "/dashboard"); err != nil {
				return err
			}

			task := &domain.Task{
				Title:       title,
				Description: description,
				Status:      domain.StatusTodo,
				Priority:    domain.TaskPriority(priority),
			}
			if due != "" {
				d, err := time.Parse("2006-01-02", due)
				if err != nil {
					return fmt.Errorf("invalid --due date %q, want YYYY-MM-DD", due)
				}
				task.DueDate = &d
			}

			created, err := a.tasks.Create(ctx, task)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s\n", created.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Task title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVar(&priority, "priority", string(domain.PriorityMedium), "Priority (Low, Medium, High)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func tasksMoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move <task-id> <status>",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireAccess(ctx, "/dashboard"); err != nil {
				return err
			}

			id, target := args[0], domain.TaskStatus(args[1])
			if !target.Valid() {
				return fmt.Errorf("invalid status %q, want one of: %s, %s, %s",
					args[1], domain.StatusTodo, domain.StatusInProgress, domain.StatusDone)
			}

			tasks, err := a.tasks.List(ctx, domain.TaskFilter{})
			if err != nil {
				return err
			}
			var task *domain.Task
			for i := range tasks {
				if tasks[i].ID == id || strings.HasPrefix(tasks[i].ID, id) {
					task = &tasks[i]
					break
				}
			}
			if task == nil {
				return domain.ErrTaskNotFound
			}

			task.Status = target
			if _, err := a.tasks.Update(ctx, task.ID, task); err != nil {
				return err
			}
			fmt.Printf("Moved %s to %s\n", task.ID, target)
			return nil
		},
	}
}

func tasksRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <task-id>",
		Short: "Delete a task (Admin and Manager only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireAccess(ctx, "/users", domain.RoleAdmin, domain.RoleManager); err != nil {
				return err
			}

			if err := a.tasks.Delete(ctx, args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}

func activityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "activity <task-id>",
		Short: "Show a task's activity log",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			if err := a.requireAccess(ctx, "/dashboard"); err != nil {
				return err
			}

			entries, err := a.tasks.Activity(ctx, args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No recent activity")
				return nil
			}

			for _, e := range entries {
				who := "Unknown User"
				if e.PerformedBy != nil && e.PerformedBy.Name != "" {
					who = e.PerformedBy.Name
				}
				fmt.Printf("%s  %s %s\n", e.CreatedAt.Format(time.RFC3339), who, e.Message())
			}
			return nil
		},
	}
}
