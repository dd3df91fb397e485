package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nhle/taskboard/internal/app"
	"github.com/nhle/taskboard/internal/model"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "taskboard: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := model.LoadConfig(model.DefaultConfigPath())
	if err != nil {
		return err
	}

	a, err := app.New(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if u := a.Auth.CurrentUser(); u != nil {
		fmt.Printf("signed in as %s <%s>\n", u.Name, u.Email)
		fmt.Printf("%d tasks (%d assigned to you), %d unread notifications\n",
			len(a.Tasks.Tasks()),
			len(a.Tasks.TasksByAssignee(u.ID)),
			a.Notifications.UnreadCount(),
		)
		return nil
	}

	fmt.Printf("signed out; %d tasks in the collection\n", len(a.Tasks.Tasks()))
	return nil
}
