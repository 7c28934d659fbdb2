// Command campfire is a terminal client for the recommendation API. It
// remembers the display name between runs the same way the browser does.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"campfire/internal/shared/storage/kv"
	"campfire/internal/webclient"
)

var (
	serverURL string
	stateDir  string
)

func main() {
	defaultState := ""
	if dir, err := os.UserConfigDir(); err == nil {
		defaultState = filepath.Join(dir, "campfire")
	}

	rootCmd := &cobra.Command{
		Use:           "campfire",
		Short:         "Restaurant recommendations from the places you love",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "API base URL")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", defaultState, "where the remembered name is kept")

	rootCmd.AddCommand(nameCmd())
	rootCmd.AddCommand(autocompleteCmd())
	rootCmd.AddCommand(recommendCmd())
	rootCmd.AddCommand(prefsCmd())
	rootCmd.AddCommand(feedbackCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", errorText(err))
		os.Exit(1)
	}
}

func backend() webclient.Backend {
	return webclient.NewClient(serverURL)
}

// withNames opens the state store for the duration of fn.
func withNames(fn func(webclient.NameStore) error) error {
	store, err := kv.Open(stateDir)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(webclient.KVNameStore{Store: store})
}

// currentName returns override when set, else the remembered name.
func currentName(ctx context.Context, override string) (string, error) {
	if override != "" {
		return override, nil
	}
	var name string
	err := withNames(func(s webclient.NameStore) error {
		var err error
		name, err = s.Load(ctx)
		return err
	})
	return name, err
}

// errorText prefers the message a user would see in the browser.
func errorText(err error) string {
	var alert *webclient.AlertError
	if errors.As(err, &alert) {
		return alert.Message
	}
	var apiErr *webclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
