package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexshd/rootfind/internal/history"
	"github.com/alexshd/rootfind/internal/report"
)

func newHistoryCommand(a *app) *cobra.Command {
	var (
		serverURL string
		reset     bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the results table of a running `rootfind serve`",
		Example: `  rootfind history
  rootfind history --server http://10.0.0.5:8080 --json
  rootfind history --clear`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base := serverURL
			if base == "" {
				base = "http://" + a.cfg.Address()
			}
			endpoint := strings.TrimRight(base, "/") + "/api/history"

			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
			defer cancel()

			if reset {
				if err := clearHistory(ctx, endpoint); err != nil {
					return err
				}
				a.logger.Info("history cleared", "server", base)
				return nil
			}

			entries, err := fetchHistory(ctx, endpoint)
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(entries)
			}
			report.History(cmd.OutOrStdout(), entries)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "API base URL (default: http://<server.host>:<server.port>)")
	cmd.Flags().BoolVar(&reset, "clear", false, "delete all recorded entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func fetchHistory(ctx context.Context, endpoint string) ([]history.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch history: %s", resp.Status)
	}

	var entries []history.Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return entries, nil
}

func clearHistory(ctx context.Context, endpoint string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("clear history: %s", resp.Status)
	}
	return nil
}
