package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/Verdict/internal/api"
	"github.com/MikeSquared-Agency/Verdict/internal/matrix"
	"github.com/MikeSquared-Agency/Verdict/internal/saw"
)

type pushOptions struct {
	apiURL    string
	token     string
	clientID  string
	calculate bool
	dryRun    bool
	timeout   time.Duration
}

func newPushCommand() *cobra.Command {
	opts := pushOptions{}

	cmd := &cobra.Command{
		Use:   "push <matrix-file>",
		Short: "Load a matrix file into a running server's workspace",
		Long: `Load a matrix file into a running server's workspace.

The file is validated locally, and a matrix the engine would reject (no
criteria, no alternatives or a missing score) is refused before anything is
sent. A valid matrix is then sent to /api/v1/workspace/import, which
replaces the whole workspace. With --calculate the workspace is evaluated
right after the import. The admin token defaults to VERDICT_ADMIN_TOKEN.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.token == "" {
				opts.token = os.Getenv("VERDICT_ADMIN_TOKEN")
			}
			return runPush(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.apiURL, "api", "http://localhost:8700", "Verdict API base URL")
	cmd.Flags().StringVar(&opts.token, "token", "", "Admin bearer token")
	cmd.Flags().StringVar(&opts.clientID, "client-id", "verdict-cli", "X-Client-ID header value")
	cmd.Flags().BoolVar(&opts.calculate, "calculate", false, "Calculate the workspace after importing")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Validate and print the matrix without sending it")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "HTTP request timeout")

	return cmd
}

func runPush(cmd *cobra.Command, path string, opts pushOptions) error {
	doc, err := loadMatrix(cmd, path)
	if err != nil {
		return err
	}
	criteria, alternatives, err := doc.Build()
	if err != nil {
		return fmt.Errorf("invalid matrix: %w", err)
	}
	if err := saw.Validate(criteria, alternatives); err != nil {
		return &RejectedError{Err: err}
	}
	// Send the resolved ids.
	doc = matrix.Export(criteria, alternatives)

	out := cmd.OutOrStdout()
	if opts.dryRun {
		for _, c := range criteria {
			fmt.Fprintf(out, "criterion %s (type=%s, weight=%g)\n", c.ID, c.Type, c.Weight) //nolint:errcheck
		}
		for _, a := range alternatives {
			fmt.Fprintf(out, "alternative %s (%s)\n", a.ID, a.Name) //nolint:errcheck
		}
		return nil
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode matrix: %w", err)
	}

	c := &pushClient{
		http:     &http.Client{Timeout: opts.timeout},
		baseURL:  strings.TrimRight(opts.apiURL, "/"),
		token:    opts.token,
		clientID: opts.clientID,
	}

	var summary api.WorkspaceSummary
	if err := c.post(cmd.Context(), "/api/v1/workspace/import", body, &summary); err != nil {
		return err
	}
	fmt.Fprintf(out, "imported %d criteria, %d alternatives\n", summary.Criteria, summary.Alternatives) //nolint:errcheck

	if !opts.calculate {
		return nil
	}
	var resp api.EvaluationResponse
	if err := c.post(cmd.Context(), "/api/v1/calculate", nil, &resp); err != nil {
		return err
	}
	for _, r := range resp.Results {
		fmt.Fprintf(out, "%d\t%s\t%s\n", r.Rank, r.AlternativeName, formatScore(r.PreferenceScore, 4)) //nolint:errcheck
	}
	return nil
}

type pushClient struct {
	http     *http.Client
	baseURL  string
	token    string
	clientID string
}

// post sends body and decodes a 200 response into v. A 422 from the server
// is reported as a RejectedError.
func (c *pushClient) post(ctx context.Context, path string, body []byte, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(api.ClientIDHeader, c.clientID)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var e api.ErrorResponse
		msg := strings.TrimSpace(string(data))
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		err := fmt.Errorf("POST %s: %s: %s", path, resp.Status, msg)
		if resp.StatusCode == http.StatusUnprocessableEntity {
			return &RejectedError{Err: err}
		}
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
