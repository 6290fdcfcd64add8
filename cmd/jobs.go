package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/gridironlabs/nflsim/internal/echo"
	"github.com/gridironlabs/nflsim/internal/jobs"
)

// JobsCmd groups commands that drive a running server's background
// simulation jobs. Unlike teams/schedule/standings/simulate, job state is
// process-wide and lives in the server's jobs.Registry, so these commands
// talk HTTP rather than opening the local stores directly.
func JobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Manage background simulation jobs",
		Long:  "Start, poll, and cancel background Monte Carlo simulation jobs on a running server.",
	}
	cmd.AddCommand(JobsStartCmd())
	cmd.AddCommand(JobsGetCmd())
	cmd.AddCommand(JobsCancelCmd())
	return cmd
}

func JobsStartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a background simulation job",
		RunE:  startJob,
	}
	cmd.Flags().Int("num-simulations", 10000, "Number of trials to run (1..1000000)")
	cmd.Flags().Int64("seed", 0, "Random seed (0 = nondeterministic)")
	return cmd
}

func startJob(cmd *cobra.Command, args []string) error {
	n, _ := cmd.Flags().GetInt("num-simulations")
	seed, _ := cmd.Flags().GetInt64("seed")

	body := struct {
		NumSimulations int    `json:"num_simulations"`
		RandomSeed     *int64 `json:"random_seed,omitempty"`
	}{NumSimulations: n}
	if seed != 0 {
		body.RandomSeed = &seed
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("error: %w", err)
	}

	job, err := postJob(baseURL+"simulation-jobs", payload)
	if err != nil {
		return err
	}
	printJob(job)
	return nil
}

func JobsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get a background simulation job's state",
		Args:  cobra.ExactArgs(1),
		RunE:  getJob,
	}
}

func getJob(cmd *cobra.Command, args []string) error {
	job, err := requestJob(http.MethodGet, baseURL+"simulation-jobs/"+args[0], nil)
	if err != nil {
		return err
	}
	printJob(job)
	return nil
}

func JobsCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a pending or running simulation job",
		Args:  cobra.ExactArgs(1),
		RunE:  cancelJob,
	}
}

func cancelJob(cmd *cobra.Command, args []string) error {
	job, err := requestJob(http.MethodDelete, baseURL+"simulation-jobs/"+args[0], nil)
	if err != nil {
		return err
	}
	printJob(job)
	return nil
}

func postJob(url string, payload []byte) (*jobs.Job, error) {
	return requestJob(http.MethodPost, url, bytes.NewReader(payload))
}

func requestJob(method, url string, body io.Reader) (*jobs.Job, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error: failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error: server is not running or unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error: failed to read response: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var errBody struct {
			Error string `json:"error"`
		}
		if jsonErr := json.Unmarshal(data, &errBody); jsonErr == nil && errBody.Error != "" {
			return nil, fmt.Errorf("error: %s", errBody.Error)
		}
		return nil, fmt.Errorf("error: server returned status %s", resp.Status)
	}

	var job jobs.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("error: failed to parse response: %w", err)
	}
	return &job, nil
}

func printJob(job *jobs.Job) {
	echo.Header("Simulation Job")
	echo.Infof("  id:       %s", job.ID)
	echo.Infof("  state:    %s", job.State)
	echo.Infof("  progress: %d%%", job.Progress)
	if job.Err != "" {
		echo.Errorf("  error:    %s", job.Err)
	}
	if job.Result != nil {
		echo.Info("")
		echo.Successf("✓ %d trials complete", job.Result.Trials)
	}
}
