package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/EndlessCommerce/orchestra-sub001/storage"
)

// typeBundleVersion identifies the schema version doctor publishes on a
// healthy store, mirroring the original CLI's fixed BUNDLE_ID marker.
const typeBundleVersion = "orchestra-types-v1"

func newDoctorCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check storage connectivity and publish the type bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbPath == "" {
				home, err := os.UserHomeDir()
				if err != nil {
					return fmt.Errorf("resolve home directory: %w", err)
				}
				dbPath = filepath.Join(home, ".orchestra", "orchestra.db")
			}
			if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
				return fmt.Errorf("create storage directory: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Storage path: %s\n", dbPath)

			client, err := storage.NewSQLiteClient(dbPath)
			if err != nil {
				fmt.Fprintf(out, "Storage health: FAILED — %s\n\n", err)
				fmt.Fprintf(out, "To start with a fresh store:\n  rm %s\n", dbPath)
				return exitError{code: 1}
			}
			defer client.Close()

			return runDoctorChecks(cmd.Context(), client, out)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "Path to the local storage database (default ~/.orchestra/orchestra.db)")
	return cmd
}

// runDoctorChecks probes the store and publishes the type bundle, mirroring
// cli/doctor.py's two-stage health-check/publish sequence: either failure
// reports a diagnostic and an exitError; success falls through with nil.
func runDoctorChecks(ctx context.Context, client storage.CxdbClient, out io.Writer) error {
	if err := client.HealthCheck(ctx); err != nil {
		fmt.Fprintf(out, "Storage health: FAILED — %s\n", err)
		return exitError{code: 1}
	}
	fmt.Fprintln(out, "Storage health: OK")

	bundle, err := client.PublishTypeBundle(ctx, typeBundleVersion)
	if err != nil {
		fmt.Fprintf(out, "Type bundle: FAILED — %s\n", err)
		return exitError{code: 1}
	}
	fmt.Fprintf(out, "Type bundle: OK (%s registered, hash %s)\n", bundle.ID, bundle.ContentHash)
	return nil
}

// exitError carries a process exit code through cobra's error-returning
// RunE without adding its own message: the diagnostic is already written to
// stdout by runDoctorChecks before this is returned.
type exitError struct{ code int }

func (e exitError) Error() string { return "" }
