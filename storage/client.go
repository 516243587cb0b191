// Package storage provides the local backing store for the doctor CLI's
// health-check and type-bundle publication contract. spec.md treats the
// production store (CxdbClient) as an external collaborator; this package
// is the dev-mode implementation named in SPEC_FULL.md so `doctor` has
// something concrete to probe.
package storage

import "context"

// TypeBundle is the artifact doctor publishes after a successful health
// check: a content-addressed marker that downstream tooling can use to
// confirm which schema version a store instance is running.
type TypeBundle struct {
	ID          string
	ContentHash string
	Version     string
}

// CxdbClient is the storage contract spec.md §1 names as an external
// collaborator. Implementations back the `doctor` subcommand: HealthCheck
// confirms the store is reachable and schema-migrated, PublishTypeBundle
// records the current type bundle for downstream consumers.
type CxdbClient interface {
	HealthCheck(ctx context.Context) error
	PublishTypeBundle(ctx context.Context, version string) (TypeBundle, error)
	Close() error
}
