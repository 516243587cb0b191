// Command orchestra is the CLI surface around the pipeline execution
// engine: running pipelines is wired through the graph package directly by
// embedding callers, while this binary carries the operational glue named
// in spec.md §6 — currently just `doctor`.
package main

import (
	"fmt"
	"os"
)

func main() {
	err := NewRootCmd().Execute()
	if err == nil {
		return
	}
	if ee, ok := err.(exitError); ok {
		os.Exit(ee.code)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
