package tinytest

import (
	"fmt"
	"io"
)

// PrintResults writes the message blocks and the totals of results to w.
func PrintResults(w io.Writer, results TestResults) {
	printBlock(w, "Skipped:", "🚧Skipped: ", results.skipMessages)
	printBlock(w, "Failures:", "❌FAILED: ", results.failureMessages)
	printBlock(w, "Errors:", "🔥ERROR: ", results.errorMessages)

	fmt.Fprintf(w, "Total tests: %d\n", results.total)
	fmt.Fprintf(w, "Passed:      %d ✅\n", results.passed)
	fmt.Fprintf(w, "Failed:      %d ❌\n", results.failed)
	fmt.Fprintf(w, "Skipped:     %d 🚧\n", results.skipped)
	fmt.Fprintf(w, "Errors:      %d 🔥\n", results.errors)
}

func printBlock(w io.Writer, title, prefix string, messages []string) {
	if len(messages) == 0 {
		return
	}
	fmt.Fprintln(w, title)
	for _, m := range messages {
		fmt.Fprintln(w, prefix+m)
	}
}
