package main

import (
	"fmt"
	"io"

	"arrowgraph/internal/observ"
)

func printTimings(out io.Writer, report observ.Report) {
	if out == nil {
		return
	}
	for _, p := range report.Phases {
		if p.Count > 1 {
			fmt.Fprintf(out, "%s %.1f ms (%d files)\n", p.Name, p.DurationMS, p.Count)
			continue
		}
		fmt.Fprintf(out, "%s %.1f ms\n", p.Name, p.DurationMS)
	}
	fmt.Fprintf(out, "total %.1f ms\n", report.TotalMS)
}
