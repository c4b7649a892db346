package utils

import (
	"fmt"
	"runtime"

	"github.com/dustin/go-humanize"
)

func GetMemUsage() string {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	// For info on each, see: https://golang.org/pkg/runtime/#MemStats
	return fmt.Sprintf("Alloc = %s TotalAlloc = %s Sys = %s NumGC = %v",
		humanize.IBytes(m.Alloc), humanize.IBytes(m.TotalAlloc), humanize.IBytes(m.Sys), m.NumGC)
}

// Count formats a count with thousands separators for log output
func Count(n int) string {
	return humanize.Comma(int64(n))
}
