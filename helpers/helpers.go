// Package helpers holds small formatting and filesystem utilities shared by
// the command-line tools in this repository.
package helpers

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// FormatBytes formats bytes into human-readable format
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// FormatDuration formats a phase duration for the operator log.
//
// Formatting rules:
//   - below 1µs: whole nanoseconds ("123ns")
//   - below 1ms: whole microseconds ("456µs")
//   - below 1s: milliseconds, up to 3 decimals ("12.5ms")
//   - below 1m: seconds, up to 2 decimals ("45.67s")
//   - otherwise: minutes and seconds ("3m 4.5s")
func FormatDuration(d time.Duration) string {
	if d < 0 {
		return "-" + FormatDuration(-d)
	}

	switch {
	case d == 0:
		return "0s"
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return formatFloat(float64(d)/float64(time.Millisecond), 3) + "ms"
	case d < time.Minute:
		return formatFloat(d.Seconds(), 2) + "s"
	}

	mins := int(d.Minutes())
	rest := (d - time.Duration(mins)*time.Minute).Seconds()
	if rest < 0.01 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dm %ss", mins, formatFloat(rest, 2))
}

// formatFloat formats a float with up to maxDecimals, trimming trailing zeros.
func formatFloat(value float64, maxDecimals int) string {
	s := fmt.Sprintf("%.*f", maxDecimals, value)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	return s
}

// FormatNumber formats a number with commas for readability
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
