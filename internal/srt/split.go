// Copyright (c) 2025, soup and the srtran-gateway contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package srt

import "strings"

// Split breaks a subtitle document into chunks of roughly charLimit
// characters. A chunk only ends at a blank line, and only once appending
// that line would push the current chunk past charLimit, so subtitle blocks
// are never cut in half. Chunks are trimmed and returned in document order.
//
// A charLimit <= 0 disables splitting.
func Split(content string, charLimit int) []string {
	if charLimit <= 0 {
		if trimmed := strings.TrimSpace(content); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}

	var (
		parts   []string
		current strings.Builder
	)

	for _, line := range strings.Split(content, "\n") {
		if current.Len()+len(line)+1 > charLimit && strings.TrimSpace(line) == "" {
			if part := strings.TrimSpace(current.String()); part != "" {
				parts = append(parts, part)
			}
			current.Reset()
		}
		current.WriteString(line)
		current.WriteByte('\n')
	}

	if part := strings.TrimSpace(current.String()); part != "" {
		parts = append(parts, part)
	}

	return parts
}
