// Copyright (c) 2025, soup and the srtran-gateway contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package srt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoSubtitles is returned by Parse when the input holds no complete block.
var ErrNoSubtitles = errors.New("no valid subtitles found")

// Subtitle represents a single subtitle block in an SRT document
type Subtitle struct {
	Index int
	Start string
	End   string
	Text  []string
}

// Parse reads an SRT document and returns its blocks in order.
// A block starts at a numeric line that opens the input or follows a blank
// line. Blocks without a timestamp line are dropped.
func Parse(r io.Reader) ([]Subtitle, error) {
	var subtitles []Subtitle
	var current *Subtitle
	afterBlank := true

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(scanner.Text(), "\ufeff"))

		if line == "" {
			afterBlank = true
			continue
		}
		opensBlock := afterBlank
		afterBlank = false

		// only the first line after a blank can be an index, any other number is text
		if index, err := strconv.Atoi(line); err == nil && opensBlock {
			if current != nil && current.Start != "" {
				subtitles = append(subtitles, *current)
			}
			current = &Subtitle{Index: index}
			continue
		}

		if current == nil {
			continue
		}

		if current.Start == "" {
			if start, end, ok := strings.Cut(line, " --> "); ok {
				current.Start = strings.TrimSpace(start)
				current.End = strings.TrimSpace(end)
			}
			continue
		}

		current.Text = append(current.Text, line)
	}

	if current != nil && current.Start != "" {
		subtitles = append(subtitles, *current)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading subtitles: %w", err)
	}

	if len(subtitles) == 0 {
		return nil, ErrNoSubtitles
	}

	return subtitles, nil
}

// Format writes subtitles back out in SRT form, one blank line between blocks.
func Format(w io.Writer, subtitles []Subtitle) error {
	writer := bufio.NewWriter(w)
	for i, sub := range subtitles {
		if _, err := fmt.Fprintf(writer, "%d\n%s --> %s\n", sub.Index, sub.Start, sub.End); err != nil {
			return fmt.Errorf("failed to write block header: %w", err)
		}

		for _, line := range sub.Text {
			if _, err := fmt.Fprintf(writer, "%s\n", line); err != nil {
				return fmt.Errorf("failed to write text: %w", err)
			}
		}

		if i < len(subtitles)-1 {
			if err := writer.WriteByte('\n'); err != nil {
				return fmt.Errorf("failed to write separator: %w", err)
			}
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush writer: %w", err)
	}

	return nil
}
