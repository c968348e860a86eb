package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"l5cond/internal/driver"
)

// readSingleItem returns the payload named by --data, a file argument, or stdin.
func readSingleItem(cmd *cobra.Command, args []string) (driver.Item, error) {
	if data, _ := cmd.Flags().GetString("data"); data != "" {
		if len(args) > 0 {
			return driver.Item{}, fmt.Errorf("--data and a file argument are mutually exclusive")
		}
		return driver.Item{Name: "data", Text: data}, nil
	}
	if len(args) == 0 || args[0] == "-" {
		text, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return driver.Item{}, fmt.Errorf("failed to read stdin: %w", err)
		}
		return driver.Item{Name: "stdin", Text: string(text)}, nil
	}
	text, err := os.ReadFile(args[0])
	if err != nil {
		return driver.Item{}, fmt.Errorf("failed to read payload: %w", err)
	}
	return driver.Item{Name: args[0], Text: string(text)}, nil
}

// readBatchItems splits every input into one payload per non-empty line.
// Lines starting with '#' are comments.
func readBatchItems(cmd *cobra.Command, args []string) ([]driver.Item, error) {
	if len(args) == 0 {
		return scanItems("stdin", cmd.InOrStdin())
	}
	var items []driver.Item
	for _, path := range args {
		if path == "-" {
			more, err := scanItems("stdin", cmd.InOrStdin())
			if err != nil {
				return nil, err
			}
			items = append(items, more...)
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		more, err := scanItems(path, f)
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
		if err != nil {
			return nil, err
		}
		items = append(items, more...)
	}
	return items, nil
}

func scanItems(source string, r io.Reader) ([]driver.Item, error) {
	var items []driver.Item
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		items = append(items, driver.Item{Name: fmt.Sprintf("%s:%d", source, line), Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return items, nil
}
