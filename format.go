package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"vistacli/internal/vista"
)

// statusf prints a status message to stderr, keeping stdout clean for data
// output (titles, CSV rows, JSON).
func statusf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}

// sortFoldersByTitle orders folders the way the web UI shows them:
// locale-aware, case-insensitive collation rather than byte order.
func sortFoldersByTitle(folders []vista.Folder) {
	c := collate.New(language.English, collate.IgnoreCase)

	sort.SliceStable(folders, func(i, j int) bool {
		return c.CompareString(folders[i].Title, folders[j].Title) < 0
	})
}

// printFolderTitles writes one title per line in collated order. The input
// slice is left untouched.
func printFolderTitles(w io.Writer, folders []vista.Folder) {
	sorted := make([]vista.Folder, len(folders))
	copy(sorted, folders)
	sortFoldersByTitle(sorted)

	for i := range sorted {
		fmt.Fprintln(w, sorted[i].Title)
	}
}

// printFoldersCSV writes title,id,created_at rows without a header, ready
// for shell pipelines. Rows keep the server's order.
func printFoldersCSV(w io.Writer, folders []vista.Folder) error {
	cw := csv.NewWriter(w)

	for i := range folders {
		row := []string{folders[i].Title, folders[i].ID, folders[i].CreatedAt}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing CSV output: %w", err)
	}

	return nil
}

// printFoldersJSON emits the vendor's folder objects untouched, as an
// indented JSON array. An empty list prints as [].
func printFoldersJSON(w io.Writer, folders []vista.Folder) error {
	raws := make([]json.RawMessage, 0, len(folders))
	for i := range folders {
		raws = append(raws, folders[i].Raw)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if err := enc.Encode(raws); err != nil {
		return fmt.Errorf("encoding folder JSON: %w", err)
	}

	return nil
}
