// Package extract selects the newest quarterly report folder and loads its
// CSV files into named in-memory tables.
package extract

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/frahmantamala/flowcase-warehouse/internal"
)

// Row is one CSV record keyed by header name.
type Row map[string]string

func (r Row) Get(column string) string {
	return r[column]
}

// Table is one report file loaded in full.
type Table struct {
	Columns []string
	Rows    []Row
}

func (t Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Result carries the chosen folder and every table keyed by filename
// (e.g. "user_report.csv").
type Result struct {
	DataDir string
	Tables  map[string]Table
}

func (r Result) Table(filename string) (Table, bool) {
	t, ok := r.Tables[filename]
	return t, ok
}

var quarterFolderPattern = regexp.MustCompile(`^Q([1-4])[_ ]?(\d{4})$`)

// FindLatestQuarterFolder picks the subfolder of base with the highest
// (year, quarter) pair. Folder names are Q{1-4}{YYYY}, optionally with a
// separator, so Q1 2024 ranks above Q4 2023.
func FindLatestQuarterFolder(base string) (string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return "", internal.ErrNoQuarterFolders.WithCause(err)
	}

	type candidate struct {
		year    int
		quarter int
		path    string
	}
	var candidates []candidate
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m := quarterFolderPattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		var c candidate
		fmt.Sscanf(m[1], "%d", &c.quarter)
		fmt.Sscanf(m[2], "%d", &c.year)
		c.path = filepath.Join(base, entry.Name())
		candidates = append(candidates, c)
	}
	if len(candidates) == 0 {
		return "", internal.ErrNoQuarterFolders.WithCause(fmt.Errorf("base folder %s", base))
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].year != candidates[j].year {
			return candidates[i].year < candidates[j].year
		}
		return candidates[i].quarter < candidates[j].quarter
	})
	latest := candidates[len(candidates)-1]
	slog.Info("selected quarterly report folder",
		"folder", latest.path, "quarter", latest.quarter, "year", latest.year,
		"candidates", len(candidates))
	return latest.path, nil
}

// LoadReports reads every *.csv in dir into a Table. A file that cannot be
// read or parsed is skipped with a warning; short rows are padded so every
// row exposes the full header.
func LoadReports(dir string) (map[string]Table, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, internal.NewInternalError("listing report files", err)
	}
	sort.Strings(paths)

	tables := make(map[string]Table, len(paths))
	for _, path := range paths {
		table, err := readCSV(path)
		if err != nil {
			slog.Warn("skipping unreadable report file", "file", filepath.Base(path), "error", err)
			continue
		}
		tables[filepath.Base(path)] = table
		slog.Info("loaded report file",
			"file", filepath.Base(path), "rows", len(table.Rows), "columns", len(table.Columns))
	}
	return tables, nil
}

func readCSV(path string) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return Table{}, err
	}
	if len(records) == 0 {
		return Table{}, nil
	}

	header := records[0]
	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(header))
		for i, column := range header {
			if i < len(record) {
				row[column] = record[i]
			} else {
				row[column] = ""
			}
		}
		rows = append(rows, row)
	}
	return Table{Columns: header, Rows: rows}, nil
}

// Extract runs folder selection and loading for fake-mode runs. In real mode
// the pipeline downloads reports first and extracts from the download folder;
// calling Extract directly with the real source yields an empty placeholder.
func Extract(source internal.DataSource, baseDir string) (Result, error) {
	if source == internal.DataSourceReal {
		slog.Info("real data source selected without a download folder; returning empty result")
		return Result{DataDir: ".", Tables: map[string]Table{}}, nil
	}

	dataDir, err := FindLatestQuarterFolder(baseDir)
	if err != nil {
		return Result{}, err
	}
	tables, err := LoadReports(dataDir)
	if err != nil {
		return Result{}, err
	}
	slog.Info("extract complete", "folder", dataDir, "tables", len(tables))
	return Result{DataDir: dataDir, Tables: tables}, nil
}
