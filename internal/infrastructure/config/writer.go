package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

var tableHeader = regexp.MustCompile(`^\s*\[([^\]]+)\]\s*$`)

// WriteConfigOrdered encodes cfg as TOML with its tables sorted by name,
// so regenerated files diff cleanly.
func WriteConfigOrdered(cfg *Config, path string) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sortTables(buf.String())), filePerm); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// sortTables orders TOML tables by their dotted name. Keys before the
// first table stay on top. Sub-tables sort right after their parent since
// "a" < "a.b" < "b".
func sortTables(content string) string {
	type table struct {
		name  string
		lines []string
	}

	var (
		top    []string
		tables []table
	)
	for _, line := range strings.Split(content, "\n") {
		if m := tableHeader.FindStringSubmatch(line); m != nil {
			tables = append(tables, table{name: m[1], lines: []string{line}})
			continue
		}
		if len(tables) == 0 {
			top = append(top, line)
			continue
		}
		last := &tables[len(tables)-1]
		last.lines = append(last.lines, line)
	}

	sort.SliceStable(tables, func(i, j int) bool { return tables[i].name < tables[j].name })

	var b strings.Builder
	writeBlock := func(lines []string) {
		block := strings.Trim(strings.Join(lines, "\n"), "\n")
		if block == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(block)
	}
	writeBlock(top)
	for _, t := range tables {
		writeBlock(t.lines)
	}
	if b.Len() == 0 {
		return ""
	}
	b.WriteString("\n")
	return b.String()
}
