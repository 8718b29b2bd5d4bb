package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-runewidth"

	"github.com/leyki/dumputil/dumpscan"
	"github.com/leyki/dumputil/pkg/conlog"
	"github.com/leyki/dumputil/pkg/dumpfile"
)

func main() {
	key := flag.String("key", "", "key name to search for")
	flatten := flag.Bool("flatten", false, "print the flattened leaves of the dump instead of searching")
	debug := flag.Bool("debug", false, "dump the loaded object graph before scanning")
	logLevel := flag.String("log", "info", "log level: error, warn, info, debug")
	flag.Parse()

	conlog.SetLevel(conlog.ParseLevel(*logLevel))

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: dumpscan [-key NAME] [-flatten] [-debug] FILE")
		os.Exit(2)
	}
	path := flag.Arg(0)

	root, err := loadDump(path)
	if err != nil {
		conlog.Error("load failed:", err)
		os.Exit(1)
	}

	if *debug {
		// spew follows pointers cycle-safely, so even self-referential
		// dumps print.
		cs := spew.ConfigState{Indent: "  "}
		cs.Dump(root)
	}

	if *flatten {
		n := 0
		for leaf := range dumpscan.All(root) {
			fmt.Printf("%4d: %v\n", n, leaf)
			n++
		}
		conlog.Debug("flattened", n, "leaves")
		return
	}

	if *key == "" {
		fmt.Fprintln(os.Stderr, "dumpscan: -key or -flatten required")
		os.Exit(2)
	}

	entries := dumpscan.Search(root, *key)
	if len(entries) == 0 {
		conlog.Warn("no node found under key", *key)
		return
	}
	printEntries(entries)
}

func loadDump(path string) (any, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return dumpfile.LoadYAML(path)
	default:
		return dumpfile.LoadJSON(path)
	}
}

// printEntries prints one row per result entry, padding each key column
// to the widest cell so rows line up even with wide runes in key names.
func printEntries(entries [][]string) {
	var widths []int
	for _, e := range entries {
		for i, k := range e {
			w := runewidth.StringWidth(k)
			if i >= len(widths) {
				widths = append(widths, w)
			} else if w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i, e := range entries {
		cells := make([]string, len(e))
		for j, k := range e {
			cells[j] = runewidth.FillRight(k, widths[j])
		}
		fmt.Printf("%3d: %s\n", i, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}
