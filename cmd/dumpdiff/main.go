package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/leyki/dumputil/dumpscan"
	"github.com/leyki/dumputil/pkg/conlog"
	"github.com/leyki/dumputil/pkg/dumpfile"
)

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: dumpdiff BASE UPDATED")
		os.Exit(2)
	}

	base, err := loadRecord(flag.Arg(0))
	if err != nil {
		conlog.Error("load base:", err)
		os.Exit(1)
	}
	updated, err := loadRecord(flag.Arg(1))
	if err != nil {
		conlog.Error("load updated:", err)
		os.Exit(1)
	}

	delta := dumpscan.DiffOrdered(base, updated)

	var keys []string
	width := 0
	for k := range delta.All() {
		keys = append(keys, k)
		if w := runewidth.StringWidth(k); w > width {
			width = w
		}
	}
	if len(keys) == 0 {
		conlog.Log("no changed fields")
		return
	}
	for _, k := range keys {
		v, _ := delta.Get(k)
		fmt.Printf("%s  %v\n", runewidth.FillRight(k, width), v)
	}
}

func loadRecord(path string) (*sequencedmap.Map[string, any], error) {
	var (
		v   any
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		v, err = dumpfile.LoadYAML(path)
	default:
		v, err = dumpfile.LoadJSON(path)
	}
	if err != nil {
		return nil, err
	}
	rec, ok := v.(*sequencedmap.Map[string, any])
	if !ok {
		return nil, fmt.Errorf("%s: top-level value is %s, want record", path, dumpscan.KindOf(v))
	}
	return rec, nil
}
