package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/TFMV/fw/walk"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	formatText = "text"
	formatTag  = "tag"
	formatJSON = "json"
)

// printer writes one line per entry in the selected format.
type printer struct {
	w      io.Writer
	format string
	indent int
	enc    *json.Encoder
}

// jsonEntry is the record written by the json format.
type jsonEntry struct {
	Path  string `json:"path"`
	Type  string `json:"type"`
	Depth int    `json:"depth"`
	Inode uint64 `json:"inode,omitempty"`
}

func newPrinter(w io.Writer, format string, indent int) (*printer, error) {
	if indent < 0 {
		return nil, fmt.Errorf("%w: negative indent %d", ErrArgument, indent)
	}
	p := &printer{w: w, format: strings.ToLower(format), indent: indent}
	switch p.format {
	case formatText, formatTag:
	case formatJSON:
		p.enc = json.NewEncoder(w)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", ErrArgument, format)
	}
	return p, nil
}

func (p *printer) print(entry walk.Entry) error {
	var err error
	switch p.format {
	case formatTag:
		_, err = fmt.Fprintf(p.w, "entry:'%s'\n", entry.Path)
	case formatJSON:
		err = p.enc.Encode(jsonEntry{
			Path:  entry.Path,
			Type:  entry.Type.String(),
			Depth: entry.Depth,
			Inode: entry.Inode,
		})
	default:
		_, err = fmt.Fprintf(p.w, "%s%s\n", strings.Repeat(" ", entry.Depth*p.indent), entry.Path)
	}
	return err
}

// printSummary writes the traversal counters as one line, with digit
// grouping for large trees.
func printSummary(w io.Writer, root string, stats walk.Stats) {
	mp := message.NewPrinter(language.English)
	mp.Fprintf(w, "root: %s, entries: %d, directories: %d, files: %d, symlinks: %d, other: %d, errors: %d, max depth: %d, elapsed: %v\n",
		root, stats.Entries, stats.Dirs, stats.Files, stats.Symlinks, stats.Other+stats.Unknown,
		stats.Errors, stats.MaxDepth, stats.ElapsedTime)
}
