// Package watchlist holds the operator supplied product codes and decides
// whether an order's line items hit them.
package watchlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
)

// SuffixDelimiter separates a base product code from its variant marker.
const SuffixDelimiter = "_"

// CodeSet is immutable once loaded.
type CodeSet struct {
	full map[string]struct{}
	base map[string]struct{}
}

// Base strips the variant suffix: "A100_2" -> "A100".
func Base(code string) string {
	base, _, _ := strings.Cut(code, SuffixDelimiter)
	return base
}

// Load reads a newline-delimited watch-list. A missing file yields an empty set.
func Load(path string) (*CodeSet, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Parse(strings.NewReader(""))
	}
	if err != nil {
		return nil, fmt.Errorf("open watch-list: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*CodeSet, error) {
	cs := &CodeSet{
		full: make(map[string]struct{}),
		base: make(map[string]struct{}),
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		code := strings.TrimSpace(sc.Text())
		if code == "" {
			continue
		}
		cs.full[code] = struct{}{}
		cs.base[Base(code)] = struct{}{}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read watch-list: %w", err)
	}
	return cs, nil
}

func (cs *CodeSet) Len() int { return len(cs.full) }

func (cs *CodeSet) HasFull(code string) bool {
	_, ok := cs.full[code]
	return ok
}

func (cs *CodeSet) HasBase(base string) bool {
	_, ok := cs.base[base]
	return ok
}
