package fs

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/lingua"
)

// exportBatchSize is the number of words read from the store per query.
const exportBatchSize = 500

// Exporter writes reviewed word definitions as tab-separated rows, one
// row per definition, for use as training data.
type Exporter struct {
	Words lingua.WordService

	// Alphabet limits the export to one letter section when set.
	Alphabet string
}

// Export writes a header and one "word, definition, alphabet" row per
// definition to w and returns the number of rows written. Identical
// word/definition pairs are written once.
func (e *Exporter) Export(ctx context.Context, w io.Writer) (int, error) {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write([]string{"word", "definition", "alphabet"}); err != nil {
		return 0, err
	}

	filter := lingua.WordFilter{Limit: exportBatchSize}
	if e.Alphabet != "" {
		filter.Alphabet = &e.Alphabet
	}

	seen := make(rowSet)
	rows := 0
	for {
		words, err := e.Words.FindWords(ctx, filter)
		if err != nil {
			return rows, err
		}

		for _, word := range words {
			for _, def := range word.Definitions {
				if !seen.add(word.Text, def) {
					continue
				}

				if err := cw.Write([]string{word.Text, def, word.Alphabet}); err != nil {
					return rows, err
				}
				rows++
			}
		}

		if len(words) < exportBatchSize {
			break
		}
		filter.Offset += len(words)
	}

	cw.Flush()
	return rows, cw.Error()
}

// ExportFile writes the export to path. Rows are written to a temporary
// file that replaces path only once the export succeeds.
func (e *Exporter) ExportFile(ctx context.Context, path string) (int, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	rows, err := e.Export(ctx, tmp)
	if err != nil {
		tmp.Close()
		return rows, err
	}
	if err := tmp.Close(); err != nil {
		return rows, err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return rows, err
	}
	return rows, nil
}

// rowSet records exported word/definition pairs. Pairs are bucketed by
// hash and compared in full, so a hash collision never drops a row.
type rowSet map[uint64][]string

// add reports whether the pair was new.
func (s rowSet) add(word, def string) bool {
	key := word + "\x00" + def
	h := xxhash.Sum64String(key)
	for _, k := range s[h] {
		if k == key {
			return false
		}
	}
	s[h] = append(s[h], key)
	return true
}
