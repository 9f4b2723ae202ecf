// Package loadfile reads and writes entity loadfiles: tab-separated text
// whose first column names the entity and whose header declares the
// entity type, like
//
//	entity:sample_id	bam	participant
//	sample-001	gs://bucket/s1.bam	p-1
//
// The header prefix selects the import mode: "entity:" creates or
// overwrites entities, "update:" patches attributes of existing ones,
// and "membership:" edits set membership.
package loadfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrMalformed = errors.New("malformed loadfile")

// DefaultChunkSize is how many rows go into one upload request.
const DefaultChunkSize = 500

type Kind string

const (
	Entity     Kind = "entity"
	Update     Kind = "update"
	Membership Kind = "membership"
)

// Header is the parsed first line of a loadfile.
type Header struct {
	Kind       Kind
	EntityType string
	Columns    []string
}

// Line renders the header back to its loadfile form.
func (h Header) Line() string {
	cols := append(
		[]string{fmt.Sprintf("%s:%s_id", h.Kind, h.EntityType)},
		h.Columns...,
	)
	return strings.Join(cols, "\t")
}

// ParseHeader validates and parses a loadfile header line.
func ParseHeader(line string) (Header, error) {
	cols := strings.Split(strings.TrimRight(line, "\r\n"), "\t")
	kind, idcol, ok := strings.Cut(cols[0], ":")
	if !ok {
		return Header{}, fmt.Errorf(
			"%w: header should start with entity:, update: or membership: (actual: %q)",
			ErrMalformed, cols[0],
		)
	}
	k := Kind(kind)
	switch k {
	case Entity, Update, Membership:
		// ok
	default:
		return Header{}, fmt.Errorf("%w: unknown header prefix %q", ErrMalformed, kind)
	}
	etype, found := strings.CutSuffix(idcol, "_id")
	if !found || etype == "" {
		return Header{}, fmt.Errorf(
			"%w: the first column should be named <entity type>_id (actual: %q)",
			ErrMalformed, idcol,
		)
	}
	return Header{Kind: k, EntityType: etype, Columns: cols[1:]}, nil
}

// Document is a whole loadfile, parsed.
type Document struct {
	Header Header

	// Rows hold data lines, verbatim, without line terminators.
	Rows []string
}

// Read parses a loadfile. Every row must have exactly as many columns as
// the header; blank lines are skipped.
func Read(r io.Reader) (Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("%w: empty file", ErrMalformed)
	}
	header, err := ParseHeader(scanner.Text())
	if err != nil {
		return Document{}, err
	}

	width := len(header.Columns) + 1
	rows := []string{}
	lineno := 1
	for scanner.Scan() {
		lineno += 1
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if actual := len(strings.Split(line, "\t")); actual != width {
			return Document{}, fmt.Errorf(
				"%w: line %d has %d columns (header has %d)",
				ErrMalformed, lineno, actual, width,
			)
		}
		rows = append(rows, line)
	}
	if err := scanner.Err(); err != nil {
		return Document{}, err
	}
	return Document{Header: header, Rows: rows}, nil
}

// Chunks splits the document into upload-sized loadfiles, each carrying
// the header line and at most size rows.
func (d Document) Chunks(size int) []string {
	if size <= 0 {
		size = DefaultChunkSize
	}

	chunks := []string{}
	header := d.Header.Line()
	for start := 0; start < len(d.Rows); start += size {
		end := min(start+size, len(d.Rows))
		lines := append([]string{header}, d.Rows[start:end]...)
		chunks = append(chunks, strings.Join(lines, "\n")+"\n")
	}
	return chunks
}
