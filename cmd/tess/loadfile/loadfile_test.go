package loadfile_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/tesserabio/tessera/cmd/tess/loadfile"
	"github.com/tesserabio/tessera/pkg/cmp"
	"github.com/tesserabio/tessera/pkg/utils/try"
)

func TestParseHeader(t *testing.T) {
	type When struct {
		line string
	}
	type Then struct {
		want      loadfile.Header
		wantError bool
	}

	theory := func(when When, then Then) func(*testing.T) {
		return func(t *testing.T) {
			h, err := loadfile.ParseHeader(when.line)
			if then.wantError {
				if !errors.Is(err, loadfile.ErrMalformed) {
					t.Errorf("expected ErrMalformed (actual %v)", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if h.Kind != then.want.Kind || h.EntityType != then.want.EntityType {
				t.Errorf("unexpected header (actual,expected): %+v,%+v", h, then.want)
			}
			if !cmp.SliceEq(h.Columns, then.want.Columns) {
				t.Errorf("unexpected columns (actual,expected): %v,%v", h.Columns, then.want.Columns)
			}
		}
	}

	t.Run("an entity header is parsed", theory(
		When{line: "entity:sample_id\tbam\tparticipant"},
		Then{want: loadfile.Header{
			Kind: loadfile.Entity, EntityType: "sample",
			Columns: []string{"bam", "participant"},
		}},
	))
	t.Run("an update header is parsed", theory(
		When{line: "update:sample_id\tbam"},
		Then{want: loadfile.Header{
			Kind: loadfile.Update, EntityType: "sample",
			Columns: []string{"bam"},
		}},
	))
	t.Run("a membership header is parsed", theory(
		When{line: "membership:sample_set_id\tsample"},
		Then{want: loadfile.Header{
			Kind: loadfile.Membership, EntityType: "sample_set",
			Columns: []string{"sample"},
		}},
	))
	t.Run("a header without prefix is rejected", theory(
		When{line: "sample_id\tbam"},
		Then{wantError: true},
	))
	t.Run("an unknown prefix is rejected", theory(
		When{line: "upsert:sample_id\tbam"},
		Then{wantError: true},
	))
	t.Run("a first column not ending in _id is rejected", theory(
		When{line: "entity:sample\tbam"},
		Then{wantError: true},
	))
}

func TestRead(t *testing.T) {
	t.Run("it reads header and rows, skipping blank lines", func(t *testing.T) {
		text := "entity:sample_id\tbam\nsample-001\tgs://b/1.bam\n\nsample-002\tgs://b/2.bam\n"

		doc := try.To(loadfile.Read(strings.NewReader(text))).OrFatal(t)

		if doc.Header.EntityType != "sample" {
			t.Errorf("unexpected entity type: %s", doc.Header.EntityType)
		}
		if !cmp.SliceEq(doc.Rows, []string{
			"sample-001\tgs://b/1.bam",
			"sample-002\tgs://b/2.bam",
		}) {
			t.Errorf("unexpected rows: %v", doc.Rows)
		}
	})

	t.Run("a row with the wrong column count is rejected", func(t *testing.T) {
		text := "entity:sample_id\tbam\nsample-001\n"
		if _, err := loadfile.Read(strings.NewReader(text)); !errors.Is(err, loadfile.ErrMalformed) {
			t.Errorf("expected ErrMalformed (actual %v)", err)
		}
	})

	t.Run("an empty file is rejected", func(t *testing.T) {
		if _, err := loadfile.Read(strings.NewReader("")); !errors.Is(err, loadfile.ErrMalformed) {
			t.Errorf("expected ErrMalformed (actual %v)", err)
		}
	})
}

func TestChunks(t *testing.T) {
	t.Run("every chunk carries the header and at most size rows", func(t *testing.T) {
		rows := make([]string, 0, 7)
		for i := 0; i < 7; i++ {
			rows = append(rows, fmt.Sprintf("sample-%03d\tgs://b/%d.bam", i, i))
		}
		doc := loadfile.Document{
			Header: loadfile.Header{
				Kind: loadfile.Entity, EntityType: "sample", Columns: []string{"bam"},
			},
			Rows: rows,
		}

		chunks := doc.Chunks(3)
		if len(chunks) != 3 {
			t.Fatalf("wrong chunk count: %d", len(chunks))
		}
		for i, chunk := range chunks {
			lines := strings.Split(strings.TrimRight(chunk, "\n"), "\n")
			if lines[0] != "entity:sample_id\tbam" {
				t.Errorf("chunk %d lacks the header: %q", i, lines[0])
			}
			if 3 < len(lines)-1 {
				t.Errorf("chunk %d has too many rows: %d", i, len(lines)-1)
			}
		}
		lastRows := strings.Split(strings.TrimRight(chunks[2], "\n"), "\n")[1:]
		if !cmp.SliceEq(lastRows, []string{"sample-006\tgs://b/6.bam"}) {
			t.Errorf("unexpected last chunk rows: %v", lastRows)
		}
	})

	t.Run("an empty document has no chunks", func(t *testing.T) {
		doc := loadfile.Document{
			Header: loadfile.Header{Kind: loadfile.Entity, EntityType: "sample"},
		}
		if chunks := doc.Chunks(0); len(chunks) != 0 {
			t.Errorf("unexpected chunks: %v", chunks)
		}
	})
}
