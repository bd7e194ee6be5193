package csvio

import (
	"io"
	"strings"
	"testing"
)

func TestBOMSkipper(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"with BOM", "\xEF\xBB\xBFProperty Address,City", "Property Address,City"},
		{"without BOM", "Property Address,City", "Property Address,City"},
		{"short input", "ab", "ab"},
		{"empty input", "", ""},
		{"BOM only", "\xEF\xBB\xBF", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewBOMSkipper(strings.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"clean ascii", "Dallas, TX", "Dallas, TX"},
		{"clean multibyte", "Café Plaza", "Café Plaza"},
		{"latin-1 byte", "Caf\xe9 Plaza", "Caf? Plaza"},
		{"lone continuation", "ab\x80cd", "ab?cd"},
		{"truncated sequence at end", "abc\xe2\x82", "abc??"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewUTF8Sanitizer(strings.NewReader(tt.input)))
			if err != nil {
				t.Fatalf("ReadAll: %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// A multi-byte rune split across two reads must survive intact.
func TestUTF8SanitizerSplitRune(t *testing.T) {
	input := "résumé"
	r := NewUTF8Sanitizer(&iotaReader{data: []byte(input)})

	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != input {
		t.Errorf("got %q, want %q", got, input)
	}
}

// iotaReader yields one byte per Read call, forcing worst-case splits.
type iotaReader struct {
	data []byte
}

func (r *iotaReader) Read(p []byte) (int, error) {
	if len(r.data) == 0 {
		return 0, io.EOF
	}
	p[0] = r.data[0]
	r.data = r.data[1:]
	return 1, nil
}

func TestCleanCell(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "4600 Ross Ave", "4600 Ross Ave"},
		{"padded", "  Dallas  ", "Dallas"},
		{"excel formula quote", `="0075001"`, "0075001"},
		{"bare equals", "=SUM", "SUM"},
		{"surrounding quotes", `"Dallas"`, "Dallas"},
		{"single quotes", "'Dallas'", "Dallas"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanCell(tt.in); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewReaderEndToEnd(t *testing.T) {
	input := "\xEF\xBB\xBFProperty Address,City,State\n4600 Ross Ave,Dallas,TX\n123 Main St,Austin\n"

	cr := NewReader(strings.NewReader(input))

	header, err := cr.Read()
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	if header[0] != "Property Address" {
		t.Errorf("first header = %q; BOM not skipped", header[0])
	}

	rows := 0
	for {
		_, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("read row: %v", err)
		}
		rows++
	}
	if rows != 2 {
		t.Errorf("read %d rows, want 2 (ragged row tolerated)", rows)
	}
}

func TestCountingReader(t *testing.T) {
	cr := NewCountingReader(strings.NewReader("hello world"))
	if _, err := io.ReadAll(cr); err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if cr.BytesRead != 11 {
		t.Errorf("BytesRead = %d, want 11", cr.BytesRead)
	}
}
