package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrinter_StatusMarks(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)

	p.Status(StatusDone, "Loan created. ID: %s", "L00001")
	p.Status(StatusQueued, "No copies available")
	p.Status(StatusFailed, "borrow %s: %s", "978-1", "book not found")
	p.Status(StatusNotice, "Last action: RETURN L00001")

	assert.Equal(t, "✓ Loan created. ID: L00001\n"+
		"⚠ No copies available\n"+
		"✗ borrow 978-1: book not found\n"+
		"ℹ Last action: RETURN L00001\n", buf.String())
}

func TestPrinter_TableAlignsMultibyteCells(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)

	p.Table([]string{"Name", "Country"}, [][]string{
		{"Ñandú Ediciones", "Argentina"},
		{"Planeta", "España"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Name             Country", lines[0])
	assert.Equal(t, strings.Repeat("-", len([]rune(lines[0]))), lines[1])
	assert.Equal(t, "Ñandú Ediciones  Argentina", lines[2])
	assert.Equal(t, "Planeta          España", lines[3])
}

func TestPrinter_MutedPlain(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, true).Muted("No %s registered.", "genres")
	assert.Equal(t, "No genres registered.\n", buf.String())
}
