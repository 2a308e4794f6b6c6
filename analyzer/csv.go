package analyzer

import (
	"strings"
)

// CsvSafe returns value as a single cell of a file split on delimiter. The
// ASCII rendering markers become the characters they stand for, and the
// result is quoted when it contains the delimiter, a quote or a line break.
func CsvSafe(value, delimiter string) string {
	value = ExpandMarkers(value)
	if !strings.Contains(value, delimiter) && !strings.ContainsAny(value, "\"\r\n") {
		return value
	}
	return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
}

// exportRow assembles one line of a per packet export. Head and middle
// cells are fixed; tail cells are positional. A skipped tail position is
// owed as an empty cell and paid before the next later cell is written.
type exportRow struct {
	delim  string
	ch     string
	active bool

	head   []string
	middle []string
	tail   strings.Builder
	next   int
}

func newExportRow(delim, ch string, middleCells int) *exportRow {
	return &exportRow{delim: delim, ch: ch, middle: make([]string, middleCells)}
}

// start opens the row with its channel, time and packet cells.
func (r *exportRow) start(time, packet string) {
	r.active = true
	r.head = []string{r.ch, time, packet}
}

// set fills a middle cell.
func (r *exportRow) set(i int, v string) {
	r.middle[i] = CsvSafe(v, r.delim)
}

// put writes v at tail position pos. A position already passed appends at
// the next free one.
func (r *exportRow) put(pos int, v string) {
	if pos < r.next {
		pos = r.next
	}
	for ; r.next < pos; r.next++ {
		r.tail.WriteString(r.delim)
	}
	r.tail.WriteString(r.delim)
	r.tail.WriteString(CsvSafe(v, r.delim))
	r.next = pos + 1
}

// line returns the finished row, padded to at least minTail tail cells.
func (r *exportRow) line(minTail int) string {
	var b strings.Builder
	b.WriteString(strings.Join(r.head, r.delim))
	for _, cell := range r.middle {
		b.WriteString(r.delim)
		b.WriteString(cell)
	}
	b.WriteString(r.tail.String())
	for n := r.next; n < minTail; n++ {
		b.WriteString(r.delim)
	}
	b.WriteByte('\n')
	return b.String()
}

func (r *exportRow) reset() {
	r.active = false
	r.head = nil
	for i := range r.middle {
		r.middle[i] = ""
	}
	r.tail.Reset()
	r.next = 0
}

// headerLine joins column names into a header row.
func headerLine(delim string, columns ...string) string {
	cells := make([]string, len(columns))
	for i, c := range columns {
		cells[i] = CsvSafe(c, delim)
	}
	return strings.Join(cells, delim) + "\n"
}
