package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/erh/goabcc/analyzer"
	"github.com/erh/goabcc/common"
)

// print writes the tabular log and the bubble layers of every record.
func (c *CLI) print(ctx context.Context, ana *analyzer.Analyzer, store common.RecordStore) error {
	w := bufio.NewWriter(c.out)
	for i := uint64(0); i < store.RecordCount(); i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if c.config.ShowBubbles {
			c.printBubbles(w, ana, store, i)
		}
		if c.config.ShowTabular {
			for _, line := range ana.RenderTabularText(i, c.config.Base) {
				fmt.Fprintln(w, line)
			}
		}
	}
	return w.Flush()
}

// printBubbles prints one line per channel the record renders on: the
// index, the channel and the layers from least to most detail.
func (c *CLI) printBubbles(w *bufio.Writer, ana *analyzer.Analyzer, store common.RecordStore, index uint64) {
	rec := store.Record(index)
	for ch := common.Channel(0); ch < common.NumChannels; ch++ {
		if c.config.OnlyChannel >= 0 && int(ch) != c.config.OnlyChannel {
			continue
		}
		if rec.Kind.IsError() && ch != rec.Channel {
			// Anomalies are reported on both directions; print them once.
			continue
		}
		layers := ana.RenderBubbleText(index, ch, c.config.Base)
		if len(layers) == 0 {
			continue
		}
		fmt.Fprintf(w, "%8d %s %s\n", index, ch, strings.Join(layers, "\t"))
	}
}
