// Package main is an example of using analyzer as a library
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/erh/goabcc/analyzer"
	"github.com/erh/goabcc/common"
)

func main() {
	err := realMain()
	if err != nil {
		panic(err)
	}
}

func realMain() error {
	if len(os.Args) < 3 {
		return errors.New("usage: abccexport <capture> <out.csv> [all|message|process]")
	}
	mode := analyzer.ExportAllRecords
	if len(os.Args) >= 4 {
		var err error
		if mode, err = analyzer.ParseExportMode(os.Args[3]); err != nil {
			return err
		}
	}

	logger := common.NewLogger(os.Stderr)
	in, err := os.Open(os.Args[1])
	if err != nil {
		return err
	}
	//nolint:errcheck
	defer in.Close()

	capture, err := common.ReadCapture(in, nil, logger)
	if err != nil {
		return err
	}
	ana, err := analyzer.NewAnalyzer(analyzer.NewConfig(logger), capture)
	if err != nil {
		return err
	}
	ana.SetProgressFunc(func(done, total uint64) bool {
		if done == total {
			fmt.Fprintf(os.Stderr, "exported %d records\n", total)
		}
		return false
	})
	return ana.Export(context.Background(), os.Args[2], analyzer.Hexadecimal, mode)
}
