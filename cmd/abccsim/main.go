// Package main generates synthetic ABCC SPI captures
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/erh/goabcc/common"
)

func main() {
	common.IsCLI.Store(true)
	handleErr(realMain(os.Args))
}

type simArgs struct {
	conf   common.SimulationConfig
	parser common.TextLineParser
	out    string
	sdkLog string
}

func parseArgs(args []string) (*simArgs, error) {
	progNameAsExeced := args[0]
	sa := &simArgs{
		conf:   common.DefaultSimulationConfig(),
		parser: common.TextParserInstance,
	}
	for argIdx := 1; argIdx < len(args); argIdx++ {
		arg := args[argIdx]
		hasNext := argIdx < len(args)-1
		if !hasNext {
			return nil, usage(progNameAsExeced, arg, os.Stdout)
		}
		nextArg := args[argIdx+1]
		argIdx++

		var err error
		//nolint:gocritic
		if strings.EqualFold(arg, "-n") {
			sa.conf.Transactions, err = strconv.Atoi(nextArg)
		} else if strings.EqualFold(arg, "-msgwords") {
			var v uint64
			v, err = strconv.ParseUint(nextArg, 0, 16)
			sa.conf.MessageWords = uint16(v)
		} else if strings.EqualFold(arg, "-pdwords") {
			var v uint64
			v, err = strconv.ParseUint(nextArg, 0, 16)
			sa.conf.ProcessDataWords = uint16(v)
		} else if strings.EqualFold(arg, "-period") {
			sa.conf.BytePeriod, err = time.ParseDuration(nextArg)
		} else if strings.EqualFold(arg, "-errors") {
			sa.conf.ErrorEvery, err = strconv.Atoi(nextArg)
		} else if strings.EqualFold(arg, "-sdklog") {
			sa.sdkLog = nextArg
		} else if strings.EqualFold(arg, "-format") {
			if sa.parser = common.FindParserByName(nextArg); sa.parser == nil {
				err = errors.New("unknown format")
			}
		} else if strings.EqualFold(arg, "-o") {
			sa.out = nextArg
		} else {
			err = errors.New("unknown argument")
		}
		if err != nil {
			return nil, usage(progNameAsExeced, arg+" "+nextArg, os.Stdout)
		}
	}
	return sa, nil
}

func realMain(args []string) (err error) {
	sa, err := parseArgs(args)
	if err != nil {
		return err
	}
	logger := common.NewLogger(os.Stderr)

	if sa.sdkLog != "" {
		f, openErr := os.Open(sa.sdkLog)
		if openErr != nil {
			return common.Abort(logger, true, "Cannot open SDK log %s: %v", sa.sdkLog, openErr)
		}
		sa.conf.Events, err = common.ParseSDKLog(f, logger)
		err = multierr.Append(err, f.Close())
		if err != nil {
			return common.Abort(logger, true, "Cannot read SDK log %s: %v", sa.sdkLog, err)
		}
		if len(sa.conf.Events) == 0 {
			return common.Error(logger, true, "SDK log %s holds no messages", sa.sdkLog)
		}
	}

	capture := common.Simulate(sa.conf)
	logger.Infow("capture generated", "records", capture.RecordCount(), "packets", capture.PacketCount())

	var w io.Writer = os.Stdout
	if sa.out != "" {
		f, createErr := os.Create(sa.out)
		if createErr != nil {
			return common.Abort(logger, true, "Cannot create %s: %v", sa.out, createErr)
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()
		w = f
	}
	cw, err := common.NewCompressingWriter(w, sa.out)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, cw.Close())
	}()
	return common.WriteCapture(cw, capture, sa.parser)
}

//nolint:lll
func usage(progNameAsExeced, invalidArgName string, writer io.Writer) error {
	fmt.Fprintf(writer, "Unknown or invalid argument %s\n", invalidArgName)
	fmt.Fprintf(writer, "Usage: %s [-n <transactions>] [-msgwords <n>] [-pdwords <n>] [-period <duration>] [-errors <every>] [-sdklog <path>] [-format <fmt>] [-o <path>]\n", progNameAsExeced)
	fmt.Fprintf(writer, "     -n <transactions>    Number of SPI transactions; with -sdklog zero replays the whole log\n")
	fmt.Fprintf(writer, "     -msgwords <n>        Message area size in 16 bit words\n")
	fmt.Fprintf(writer, "     -pdwords <n>         Process data area size in 16 bit words\n")
	fmt.Fprintf(writer, "     -period <duration>   Time taken to clock one byte\n")
	fmt.Fprintf(writer, "     -errors <every>      Inject a transport anomaly into every Nth transaction\n")
	fmt.Fprintf(writer, "     -sdklog <path>       Replay the messages of an ABCC SDK driver log\n")
	fmt.Fprintf(writer, "     -format <fmt>        Output format, either: ")
	for _, format := range common.AllParsers {
		fmt.Fprintf(writer, "%s, ", format.Name())
	}
	fmt.Fprintf(writer, "\n")
	fmt.Fprintf(writer, "     -o <path>            Write to a file; .gz and .zst paths are compressed\n")
	fmt.Fprintf(writer, "\n")
	return &common.ExitError{Code: 1}
}

func handleErr(err error) {
	if err == nil {
		return
	}
	var exitErr *common.ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	fmt.Fprint(os.Stderr, err.Error())
	os.Exit(1)
}
