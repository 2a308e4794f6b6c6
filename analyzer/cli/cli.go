// Package cli provides a CLI for rendering ABCC SPI captures
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.viam.com/rdk/logging"

	"github.com/erh/goabcc/analyzer"
	"github.com/erh/goabcc/common"
)

// A CLI lets a user run the analyzer in a CLI environment.
type CLI struct {
	inFile *os.File
	out    io.Writer
	config *cliConfig
}

type cliConfig struct {
	analyzer.Config

	Parser      common.TextLineParser
	Base        analyzer.DisplayBase
	ExportPath  string
	ExportMode  analyzer.ExportMode
	ShowTabular bool
	ShowBubbles bool
	OnlyChannel int
}

func newConfig(
	logger logging.Logger,
) *cliConfig {
	base := analyzer.NewConfig(logger)
	return &cliConfig{
		Config:      *base,
		Base:        analyzer.Hexadecimal,
		ExportMode:  analyzer.ExportAllRecords,
		ShowTabular: true,
		ShowBubbles: false,
		OnlyChannel: -1,
	}
}

// New parses args and returns a CLI ready to run.
func New(args []string) (*CLI, error) {
	conf, inFile, err := parseCLIArgs(args)
	if err != nil {
		return nil, err
	}
	return &CLI{
		inFile: inFile,
		out:    os.Stdout,
		config: conf,
	}, nil
}

// parseCLIArgs parses the args of a CLI program into a cliConfig. A
// settings file named by -config is applied first so every other flag
// overrides it.
func parseCLIArgs(args []string) (*cliConfig, *os.File, error) {
	progNameAsExeced := args[0]

	conf := newConfig(common.NewLogger(os.Stderr))

	for argIdx := 1; argIdx < len(args)-1; argIdx++ {
		if strings.EqualFold(args[argIdx], "-config") {
			if err := analyzer.LoadConfigFile(args[argIdx+1], &conf.Config); err != nil {
				return nil, nil, err
			}
			argIdx++
		}
	}

	logLevel := zapcore.InfoLevel
	inFile := os.Stdin
	for argIdx := 1; argIdx < len(args); argIdx++ {
		arg := args[argIdx]
		hasNext := argIdx < len(args)-1

		var err error
		//nolint:gocritic
		if strings.EqualFold(arg, "-d") {
			logging.GlobalLogLevel.SetLevel(zapcore.DebugLevel)
			logLevel = zapcore.DebugLevel
		} else if strings.EqualFold(arg, "-q") {
			logging.GlobalLogLevel.SetLevel(zapcore.ErrorLevel)
			logLevel = zap.ErrorLevel
		} else if hasNext && strings.EqualFold(arg, "-config") {
			argIdx++
		} else if strings.EqualFold(arg, "-bubble") {
			conf.ShowBubbles = true
		} else if strings.EqualFold(arg, "-notab") {
			conf.ShowTabular = false
		} else if hasNext && strings.EqualFold(arg, "-channel") {
			nextArg := args[argIdx+1]
			ch, err := common.ParseChannel(nextArg)
			if err != nil {
				return nil, nil, cliUsage(progNameAsExeced, nextArg, os.Stdout)
			}
			conf.OnlyChannel = int(ch)
			argIdx++
		} else if hasNext && strings.EqualFold(arg, "-base") {
			nextArg := args[argIdx+1]
			if conf.Base, err = analyzer.ParseDisplayBase(nextArg); err != nil {
				return nil, nil, cliUsage(progNameAsExeced, nextArg, os.Stdout)
			}
			argIdx++
		} else if hasNext && strings.EqualFold(arg, "-verbosity") {
			nextArg := args[argIdx+1]
			if conf.Verbosity, err = analyzer.ParseVerbosity(nextArg); err != nil {
				return nil, nil, cliUsage(progNameAsExeced, nextArg, os.Stdout)
			}
			argIdx++
		} else if hasNext && strings.EqualFold(arg, "-timestamps") {
			nextArg := args[argIdx+1]
			if conf.IndexTimestamps, err = analyzer.ParseTimestampIndexing(nextArg); err != nil {
				return nil, nil, cliUsage(progNameAsExeced, nextArg, os.Stdout)
			}
			argIdx++
		} else if hasNext && strings.EqualFold(arg, "-network") {
			nextArg := args[argIdx+1]
			networkType, err := strconv.ParseUint(nextArg, 0, 16)
			if err != nil {
				return nil, nil, cliUsage(progNameAsExeced, nextArg, os.Stdout)
			}
			conf.NetworkType = uint16(networkType)
			argIdx++
		} else if hasNext && strings.EqualFold(arg, "-delimiter") {
			conf.Delimiter = args[argIdx+1]
			argIdx++
		} else if hasNext && strings.EqualFold(arg, "-dictionary") {
			conf.Dictionary = args[argIdx+1]
			argIdx++
		} else if hasNext && strings.EqualFold(arg, "-export") {
			conf.ExportPath = args[argIdx+1]
			argIdx++
		} else if hasNext && strings.EqualFold(arg, "-mode") {
			nextArg := args[argIdx+1]
			if conf.ExportMode, err = analyzer.ParseExportMode(nextArg); err != nil {
				return nil, nil, cliUsage(progNameAsExeced, nextArg, os.Stdout)
			}
			argIdx++
		} else if strings.EqualFold(arg, "-fixtime") {
			common.UseFixedTimestamp.Store(true)
		} else if hasNext && strings.EqualFold(arg, "-file") {
			nextArg := args[argIdx+1]
			//nolint:gosec
			inFile, err = os.OpenFile(nextArg, os.O_RDONLY, 0)
			if err != nil {
				return nil, nil, fmt.Errorf("Cannot open file %s", nextArg)
			}
			argIdx++
		} else if hasNext && strings.EqualFold(arg, "-format") {
			nextArg := args[argIdx+1]
			conf.Parser = common.FindParserByName(nextArg)
			if conf.Parser == nil {
				return nil, nil, cliUsage(progNameAsExeced, nextArg, os.Stdout)
			}
			argIdx++
		} else {
			return nil, nil, cliUsage(progNameAsExeced, arg, os.Stdout)
		}
	}

	zapConf := logging.NewZapLoggerConfig()
	zapConf.Level = zap.NewAtomicLevelAt(logLevel)
	zapConf.OutputPaths = []string{"stderr"}
	zapLogger, err := zapConf.Build(zap.WithClock(common.FixedClock{}))
	if err != nil {
		return nil, nil, err
	}
	conf.Logger = logging.FromZapCompatible(zapLogger.Sugar())

	if common.UseFixedTimestamp.Load() {
		conf.Logger.Info("Timestamp fixed")
	}

	return conf, inFile, nil
}

// Run loads the capture and either exports it or prints it.
func (c *CLI) Run(ctx context.Context) (err error) {
	if c.inFile != os.Stdin {
		defer func() {
			err = multierr.Append(err, c.inFile.Close())
		}()
	}

	capture, err := common.ReadCapture(c.inFile, c.config.Parser, c.config.Logger)
	if err != nil {
		return common.Error(c.config.Logger, common.IsCLI.Load(), "Cannot read capture: %v", err)
	}
	ana, err := analyzer.NewAnalyzer(&c.config.Config, capture)
	if err != nil {
		return common.Abort(c.config.Logger, common.IsCLI.Load(), "Cannot start analyzer: %v", err)
	}

	if c.config.ExportPath != "" {
		return ana.Export(ctx, c.config.ExportPath, c.config.Base, c.config.ExportMode)
	}
	return c.print(ctx, ana, capture)
}

//nolint:lll
func cliUsage(progNameAsExeced, invalidArgName string, writer io.Writer) error {
	fmt.Fprintf(writer, "Unknown or invalid argument %s\n", invalidArgName)
	fmt.Fprintf(writer, "Usage: %s [-file <capture>] [-format <fmt>] [-config <toml>] [-d] [-q] [-base <base>] [-verbosity <level>] "+
		"[-timestamps <mode>] [-network <type>] [-dictionary <toml>] [-bubble] [-notab] [-channel {mosi|miso}] "+
		"[-export <path> [-mode {all|message|process}] [-delimiter <str>]] [-fixtime]\n",
		progNameAsExeced)
	fmt.Fprintf(writer, "     -file <capture>      Read the capture from a file instead of stdin; gzip and zstd input is detected\n")
	fmt.Fprintf(writer, "     -format <fmt>        Select a capture format, either: ")
	for _, format := range common.AllParsers {
		fmt.Fprintf(writer, "%s, ", format.Name())
	}
	fmt.Fprintf(writer, "\n")
	fmt.Fprintf(writer, "     -config <toml>       Load settings from a TOML file; other options override it\n")
	fmt.Fprintf(writer, "     -d                   Print logging from level ERROR, INFO and DEBUG\n")
	fmt.Fprintf(writer, "     -q                   Print logging from level ERROR\n")
	fmt.Fprintf(writer, "     -base <base>         Display base: hex, dec, bin, ascii or asciihex\n")
	fmt.Fprintf(writer, "     -verbosity <level>   Message indexing: disabled, compact or detailed\n")
	fmt.Fprintf(writer, "     -timestamps <mode>   Timestamp indexing: disabled, all, wrpd_valid or new_rdpd\n")
	fmt.Fprintf(writer, "     -network <type>      Network type code used to decode network specific errors\n")
	fmt.Fprintf(writer, "     -dictionary <toml>   Extend the built-in object, command and error names\n")
	fmt.Fprintf(writer, "     -bubble              Print the annotation layers of every record\n")
	fmt.Fprintf(writer, "     -notab               Do not print the tabular log\n")
	fmt.Fprintf(writer, "     -channel <ch>        Only print bubbles of one direction\n")
	fmt.Fprintf(writer, "     -export <path>       Write a CSV export instead of printing; .gz and .zst paths are compressed\n")
	fmt.Fprintf(writer, "     -mode <mode>         Export layout: all, message or process\n")
	fmt.Fprintf(writer, "     -delimiter <str>     Export column delimiter\n")
	fmt.Fprintf(writer, "     -fixtime             Use a fixed timestamp in logging\n")
	fmt.Fprintf(writer, "\n")
	return &common.ExitError{Code: 1}
}
