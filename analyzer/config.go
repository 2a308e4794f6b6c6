package analyzer

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"go.viam.com/rdk/logging"

	"github.com/erh/goabcc/common"
)

// Verbosity selects how messages are indexed in tabular text.
type Verbosity uint8

// Verbosity levels.
const (
	VerbosityDisabled Verbosity = iota
	VerbosityCompact
	VerbosityDetailed
)

// Priority selects what the first detail layer of a bubble shows.
type Priority uint8

// Priorities.
const (
	ValueFirst Priority = iota
	TagFirst
)

// TimestampIndexing selects which packets get a network time entry in
// tabular text.
type TimestampIndexing uint8

// Timestamp indexing modes.
const (
	TimestampsDisabled TimestampIndexing = iota
	TimestampsAllPackets
	TimestampsWriteProcessDataValid
	TimestampsNewReadProcessData
)

// ExportMode selects the layout of an exported file.
type ExportMode uint8

// Export modes.
const (
	ExportAllRecords ExportMode = iota
	ExportMessageData
	ExportProcessData
)

var (
	verbosityNames = []string{"disabled", "compact", "detailed"}
	priorityNames  = []string{"value", "tag"}
	timestampNames = []string{"disabled", "all", "wrpd_valid", "new_rdpd"}
	exportNames    = []string{"all", "message", "process"}
)

func enumString(names []string, v uint8, typ string) string {
	if int(v) < len(names) {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", typ, v)
}

func parseEnum(names []string, s, what string) (uint8, error) {
	for i, name := range names {
		if strings.EqualFold(s, name) {
			return uint8(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q (expected one of %s)", what, s, strings.Join(names, ", "))
}

func (v Verbosity) String() string         { return enumString(verbosityNames, uint8(v), "Verbosity") }
func (p Priority) String() string          { return enumString(priorityNames, uint8(p), "Priority") }
func (t TimestampIndexing) String() string { return enumString(timestampNames, uint8(t), "TimestampIndexing") }
func (m ExportMode) String() string        { return enumString(exportNames, uint8(m), "ExportMode") }

// ParseVerbosity parses the names returned by Verbosity.String.
func ParseVerbosity(s string) (Verbosity, error) {
	v, err := parseEnum(verbosityNames, s, "verbosity")
	return Verbosity(v), err
}

// ParsePriority parses the names returned by Priority.String.
func ParsePriority(s string) (Priority, error) {
	v, err := parseEnum(priorityNames, s, "priority")
	return Priority(v), err
}

// ParseTimestampIndexing parses the names returned by TimestampIndexing.String.
func ParseTimestampIndexing(s string) (TimestampIndexing, error) {
	v, err := parseEnum(timestampNames, s, "timestamp indexing")
	return TimestampIndexing(v), err
}

// ParseExportMode parses the names returned by ExportMode.String.
func ParseExportMode(s string) (ExportMode, error) {
	v, err := parseEnum(exportNames, s, "export mode")
	return ExportMode(v), err
}

// Config is used to configure an Analyzer.
type Config struct {
	// NetworkType is the network type code of the module; zero when unknown.
	NetworkType         uint16
	Verbosity           Verbosity
	MessageDataPriority Priority
	ProcessDataPriority Priority

	IndexErrors            bool
	IndexTimestamps        TimestampIndexing
	IndexSourceID          bool
	IndexAnybusStatus      bool
	IndexApplicationStatus bool

	// Delimiter separates exported columns.
	Delimiter        string
	MessageSizeLimit uint16
	// Dictionary is an optional TOML file extending the built-in names.
	Dictionary string

	Logger logging.Logger
}

// NewConfig returns the default configuration.
func NewConfig(logger logging.Logger) *Config {
	return &Config{
		Verbosity:              VerbosityDetailed,
		MessageDataPriority:    ValueFirst,
		ProcessDataPriority:    ValueFirst,
		IndexErrors:            true,
		IndexTimestamps:        TimestampsDisabled,
		IndexSourceID:          true,
		IndexAnybusStatus:      true,
		IndexApplicationStatus: true,
		Delimiter:              ";",
		MessageSizeLimit:       common.MaxMessageDataBytes,
		Logger:                 logger,
	}
}

type fileConfig struct {
	NetworkType            uint16 `toml:"network_type"`
	Verbosity              string `toml:"verbosity"`
	MessageDataPriority    string `toml:"message_data_priority"`
	ProcessDataPriority    string `toml:"process_data_priority"`
	IndexErrors            bool   `toml:"index_errors"`
	IndexTimestamps        string `toml:"index_timestamps"`
	IndexSourceID          bool   `toml:"index_source_id"`
	IndexAnybusStatus      bool   `toml:"index_anybus_status"`
	IndexApplicationStatus bool   `toml:"index_application_status"`
	Delimiter              string `toml:"delimiter"`
	MessageSizeLimit       uint16 `toml:"message_size_limit"`
	Dictionary             string `toml:"dictionary"`
}

// LoadConfigFile applies the settings of a TOML file to conf. Keys missing
// from the file keep their current value.
func LoadConfigFile(path string, conf *Config) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load analyzer config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		conf.Logger.Warnw("ignoring unknown settings", "path", path, "keys", undecoded)
	}

	if meta.IsDefined("network_type") {
		conf.NetworkType = raw.NetworkType
	}
	if meta.IsDefined("verbosity") {
		if conf.Verbosity, err = ParseVerbosity(raw.Verbosity); err != nil {
			return fmt.Errorf("load analyzer config: %w", err)
		}
	}
	if meta.IsDefined("message_data_priority") {
		if conf.MessageDataPriority, err = ParsePriority(raw.MessageDataPriority); err != nil {
			return fmt.Errorf("load analyzer config: %w", err)
		}
	}
	if meta.IsDefined("process_data_priority") {
		if conf.ProcessDataPriority, err = ParsePriority(raw.ProcessDataPriority); err != nil {
			return fmt.Errorf("load analyzer config: %w", err)
		}
	}
	if meta.IsDefined("index_errors") {
		conf.IndexErrors = raw.IndexErrors
	}
	if meta.IsDefined("index_timestamps") {
		if conf.IndexTimestamps, err = ParseTimestampIndexing(raw.IndexTimestamps); err != nil {
			return fmt.Errorf("load analyzer config: %w", err)
		}
	}
	if meta.IsDefined("index_source_id") {
		conf.IndexSourceID = raw.IndexSourceID
	}
	if meta.IsDefined("index_anybus_status") {
		conf.IndexAnybusStatus = raw.IndexAnybusStatus
	}
	if meta.IsDefined("index_application_status") {
		conf.IndexApplicationStatus = raw.IndexApplicationStatus
	}
	if meta.IsDefined("delimiter") {
		if raw.Delimiter == "" {
			return fmt.Errorf("load analyzer config: empty delimiter")
		}
		conf.Delimiter = raw.Delimiter
	}
	if meta.IsDefined("message_size_limit") {
		conf.MessageSizeLimit = raw.MessageSizeLimit
	}
	if meta.IsDefined("dictionary") {
		conf.Dictionary = raw.Dictionary
	}
	return nil
}
