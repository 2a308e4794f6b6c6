// Package analyzer renders decoded ABCC SPI records as bubble text, tabular
// text and CSV exports.
package analyzer

import (
	"errors"

	"github.com/google/uuid"

	"github.com/erh/goabcc/common"
)

// ProgressFunc is polled once per record during an export. Returning true
// cancels it.
type ProgressFunc func(done, total uint64) (cancel bool)

// An Analyzer is one rendering session over a record store. It carries the
// per channel state of the tabular and export passes, so it must not be
// used from several goroutines at once.
type Analyzer struct {
	Config

	store        common.RecordStore
	dict         *Dictionary
	networkIndex int
	session      uuid.UUID
	progress     ProgressFunc

	channels    [common.NumChannels]ChannelState
	nextTabular uint64
}

// NewAnalyzer returns a new analyzer over store using the given config.
func NewAnalyzer(conf *Config, store common.RecordStore) (*Analyzer, error) {
	if conf.Logger == nil {
		return nil, errors.New("logger required")
	}
	if store == nil {
		return nil, errors.New("record store required")
	}
	if conf.Delimiter == "" {
		return nil, errors.New("delimiter required")
	}

	ana := &Analyzer{
		Config:       *conf,
		store:        store,
		dict:         DefaultDictionary(),
		networkIndex: -1,
		session:      uuid.New(),
	}
	if conf.Dictionary != "" {
		dict, err := LoadDictionaryFile(conf.Dictionary)
		if err != nil {
			return nil, err
		}
		ana.dict = dict
	}
	if idx, ok := NetworkTypeIndex(conf.NetworkType); ok {
		ana.networkIndex = idx
	}

	conf.Logger.Debugw("analyzer session started",
		"session", ana.session,
		"records", store.RecordCount(),
		"network_type", conf.NetworkType,
		"verbosity", conf.Verbosity)
	return ana, nil
}

// Reset clears the channel state so the next rendering starts from the
// beginning of the capture.
func (a *Analyzer) Reset() {
	for i := range a.channels {
		a.channels[i].reset()
	}
	a.nextTabular = 0
}

// SetProgressFunc installs f to be polled during exports.
func (a *Analyzer) SetProgressFunc(f ProgressFunc) {
	a.progress = f
}

// Channel returns the tabular state of ch.
func (a *Analyzer) Channel(ch common.Channel) *ChannelState {
	return &a.channels[ch]
}
