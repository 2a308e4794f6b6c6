package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/rdk/logging"
	"go.viam.com/test"

	"github.com/erh/goabcc/common"
)

func TestNewAnalyzer(t *testing.T) {
	logger := logging.NewTestLogger(t)
	store := common.NewCapture()

	_, err := NewAnalyzer(&Config{Delimiter: ";"}, store)
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewAnalyzer(NewConfig(logger), nil)
	test.That(t, err, test.ShouldNotBeNil)

	conf := NewConfig(logger)
	conf.Delimiter = ""
	_, err = NewAnalyzer(conf, store)
	test.That(t, err, test.ShouldNotBeNil)

	conf = NewConfig(logger)
	conf.Dictionary = filepath.Join(t.TempDir(), "missing.toml")
	_, err = NewAnalyzer(conf, store)
	test.That(t, err, test.ShouldNotBeNil)

	conf = NewConfig(logger)
	conf.NetworkType = 0x0087
	ana, err := NewAnalyzer(conf, store)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ana.networkIndex, test.ShouldEqual, networkEtherCAT)
	test.That(t, ana.dict, test.ShouldEqual, DefaultDictionary())

	ana = newTestAnalyzer(t, store)
	test.That(t, ana.networkIndex, test.ShouldEqual, -1)
}

func TestAnalyzerDictionaryFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendor.toml")
	err := os.WriteFile(path, []byte(`
[[object]]
code = 0x80
name = "Vendor Object"

[[command]]
object = 0x80
code = 0x10
name = "Vendor_Command"
`), 0o600)
	test.That(t, err, test.ShouldBeNil)

	b := newCaptureBuilder()
	b.packet()
	b.add(common.MOSI, common.KindSpiControl, common.SpiCtrlM|common.SpiCtrlLastFrag, 0, nil)
	b.message(common.MOSI, testHeader{object: 0x80, instance: 1, command: common.MsgHeaderCBit | 0x10}, nil, 0)

	ana := newTestAnalyzer(t, b.c, func(conf *Config) {
		conf.Dictionary = path
		conf.IndexSourceID = false
	})
	lines := allTabular(ana, b.c)
	test.That(t, lines, test.ShouldContain, "MOSI-Object: Vendor Object")
	test.That(t, lines, test.ShouldContain, "MOSI-Command: Obj: Vendor_Command")
}
