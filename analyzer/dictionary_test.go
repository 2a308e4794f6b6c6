package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func writeDictionary(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dict.toml")
	test.That(t, os.WriteFile(path, []byte(content), 0o600), test.ShouldBeNil)
	return path
}

func TestLoadDictionaryFile(t *testing.T) {
	path := writeDictionary(t, `
[[object]]
code = 0x80
name = "Vendor Object"

[[object]]
code = 0x01
name = "Renamed Anybus"

[[command]]
object = 0x80
code = 0x10
name = "Vendor_Command"

[[error]]
code = 0x18
name = "Vendor error"
alert = true

[[error]]
object = 0x80
code = 0x01
name = "Vendor object error"

[[network_type]]
code = 0x1234
name = "Vendor Net"
`)
	d, err := LoadDictionaryFile(path)
	test.That(t, err, test.ShouldBeNil)

	s, alert := d.objectString(0x80, Hexadecimal)
	test.That(t, s, test.ShouldEqual, "Vendor Object")
	test.That(t, alert, test.ShouldBeFalse)
	s, _ = d.objectString(0x01, Hexadecimal)
	test.That(t, s, test.ShouldEqual, "Renamed Anybus")
	s, _ = d.objectString(0x02, Hexadecimal)
	test.That(t, s, test.ShouldEqual, "Diagnostic Object")

	s, alert = d.commandString(0x50, 0x80, Hexadecimal)
	test.That(t, s, test.ShouldEqual, "Obj: Vendor_Command")
	test.That(t, alert, test.ShouldBeFalse)

	s, alert = d.errorString(0x18, Hexadecimal)
	test.That(t, s, test.ShouldEqual, "Vendor error")
	test.That(t, alert, test.ShouldBeTrue)
	s, _ = d.objectErrorString(0x80, 0x01, Hexadecimal)
	test.That(t, s, test.ShouldEqual, "Vendor object error")

	test.That(t, Lookup(d.NetworkTypes, 0x1234).Name, test.ShouldEqual, "Vendor Net")
	test.That(t, Lookup(d.NetworkTypes, 0x0085).Name, test.ShouldEqual, "EtherNet/IP")

	// The built-in dictionary is left alone.
	def := DefaultDictionary()
	test.That(t, Lookup(def.Objects, 0x80).Found, test.ShouldBeFalse)
	test.That(t, Lookup(def.Objects, 0x01).Name, test.ShouldEqual, "Anybus Object")
	_, ok := def.ObjectCommands(0x80)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestLoadDictionaryFileErrors(t *testing.T) {
	for _, tc := range []struct {
		name    string
		content string
	}{
		{"object out of range", "[[object]]\ncode = 0x100\nname = \"x\"\n"},
		{"network type out of range", "[[network_type]]\ncode = 0x10000\nname = \"x\"\n"},
		{"missing name", "[[command]]\ncode = 0x10\n"},
		{"scoped missing name", "[[error]]\nobject = 1\ncode = 0x10\n"},
		{"bad toml", "[[object]\n"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadDictionaryFile(writeDictionary(t, tc.content))
			test.That(t, err, test.ShouldNotBeNil)
		})
	}

	_, err := LoadDictionaryFile(filepath.Join(t.TempDir(), "none.toml"))
	test.That(t, err, test.ShouldNotBeNil)
}
