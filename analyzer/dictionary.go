package analyzer

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

type dictionaryEntry struct {
	Code  uint32 `toml:"code"`
	Name  string `toml:"name"`
	Alert bool   `toml:"alert"`
	// Object scopes command and error entries to one object.
	Object *uint8 `toml:"object"`
}

type dictionaryFile struct {
	Objects      []dictionaryEntry `toml:"object"`
	Commands     []dictionaryEntry `toml:"command"`
	Errors       []dictionaryEntry `toml:"error"`
	NetworkTypes []dictionaryEntry `toml:"network_type"`
}

// LoadDictionaryFile returns the built-in dictionary extended with the
// entries of a TOML file. Entries replace built-in names with the same code.
//
//	[[object]]
//	code = 0x80
//	name = "Vendor Object"
//
//	[[command]]
//	object = 0x80
//	code = 0x10
//	name = "Vendor_Command"
func LoadDictionaryFile(path string) (*Dictionary, error) {
	var raw dictionaryFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("load dictionary: %w", err)
	}
	return DefaultDictionary().extend(&raw)
}

func (d *Dictionary) extend(raw *dictionaryFile) (*Dictionary, error) {
	ext := d.clone()

	objects, err := overlayTable(raw.Objects, 0xFF, "object")
	if err != nil {
		return nil, err
	}
	ext.Objects = ext.Objects.with(objects)

	networkTypes, err := overlayTable(raw.NetworkTypes, 0xFFFF, "network_type")
	if err != nil {
		return nil, err
	}
	ext.NetworkTypes = ext.NetworkTypes.with(networkTypes)

	if err := ext.overlayScoped(raw.Commands, &ext.Commands, ext.objectCommands, "command"); err != nil {
		return nil, err
	}
	if err := ext.overlayScoped(raw.Errors, &ext.Errors, ext.objectErrors, "error"); err != nil {
		return nil, err
	}
	return ext, nil
}

// overlayScoped merges entries without an object into global and the rest
// into the per object tables.
func (d *Dictionary) overlayScoped(entries []dictionaryEntry, global *Table, perObject map[uint8]Table, what string) error {
	var plain []dictionaryEntry
	scoped := map[uint8][]dictionaryEntry{}
	for _, e := range entries {
		if e.Object == nil {
			plain = append(plain, e)
			continue
		}
		scoped[*e.Object] = append(scoped[*e.Object], e)
	}

	t, err := overlayTable(plain, 0xFF, what)
	if err != nil {
		return err
	}
	*global = global.with(t)

	for obj, es := range scoped {
		t, err := overlayTable(es, 0xFF, what)
		if err != nil {
			return err
		}
		perObject[obj] = perObject[obj].with(t)
	}
	return nil
}

func overlayTable(entries []dictionaryEntry, maxCode uint32, what string) (Table, error) {
	t := make(Table, 0, len(entries))
	for _, e := range entries {
		if e.Code > maxCode {
			return nil, fmt.Errorf("load dictionary: %s code 0x%X out of range", what, e.Code)
		}
		if e.Name == "" {
			return nil, fmt.Errorf("load dictionary: %s code 0x%X has no name", what, e.Code)
		}
		t = append(t, valueName{code: e.Code, name: e.Name, alert: e.Alert})
	}
	return newTable(t...), nil
}
