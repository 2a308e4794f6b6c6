package analyzer

import (
	"sort"

	"github.com/erh/goabcc/common"
)

// Severity tells the renderers whether a value should be highlighted.
type Severity uint8

// Severities.
const (
	SeverityNone Severity = iota
	SeverityAlert
)

func severityOf(alert bool) Severity {
	if alert {
		return SeverityAlert
	}
	return SeverityNone
}

// Entry is the result of a dictionary lookup. A zero Entry is a miss.
type Entry struct {
	Found    bool
	Name     string
	Severity Severity
	DataType string
}

// Alert reports whether the entry should be highlighted.
func (e Entry) Alert() bool {
	return e.Severity == SeverityAlert
}

type valueName struct {
	code     uint32
	name     string
	alert    bool
	dataType string
}

// Table is a list of named codes ordered by code.
type Table []valueName

func newTable(entries ...valueName) Table {
	t := Table(entries)
	sort.SliceStable(t, func(i, j int) bool { return t[i].code < t[j].code })
	return t
}

// Len returns the number of entries in the table.
func (t Table) Len() int {
	return len(t)
}

// with returns a copy of t where entries of other replace or extend t.
func (t Table) with(other Table) Table {
	byCode := make(map[uint32]valueName, len(t)+len(other))
	for _, v := range t {
		byCode[v.code] = v
	}
	for _, v := range other {
		byCode[v.code] = v
	}
	merged := make(Table, 0, len(byCode))
	for _, v := range byCode {
		merged = append(merged, v)
	}
	return newTable(merged...)
}

// Lookup finds code in table. A miss is not an error; Found is false and the
// caller renders the raw number instead.
func Lookup(table Table, code uint32) Entry {
	i := sort.Search(len(table), func(i int) bool { return table[i].code >= code })
	if i < len(table) && table[i].code == code {
		v := table[i]
		return Entry{Found: true, Name: v.name, Severity: severityOf(v.alert), DataType: v.dataType}
	}
	return Entry{}
}

// Network exception table indices.
const (
	networkEtherNetIP = iota
	networkEtherCAT
	networkProfinet
	networkProfibusDPV1
	networkCANopen
	networkDeviceNet
	networkControlNet
	numNetworkExceptionTables
)

// NetworkTypeIndex maps a network type code, as read from the network
// object, onto the exception information table that applies to it.
func NetworkTypeIndex(networkType uint16) (int, bool) {
	idx, ok := networkTypeIndexes[networkType]
	return idx, ok
}

// ExceptionTableIndex reports which exception table decodes the data of
// the message described by header. Only Get_Attribute responses reading the
// Anybus exception attribute or the network exception information
// attribute resolve; networkTypeIndex is negative when the network is not
// known.
func ExceptionTableIndex(isNetworkObject bool, networkTypeIndex int, header common.MessageContext) (int, bool) {
	if IsCommandMessage(header) || IsErrorResponse(header) {
		return 0, false
	}
	if header.Command&common.MsgHeaderCmdBits != common.CmdGetAttribute || header.Instance != 1 {
		return 0, false
	}
	if isNetworkObject {
		if header.Object != common.ObjectNetwork || header.CommandExtension != common.NetworkAttrException {
			return 0, false
		}
		if networkTypeIndex < 0 || networkTypeIndex >= numNetworkExceptionTables {
			return 0, false
		}
		return networkTypeIndex, true
	}
	if header.Object != common.ObjectAnybus || header.CommandExtension != common.AnybusAttrException {
		return 0, false
	}
	return 0, true
}

// ExceptionString resolves an exception code using the table returned by
// ExceptionTableIndex.
func ExceptionString(isNetworkObject bool, index int, value uint8) Entry {
	if !isNetworkObject {
		if index != 0 {
			return Entry{}
		}
		return Lookup(anybusExceptions, uint32(value))
	}
	if index < 0 || index >= len(networkExceptions) {
		return Entry{}
	}
	return Lookup(networkExceptions[index], uint32(value))
}

// Dictionary holds every table the renderers resolve names from. The
// built-in dictionary is shared and read-only; LoadDictionaryFile returns
// an extended copy.
type Dictionary struct {
	Objects      Table
	Commands     Table
	Errors       Table
	NetworkTypes Table

	objectCommands   map[uint8]Table
	objectErrors     map[uint8]Table
	objectAttributes map[uint8]attributeTables
}

// attributeTables are the object (instance 0) and instance attribute names
// of one object. A nil table means the object has no named attributes of
// that kind.
type attributeTables struct {
	object   Table
	instance Table
}

// DefaultDictionary returns the built-in dictionary.
func DefaultDictionary() *Dictionary {
	return defaultDictionary
}

// ObjectCommands returns the object specific command table of obj.
func (d *Dictionary) ObjectCommands(obj uint8) (Table, bool) {
	t, ok := d.objectCommands[obj]
	return t, ok
}

// ObjectErrors returns the object specific error table of obj.
func (d *Dictionary) ObjectErrors(obj uint8) (Table, bool) {
	t, ok := d.objectErrors[obj]
	return t, ok
}

// AttributeTables returns the object attribute and instance attribute
// tables of obj. known is false for objects without any named attribute.
func (d *Dictionary) AttributeTables(obj uint8) (objectAttrs, instanceAttrs Table, known bool) {
	at, ok := d.objectAttributes[obj]
	return at.object, at.instance, ok
}

// Attribute resolves attr of the given object and instance. Instance 0
// addresses the object itself, whose attributes 1 to 4 are common to every
// object.
func (d *Dictionary) Attribute(obj uint8, inst uint16, attr uint8) (Entry, bool) {
	at, known := d.objectAttributes[obj]
	if !known {
		return Entry{}, false
	}
	var table Table
	if inst == 0 {
		if uint32(attr) <= commonObjectAttributes[len(commonObjectAttributes)-1].code {
			table = commonObjectAttributes
		} else {
			table = at.object
		}
	} else {
		table = at.instance
	}
	return Lookup(table, uint32(attr)), true
}

func (d *Dictionary) clone() *Dictionary {
	c := *d
	c.objectCommands = make(map[uint8]Table, len(d.objectCommands))
	for k, v := range d.objectCommands {
		c.objectCommands[k] = v
	}
	c.objectErrors = make(map[uint8]Table, len(d.objectErrors))
	for k, v := range d.objectErrors {
		c.objectErrors[k] = v
	}
	c.objectAttributes = make(map[uint8]attributeTables, len(d.objectAttributes))
	for k, v := range d.objectAttributes {
		c.objectAttributes[k] = v
	}
	return &c
}

// isStandardCommand reports whether cmd is one of the commands every
// object shares.
func isStandardCommand(cmd uint8) bool {
	return cmd > 0 && cmd < 9
}

// isObjectSpecificCommand reports whether cmd lies in the object specific
// command range.
func isObjectSpecificCommand(cmd uint8) bool {
	return (cmd >= 0x10 && cmd <= 0x30) || cmd == 0x3F
}
