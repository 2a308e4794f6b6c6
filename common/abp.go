package common

// Anybus CompactCom protocol constants used when decoding SPI fields.

// Message header command byte bits.
const (
	MsgHeaderEBit    = 0x80
	MsgHeaderCBit    = 0x40
	MsgHeaderCmdBits = 0x3F
)

// Standard commands.
const (
	CmdGetAttribute        = 0x01
	CmdSetAttribute        = 0x02
	CmdCreate              = 0x03
	CmdDelete              = 0x04
	CmdReset               = 0x05
	CmdGetEnumString       = 0x06
	CmdGetIndexedAttribute = 0x07
	CmdSetIndexedAttribute = 0x08
)

// SPI control byte (MOSI).
const (
	SpiCtrlWriteProcessDataValid = 0x01
	SpiCtrlCmdCount              = 0x06
	SpiCtrlM                     = 0x08
	SpiCtrlLastFrag              = 0x10
	SpiCtrlReserved              = 0x60
	SpiCtrlToggle                = 0x80
)

// SPI status byte (MISO).
const (
	SpiStatusWriteMsgFull = 0x01
	SpiStatusCmdCount     = 0x06
	SpiStatusM            = 0x08
	SpiStatusLastFrag     = 0x10
	SpiStatusNewProcData  = 0x20
	SpiStatusReserved     = 0xC0
)

// Interrupt mask bits.
const (
	IntMaskReadProcessData = 0x01
	IntMaskReadMessage     = 0x02
	IntMaskWriteMessage    = 0x04
	IntMaskAnybusReset     = 0x08
	IntMaskStatus          = 0x10
	IntMaskReserved1       = 0x20
	IntMaskSync            = 0x40
	IntMaskReserved2       = 0x80
)

// Anybus status byte.
const (
	AnbStatusSupervised = 0x08
	AnbStatusStateBits  = 0x07
)

// Segmentation bits carried in the high byte of the command extension.
const (
	CmdExt1SegFirst = 0x01
	CmdExt1SegLast  = 0x02
	CmdExt1SegAbort = 0x04
)

// MaxMessageDataBytes is the largest message payload the protocol allows.
const MaxMessageDataBytes = 1524

// Object numbers that get special treatment while decoding.
const (
	ObjectAnybus          = 0x01
	ObjectNetwork         = 0x03
	ObjectApplicationData = 0xFE
	ObjectApplication     = 0xFF
)

// Attributes that hold exception codes.
const (
	AnybusAttrException  = 6
	NetworkAttrException = 7
)
