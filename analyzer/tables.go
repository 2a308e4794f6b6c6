package analyzer

// Built-in protocol dictionaries. Names follow the Anybus CompactCom 40
// object specifications.

func v(code uint32, name string) valueName {
	return valueName{code: code, name: name}
}

func alertValue(code uint32, name string) valueName {
	return valueName{code: code, name: name, alert: true}
}

func typed(code uint32, name, dataType string) valueName {
	return valueName{code: code, name: name, dataType: dataType}
}

var (
	defaultDictionary *Dictionary

	commonObjectAttributes Table
	anybusExceptions       Table
	networkExceptions      [numNetworkExceptionTables]Table
	networkTypeIndexes     map[uint16]int

	spiControlNames   Table
	spiStatusNames    Table
	interruptMaskBits Table
	ledStatusBits     Table
	anybusStates      Table
	applicationStates Table
)

// Object numbers named in the tables below.
const (
	objAnybus           = 0x01
	objDiagnostic       = 0x02
	objNetwork          = 0x03
	objNetworkConfig    = 0x04
	objAdditionalDiag   = 0x05
	objSocket           = 0x07
	objSMTP             = 0x09
	objFileSystem       = 0x0A
	objNetworkEthernet  = 0x0C
	objCIPPort          = 0x0D
	objFunctionalSafety = 0x11
	objSafety           = 0xE8
	objPowerlink        = 0xE9
	objAppFileSystem    = 0xEA
	objAssembly         = 0xEB
	objModularDevice    = 0xEC
	objCIPIdentity      = 0xED
	objSync             = 0xEE
	objEtherCAT         = 0xF5
	objProfinet         = 0xF6
	objEtherNetIP       = 0xF8
	objEthernet         = 0xF9
	objAppData          = 0xFE
	objApplication      = 0xFF
)

func init() {
	commonObjectAttributes = newTable(
		v(1, "Name"),
		v(2, "Revision"),
		v(3, "Number of Instances"),
		v(4, "Highest Instance Number"),
	)

	d := &Dictionary{
		objectCommands:   map[uint8]Table{},
		objectErrors:     map[uint8]Table{},
		objectAttributes: map[uint8]attributeTables{},
	}

	d.Objects = newTable(
		v(0x01, "Anybus Object"),
		v(0x02, "Diagnostic Object"),
		v(0x03, "Network Object"),
		v(0x04, "Network Configuration Object"),
		v(0x05, "PROFIBUS DP-V1 Additional Diag"),
		alertValue(0x06, "Reserved"),
		v(0x07, "Socket Interface Object"),
		v(0x08, "Network CC-Link Object"),
		v(0x09, "SMTP Client Object"),
		v(0x0A, "Anybus File System Interface Object"),
		v(0x0B, "Network PROFIBUS DP-V1 Object"),
		v(0x0C, "Network Ethernet Object"),
		v(0x0D, "CIP Port Configuration Object"),
		v(0x0E, "Network PROFINET IO Object"),
		v(0x0F, "PROFINET IO Additional Diag Object"),
		v(0x10, "PROFIBUS DP-V0 Diagnostic Object"),
		v(0x11, "Functional Safety Module Object"),
		v(0x12, "Network CC-Link IE Field Network"),
		v(0xE2, "MQTT Object"),
		v(0xE3, "OPC UA Object"),
		v(0xE4, "Energy Measurement Object"),
		v(0xE5, "PROFINET Asset Management Object"),
		v(0xE6, "CC-Link IE Field Network Object"),
		v(0xE7, "Energy Reporting Object"),
		v(0xE8, "Functional Safety Object"),
		v(0xE9, "POWERLINK Object"),
		v(0xEA, "Application File System Interface Object"),
		v(0xEB, "Assembly Object"),
		v(0xEC, "Modular Device Object"),
		v(0xED, "CIP Identity Host Object"),
		v(0xEE, "Sync Object"),
		v(0xEF, "BACnet Object"),
		v(0xF0, "Energy Control Object"),
		v(0xF1, "SERCOS III Object"),
		v(0xF2, "PROFIdrive Object"),
		v(0xF3, "ControlNet Object"),
		v(0xF4, "CompoNet Object"),
		v(0xF5, "EtherCAT Object"),
		v(0xF6, "PROFINET IO Object"),
		v(0xF7, "CC-Link Host Object"),
		v(0xF8, "EtherNet/IP Host Object"),
		v(0xF9, "Ethernet Host Object"),
		v(0xFA, "Modbus Host Object"),
		v(0xFB, "CANopen Object"),
		v(0xFC, "DeviceNet Host Object"),
		v(0xFD, "PROFIBUS DP-V1 Object"),
		v(0xFE, "Application Data Object"),
		v(0xFF, "Application Object"),
	)

	d.Commands = newTable(
		v(0x01, "Get_Attribute"),
		v(0x02, "Set_Attribute"),
		v(0x03, "Create"),
		v(0x04, "Delete"),
		v(0x05, "Reset"),
		v(0x06, "Get_Enum_String"),
		v(0x07, "Get_Indexed_Attribute"),
		v(0x08, "Set_Indexed_Attribute"),
	)

	d.Errors = newTable(
		alertValue(0x02, "Invalid message format"),
		alertValue(0x03, "Unsupported object"),
		alertValue(0x04, "Unsupported instance"),
		alertValue(0x05, "Unsupported command"),
		alertValue(0x06, "Invalid CmdExt0"),
		alertValue(0x07, "Invalid CmdExt1"),
		alertValue(0x08, "Attribute not settable"),
		alertValue(0x09, "Attribute not gettable"),
		alertValue(0x0A, "Too much data"),
		alertValue(0x0B, "Not enough data"),
		alertValue(0x0C, "Out of range"),
		alertValue(0x0D, "Invalid state"),
		alertValue(0x0E, "Out of resources"),
		alertValue(0x0F, "Segmentation failure"),
		alertValue(0x10, "Segmentation buffer overflow"),
		alertValue(0x11, "Value too high"),
		alertValue(0x12, "Value too low"),
		alertValue(0x13, `NAK writes to "read process data" mapped attr.`),
		alertValue(0x14, "Response does not fit"),
		alertValue(0x15, "General error"),
		alertValue(0x16, "Protected access"),
		alertValue(0x17, "Data not available"),
		alertValue(0xFF, "Object specific error"),
	)

	d.NetworkTypes = newTable(
		v(0x0001, "PROFIBUS DP-V0"),
		v(0x0005, "PROFIBUS DP-V1"),
		v(0x0020, "CANopen"),
		v(0x0025, "DeviceNet"),
		v(0x0045, "Modbus-RTU"),
		v(0x0065, "ControlNet"),
		v(0x0080, "Modbus-TCP"),
		v(0x0084, "PROFINET RT"),
		v(0x0085, "EtherNet/IP"),
		v(0x0087, "EtherCAT"),
		v(0x0089, "PROFINET IRT"),
		v(0x0090, "CC-Link"),
		v(0x0093, "Modbus-TCP 2-Port"),
		v(0x0095, "CompoNet"),
		v(0x0096, "PROFINET RT 2-port"),
		v(0x0098, "SERCOS III"),
		v(0x0099, "BACnet MS/TP"),
		v(0x009A, "BACnet/IP"),
		v(0x009B, "EtherNet/IP 2-Port BB DLR"),
		v(0x009C, "EtherNet/IP 2-Port"),
		v(0x009D, "PROFINET IRT FO"),
		v(0x009E, "CC-Link IE Field Network"),
		v(0x009F, "POWERLINK"),
		v(0x00A3, "Common Ethernet"),
		v(0x00AB, "EtherNet/IP IIoT"),
		v(0x00AD, "PROFINET IRT IIoT"),
		v(0x00AE, "PROFINET IRT FO IIoT"),
		v(0x00AF, "Common Ethernet IIoT"),
	)

	networkTypeIndexes = map[uint16]int{
		0x0085: networkEtherNetIP,
		0x009B: networkEtherNetIP,
		0x009C: networkEtherNetIP,
		0x00AB: networkEtherNetIP,
		0x0087: networkEtherCAT,
		0x0084: networkProfinet,
		0x0089: networkProfinet,
		0x0096: networkProfinet,
		0x009D: networkProfinet,
		0x00AD: networkProfinet,
		0x00AE: networkProfinet,
		0x0005: networkProfibusDPV1,
		0x0020: networkCANopen,
		0x0025: networkDeviceNet,
		0x0065: networkControlNet,
	}

	fileSystemCommands := newTable(
		v(0x10, "File_Open"),
		v(0x11, "File_Close"),
		v(0x12, "File_Delete"),
		v(0x13, "File_Copy"),
		v(0x14, "File_Rename"),
		v(0x15, "File_Read"),
		v(0x16, "File_Write"),
		v(0x17, "Directory_Open"),
		v(0x18, "Directory_Close"),
		v(0x19, "Directory_Delete"),
		v(0x1A, "Directory_Read"),
		v(0x1B, "Directory_Create"),
		v(0x1C, "Directory_Change"),
		v(0x1D, "Format_Disc"),
	)
	d.objectCommands[objNetwork] = newTable(
		v(0x10, "Map_ADI_Write_Area"),
		v(0x11, "Map_ADI_Read_Area"),
		v(0x12, "Map_ADI_Write_Ext_Area"),
		v(0x13, "Map_ADI_Read_Ext_Area"),
	)
	d.objectCommands[objFunctionalSafety] = newTable(
		alertValue(0x10, "Error_Confirmation"),
	)
	d.objectCommands[objFileSystem] = fileSystemCommands
	d.objectCommands[objAppFileSystem] = fileSystemCommands
	d.objectCommands[objAssembly] = newTable(
		v(0x10, "Write_Assembly_Data"),
		v(0x11, "Read_Assembly_Data"),
	)
	d.objectCommands[objModularDevice] = newTable(
		v(0x15, "Get_List"),
	)
	d.objectCommands[objProfinet] = newTable(
		v(0x10, "Get_Record"),
		v(0x11, "Set_Record"),
		v(0x12, "Get_IM_Record"),
		v(0x13, "Set_IM_Record"),
		v(0x14, "AR_Check_Ind"),
		alertValue(0x15, "Cfg_Mismatch_Ind"),
		v(0x16, "AR_Info_Ind"),
		v(0x17, "End_Of_Prm_Ind"),
		alertValue(0x18, "AR_Abort_Ind"),
		alertValue(0x19, "Plug_Sub_Failed"),
		alertValue(0x1A, "Expected_Ident_Ind"),
		v(0x1B, "Save_IP_Suite"),
		v(0x1C, "Save_Station_Name"),
		v(0x1E, "Indicate_Device"),
	)
	d.objectCommands[objEtherNetIP] = newTable(
		v(0x10, "Process_CIP_Obj_Request"),
		v(0x11, "Set_Config_Data"),
		v(0x12, "Process_CIP_Routing_Request"),
		v(0x13, "Get_Config_Data"),
		v(0x14, "Process_CIP_Obj_Request_Ext"),
	)
	d.objectCommands[objEtherCAT] = newTable(
		v(0x10, "Get_Object_Description"),
	)
	d.objectCommands[objAppData] = newTable(
		v(0x10, "Get_Instance_Number_By_Order"),
		v(0x11, "Get_Profile_Inst_Numbers"),
		alertValue(0x12, "Get_ADI_Info (Deprecated)"),
		v(0x13, "Remap_ADI_Write_Area"),
		v(0x14, "Remap_Adi_Read_Area"),
		v(0x15, "Get_Instance_Numbers"),
	)
	d.objectCommands[objApplication] = newTable(
		v(0x10, "Reset_Request"),
		v(0x11, "Change_Language_Request"),
		v(0x12, "Reset_Diagnostic"),
	)

	d.objectErrors[objAnybus] = newTable(
		alertValue(0x01, "Invalid process data config"),
		alertValue(0x02, "Invalid device address"),
		alertValue(0x03, "Invalid communication settings"),
	)
	d.objectErrors[objDiagnostic] = newTable(
		alertValue(0x01, "Event could not be removed"),
		alertValue(0xFF, "Network specific error"),
	)
	d.objectErrors[objNetwork] = newTable(
		alertValue(0x01, "Invalid ADI data type"),
		alertValue(0x02, "Invalid number of elements"),
		alertValue(0x03, "Invalid total size"),
		alertValue(0x04, "Multiple mapping"),
		alertValue(0x05, "Invalid ADI order number"),
		alertValue(0x06, "Invalid map command sequence"),
		alertValue(0x07, "Command impossible to parse"),
		alertValue(0x08, "Invalid data alignment"),
		alertValue(0x09, "Invalid use of ADI 0"),
		alertValue(0xFF, "Network specific restriction"),
	)
	d.objectErrors[objAdditionalDiag] = newTable(
		alertValue(0x01, "Invalid slot number"),
		alertValue(0x02, "Invalid IO type"),
		alertValue(0x03, "Invalid channel number"),
		alertValue(0x04, "Invalid channel type"),
		alertValue(0x05, "Invalid error type"),
		alertValue(0x06, "Invalid alarm specifier"),
		alertValue(0x07, "Alarm type disabled"),
		alertValue(0x08, "Too many active alarms"),
		alertValue(0x09, "Alarm type already active"),
	)
	fileSystemErrors := newTable(
		alertValue(1, "File open failed"),
		alertValue(2, "File close failed"),
		alertValue(3, "File delete failed"),
		alertValue(4, "Directory open failed"),
		alertValue(5, "Directory close failed"),
		alertValue(6, "Directory create failed"),
		alertValue(7, "Directory delete failed"),
		alertValue(8, "Directory change failed"),
		alertValue(9, "File copy open read failed"),
		alertValue(10, "File copy open write failed"),
		alertValue(11, "File copy write failed"),
		alertValue(12, "File rename failed"),
	)
	d.objectErrors[objFileSystem] = fileSystemErrors
	d.objectErrors[objAppFileSystem] = fileSystemErrors
	d.objectErrors[objFunctionalSafety] = newTable(
		alertValue(0x01, "Rejected by module"),
		alertValue(0x02, "Module response faulty"),
	)
	d.objectErrors[objEtherNetIP] = newTable(
		alertValue(0x01, "Ownership conflict"),
		alertValue(0x02, "Invalid configuration"),
	)
	d.objectErrors[objAppData] = newTable(
		alertValue(0x01, "Mapping item NAK"),
		alertValue(0x02, "Invalid total size"),
		alertValue(0x03, "Attribute controlled from other channel"),
	)

	ethernetAttrs := newTable(
		v(1, "MAC Address"),
		v(2, "Enable HICP"),
		v(3, "Enable Web Server"),
		v(4, "Enable Modbus TCP"),
		v(5, "Enable Web ADI Access"),
		v(6, "Enable FTP Server"),
		v(7, "Enable Admin Mode"),
		v(8, "Network Status"),
		v(9, "Port 1 MAC Address"),
		v(10, "Port 2 MAC Address"),
		v(11, "Enable ACD"),
		v(12, "Port 1 State"),
		v(13, "Port 2 State"),
		v(14, "Enable Web Update"),
		v(15, "Enable Reset From HICP"),
		v(16, "IP Configuration"),
		v(17, "IP Address Byte 0-2"),
		v(18, "PHY Duplex Fallback Config"),
	)
	fileSystemAttrs := attributeTables{
		object: newTable(
			v(11, "Max Number of Instances"),
			v(12, "Disable Virtual File System"),
			v(13, "Total Disc Size"),
			v(14, "Free Disc Size"),
			v(15, "Disc CRC"),
			v(16, "Disc Type"),
			v(17, "Disc Fault Tolerance Level"),
		),
		instance: newTable(
			v(1, "Instance Type"),
			v(2, "File Size"),
			v(3, "Current Instance Path"),
		),
	}

	d.objectAttributes[objAnybus] = attributeTables{instance: newTable(
		typed(1, "Module Type", "UINT16"),
		typed(2, "Firmware Version", "UINT8[3]"),
		typed(3, "Serial Number", "UINT32"),
		typed(4, "Watchdog Timeout", "UINT16"),
		typed(5, "Setup Complete", "BOOL"),
		typed(6, "Exception", "ENUM"),
		v(7, "Fatal Event"),
		typed(8, "Error Counters", "UINT16[4]"),
		typed(9, "Language", "ENUM"),
		typed(10, "Provider ID", "UINT16"),
		typed(11, "Provider Info", "UINT16"),
		v(12, "LED Colors"),
		typed(13, "LED Status", "UINT16"),
		v(14, "Switch Status"),
		typed(15, "Auxiliary Bit Function", "UINT8"),
		typed(16, "GPIO Configuration", "UINT16"),
		v(17, "Virtual Attributes"),
		v(18, "Black/White List"),
		typed(19, "Network Time", "UINT64"),
		typed(20, "FW Custom Version", "UINT8"),
		typed(21, "Anybus IP License", "ENUM"),
	)}
	d.objectAttributes[objDiagnostic] = attributeTables{
		object: newTable(
			v(11, "Maximum Number of Instances"),
			v(12, "Supported Functionality"),
		),
		instance: newTable(
			typed(1, "Severity", "UINT8"),
			typed(2, "Event Code", "UINT8"),
			v(3, "Network Specific Event Info"),
			typed(4, "Slot", "UINT16"),
			typed(5, "ADI", "UINT16"),
			typed(6, "Element", "UINT8"),
			typed(7, "Bit", "UINT8"),
		),
	}
	d.objectAttributes[objNetwork] = attributeTables{instance: newTable(
		typed(1, "Network Type", "UINT16"),
		typed(2, "Network Type String", "CHAR[]"),
		typed(3, "Data Format", "ENUM"),
		typed(4, "Parameter Support", "BOOL"),
		typed(5, "Write Process Data Size", "UINT16"),
		typed(6, "Read Process Data Size", "UINT16"),
		typed(7, "Exception Information", "UINT8"),
	)}
	d.objectAttributes[objNetworkConfig] = attributeTables{instance: newTable(
		v(1, "Name"),
		v(2, "Data Type"),
		v(3, "Number of Elements"),
		v(4, "Descriptor"),
		v(5, "Value"),
		v(6, "Configured Value"),
	)}
	d.objectAttributes[objSocket] = attributeTables{
		object: newTable(
			v(11, "Maximum Number of Instances"),
		),
		instance: newTable(
			v(1, "Socket Type"),
			v(2, "Local Port"),
			v(3, "Host IP Address"),
			v(4, "Host Port"),
			v(5, "TCP State"),
			v(6, "Bytes in RX Buffer"),
			v(7, "Bytes in TX Buffer"),
			v(8, "Reuse Address Option"),
			v(9, "Keep Alive Option"),
			v(10, "IP Multicast TTL"),
			v(11, "IP Multicast Loop"),
			v(12, "TCP Ack Delay Time"),
			v(13, "TCP No Delay"),
			v(14, "TCP Connect Timeout"),
		),
	}
	d.objectAttributes[objSMTP] = attributeTables{
		object: newTable(
			v(11, "Maximum Number of Instances"),
			v(12, "Emails Sent"),
			v(13, "Emails Failed to Send"),
		),
		instance: newTable(
			v(1, "From Address"),
			v(2, "To Address"),
			v(3, "Message Subject"),
			v(4, "Message Body"),
		),
	}
	d.objectAttributes[objFileSystem] = fileSystemAttrs
	d.objectAttributes[objAppFileSystem] = fileSystemAttrs
	d.objectAttributes[objFunctionalSafety] = attributeTables{instance: newTable(
		v(1, "State"),
		v(2, "Vendor ID"),
		v(3, "I/O Channel ID"),
		v(4, "Firmware Version"),
		v(5, "Serial Number"),
		v(6, "Output Data"),
		v(7, "Input Data"),
		v(8, "Error Counters"),
		v(9, "Event Log"),
		v(10, "Exception Information"),
		v(11, "Bootloader Version"),
	)}
	d.objectAttributes[objNetworkEthernet] = attributeTables{instance: ethernetAttrs}
	d.objectAttributes[objEthernet] = attributeTables{instance: ethernetAttrs}
	d.objectAttributes[objCIPPort] = attributeTables{
		object: newTable(
			v(11, "Maximum Number of Instances"),
		),
		instance: newTable(
			v(1, "Port Type"),
			v(2, "Port Number"),
			v(3, "Link Path"),
			v(4, "Port Name"),
			v(7, "Node Address"),
			v(8, "Port Node Range"),
		),
	}
	d.objectAttributes[objSafety] = attributeTables{instance: newTable(
		v(1, "Safety Enabled"),
		v(2, "Baud Rate"),
		v(3, "I/O Configuration"),
	)}
	d.objectAttributes[objPowerlink] = attributeTables{instance: newTable(
		v(1, "Vendor ID"),
		v(2, "Product Code"),
		v(3, "Revision High Word"),
		v(4, "Revision Low Word"),
		v(5, "Serial Number"),
		v(6, "Manufacturer Device Name"),
		v(7, "Manufacturer Hardware Version"),
		v(8, "Manufacturer Software Version"),
		v(9, "Device Type"),
		v(14, "Manufacturer Name"),
	)}
	d.objectAttributes[objAssembly] = attributeTables{
		object: newTable(
			v(11, "Write PD Instance List"),
			v(12, "Read PD Instance List"),
		),
		instance: newTable(
			v(1, "Assembly Descriptor"),
			v(2, "ADI Map 0"),
			v(3, "ADI Map 1"),
			v(4, "ADI Map 2"),
			v(5, "ADI Map 3"),
			v(6, "ADI Map 4"),
			v(7, "ADI Map 5"),
			v(8, "ADI Map 6"),
			v(9, "ADI Map 7"),
			v(10, "ADI Map 8"),
			v(11, "ADI Map 9"),
			v(12, "ADI Map 10"),
		),
	}
	d.objectAttributes[objModularDevice] = attributeTables{object: newTable(
		v(11, "Number of Slots"),
		v(12, "Number of ADIs Per Slot"),
	)}
	d.objectAttributes[objCIPIdentity] = attributeTables{instance: newTable(
		v(1, "Vendor ID"),
		v(2, "Device Type"),
		v(3, "Product Code"),
		v(4, "Revision"),
		v(5, "Status"),
		v(6, "Serial Number"),
		v(7, "Product Name"),
	)}
	d.objectAttributes[objSync] = attributeTables{instance: newTable(
		v(1, "Cycle Time"),
		v(2, "Output Valid"),
		v(3, "Input Capture"),
		v(4, "Output Processing Time"),
		v(5, "Input Processing Time"),
		v(6, "Minimum Cycle Time"),
		v(7, "Sync Mode"),
		v(8, "Supported Sync Modes"),
	)}
	d.objectAttributes[objEtherCAT] = attributeTables{instance: newTable(
		v(1, "Vendor ID"),
		v(2, "Product Code"),
		v(3, "Major Revision"),
		v(4, "Minor Revision"),
		v(5, "Serial Number"),
		v(6, "Manufacturer Device Name"),
		v(7, "Manufacturer Hardware Version"),
		v(8, "Manufacturer Software Version"),
		v(9, "ENUM ADIs"),
		v(10, "Device Type"),
		v(11, "Write PD Assembly Instance Translation"),
		v(12, "Read PD Assembly Instance Translation"),
		v(13, "ADI Translation"),
		v(15, "Object SubIndex Translation"),
		v(16, "Enable FoE"),
		v(17, "Enable EoE"),
		v(18, "Change Shift Register Switch"),
		v(19, "Set Device ID as Configured Station Alias"),
		v(20, "EtherCAT State"),
		v(21, "State Timeouts"),
	)}
	d.objectAttributes[objProfinet] = attributeTables{instance: newTable(
		v(1, "Device ID"),
		v(2, "Vendor ID (I&M Manufacturer ID)"),
		v(3, "Station Type"),
		v(4, "MaxAr"),
		alertValue(5, "Reserved"),
		alertValue(6, "Reserved"),
		v(7, "Record Data Mode"),
		v(8, "I&M Order ID"),
		v(9, "I&M Serial Number"),
		v(10, "I&M Hardware Revision"),
		v(11, "I&M Software Revision"),
		v(12, "I&M Revision Counter"),
		v(13, "I&M Profile ID"),
		v(14, "I&M Profile Specific Type"),
		v(15, "I&M Version"),
		v(16, "I&M Supported"),
		v(17, "Port 1 MAC Address"),
		v(18, "Port 2 MAC Address"),
		v(19, "System Description"),
		v(20, "Interface Description"),
		v(21, "Module Id Assignment Mode"),
		v(22, "System Contact"),
		v(23, "PROFIenergy Functionality"),
		v(24, "Custom Station Name"),
	)}
	d.objectAttributes[objEtherNetIP] = attributeTables{instance: newTable(
		v(1, "Vendor ID"),
		v(2, "Device Type"),
		v(3, "Product Code"),
		v(4, "Revision"),
		v(5, "Serial Number"),
		v(6, "Product Name"),
		v(7, "Producing Instance Number"),
		v(8, "Consuming Instance Number"),
		v(9, "Enable Communication Settings From Net"),
		v(11, "Enable CIP Forwarding"),
		v(12, "Enable Parameter Object"),
		v(13, "Input-Only Heartbeat Instance Number"),
		v(14, "Listen-Only Heartbeat Instance Number"),
		v(15, "Assembly Object Configuration Instance Number"),
		v(16, "Disable Strict I/O Match"),
		v(17, "Enable Unconnected Routing"),
		v(18, "Input-Only Extended Heartbeat Instance Number"),
		v(19, "Listen-Only Extended Heartbeat Instance Number"),
		v(20, "Interface Label Port 1"),
		v(21, "Interface Label Port 2"),
		v(22, "Interface Label Internal Port"),
		v(23, "Enable Application CIP Object Extended"),
		v(24, "Prepend Producing"),
		v(25, "Prepend Consuming"),
		v(26, "Enable EtherNet/IP QuickConnect"),
		v(27, "Producing Instance Mapping"),
		v(28, "Consuming Instance Mapping"),
		v(29, "Ignore Sequence Count Check"),
		v(30, "ABCC ADI Object Number"),
		v(31, "Enable DLR"),
	)}
	d.objectAttributes[objAppData] = attributeTables{
		object: newTable(
			v(11, "No. of RD PD Mappable Instances"),
			v(12, "No. of WR PD Mappable Instances"),
			v(13, "No. of Non-Volatile Instances"),
		),
		instance: newTable(
			v(1, "Name"),
			v(2, "Data Type"),
			v(3, "Number of Elements"),
			v(4, "Descriptor"),
			v(5, "Value(s)"),
			v(6, "Max Value"),
			v(7, "Min Value"),
			v(8, "Default Value"),
			v(9, "Number of SubElements"),
			v(10, "Element Name"),
		),
	}
	d.objectAttributes[objApplication] = attributeTables{instance: newTable(
		typed(1, "Configured", "BOOL"),
		v(2, "Supported Languages"),
		typed(3, "Serial Number", "UINT32"),
		v(4, "Parameter Control Sum"),
		typed(5, "Candidate Firmware Available", "BOOL"),
		typed(6, "Hardware Configurable Address", "BOOL"),
	)}

	defaultDictionary = d

	anybusExceptions = newTable(
		v(0x00, "No exception"),
		alertValue(0x01, "Application timeout"),
		alertValue(0x02, "Invalid device address"),
		alertValue(0x03, "Invalid communication settings"),
		alertValue(0x04, "Major unrecoverable app event"),
		alertValue(0x05, "Waiting for application reset"),
		alertValue(0x06, "Invalid process data config"),
		alertValue(0x07, "Invalid application response"),
		alertValue(0x08, "NVS memory checksum error"),
		alertValue(0x09, "Functional Safety Module error"),
		alertValue(0x0A, "Insufficient application implementation"),
		alertValue(0x0B, "Missing serial number"),
		alertValue(0x0C, "File system is corrupt"),
	)

	noInfo := v(0x00, "No information")
	networkExceptions[networkEtherNetIP] = newTable(
		noInfo,
		alertValue(0x01, "Invalid Sync Instance"),
		alertValue(0x02, "Invalid Producing Map Size"),
		alertValue(0x03, "Invalid Consuming Map Size"),
		alertValue(0x04, "Missing MAC Address"),
	)
	networkExceptions[networkEtherCAT] = newTable(
		noInfo,
		alertValue(1, "Illegal Data Type"),
		alertValue(2, "Instance By Order Error"),
		alertValue(3, "Highest Instance Error"),
		alertValue(4, "Number of Instances Error"),
		alertValue(5, "Highest Instance Lower Than Number of Instances"),
		alertValue(6, "Assembly Mapping Error"),
		alertValue(7, "Get Instance Numbers Error"),
		alertValue(8, "Modular Device Error"),
		alertValue(9, "No MAC Address"),
	)
	networkExceptions[networkProfinet] = newTable(
		noInfo,
		alertValue(1, "Illegal Value"),
		alertValue(2, "Wrong Data Size"),
		alertValue(3, "Illegal Response"),
		alertValue(4, "Missing MAC Address"),
		alertValue(5, "Command Timeout"),
	)
	networkExceptions[networkProfibusDPV1] = newTable(
		noInfo,
		alertValue(0x01, "Too Much Default Configuration Data"),
		alertValue(0x02, "Configuration Data Attribute Too Big"),
		alertValue(0x03, "Configuration Data Mismatch With ADI Map"),
		alertValue(0x04, "Too Much Process Data"),
		alertValue(0x05, "Configuration Data And ADI Map Specified"),
		alertValue(0x06, "Set Slave Address Disabled"),
		alertValue(0x07, "Invalid Buffer Mode Attribute"),
		alertValue(0x08, "Configuration Data Attribute Invalid"),
		alertValue(0x09, "Configuration Data Attribute Too Much IO Data"),
		alertValue(0x0A, "Unable To Get Parameter List"),
		alertValue(0x0B, "Invalid Remap Command Response"),
		alertValue(0x0C, "Invalid Mapping In Slot 0"),
		alertValue(0x0D, "Invalid Mapping In Empty Slot"),
	)
	networkExceptions[networkCANopen] = newTable(
		noInfo,
		alertValue(1, "Illegal Data Type"),
	)
	networkExceptions[networkDeviceNet] = newTable(
		noInfo,
		alertValue(0x01, "Invalid Sync Instance"),
	)
	networkExceptions[networkControlNet] = newTable(
		noInfo,
		alertValue(0x01, "Invalid Sync Instance"),
	)

	spiControlNames = newTable(
		v(0x80, "TOGGLE"),
		alertValue(0x60, "RESERVED"),
		v(0x10, "LAST_FRAG"),
		v(0x08, "M"),
		v(0x06, "CMDCNT"),
		v(0x01, "WRPD_VALID"),
	)
	spiStatusNames = newTable(
		alertValue(0xC0, "RESERVED"),
		v(0x20, "NEW_PD"),
		v(0x10, "LAST_FRAG"),
		v(0x08, "M"),
		v(0x06, "CMDCNT"),
		alertValue(0x01, "WRMSG_FULL"),
	)
	interruptMaskBits = newTable(
		v(0x01, "RDPD"),
		v(0x02, "RDMSG"),
		v(0x04, "WRMSG"),
		v(0x08, "ANBR"),
		v(0x10, "STATUS"),
		alertValue(0x20, "RESERVED"),
		v(0x40, "SYNC"),
		alertValue(0x80, "RESERVED"),
	)
	ledStatusBits = newTable(
		v(0x0001, "LED1A"),
		v(0x0002, "LED1B"),
		v(0x0004, "LED2A"),
		v(0x0008, "LED2B"),
		v(0x0010, "LED3A"),
		v(0x0020, "LED3B"),
		v(0x0040, "LED4A"),
		v(0x0080, "LED4B"),
		alertValue(0xFF00, "RESERVED"),
	)
	anybusStates = newTable(
		v(0x00, "SETUP"),
		v(0x01, "NW_INIT"),
		v(0x02, "WAIT_PROCESS"),
		v(0x03, "IDLE"),
		v(0x04, "PROCESS_ACTIVE"),
		alertValue(0x05, "ERROR"),
		alertValue(0x07, "EXCEPTION"),
	)
	applicationStates = newTable(
		v(0x00, "No Error"),
		v(0x01, "Not yet synchronized"),
		alertValue(0x02, "Sync configuration error"),
		alertValue(0x03, "Read process data configuration error"),
		alertValue(0x04, "Write process data configuration error"),
		alertValue(0x05, "Synchronization loss"),
		alertValue(0x06, "Excessive data loss"),
		alertValue(0x07, "Output error"),
	)
}
