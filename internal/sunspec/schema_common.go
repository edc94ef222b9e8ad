package sunspec

// commonFields is SunSpec model 1. The table starts with the two identifier
// registers, which is why the first discovered block is shifted back by 2.
var commonFields = []FieldDescriptor{
	ro(1, 2, DecodeString, KindString, "", "C_SunSpec_ID"),
	ro(3, 1, DecodeRaw, KindUint16, "", "C_SunSpec_DID"),
	ro(4, 1, DecodeRaw, KindUint16, "Registers", "C_SunSpec_Length"),
	ro(5, 16, DecodeString, KindString, "", "C_Manufacturer"),
	ro(21, 16, DecodeString, KindString, "", "C_Model"),
	ro(37, 8, DecodeString, KindString, "", "C_Options"),
	ro(45, 8, DecodeString, KindString, "", "C_Version"),
	ro(53, 16, DecodeString, KindString, "", "C_SerialNumber"),
	ro(69, 1, DecodeRaw, KindUint16, "", "C_DeviceAddress"),
}

// inverterFields is shared by the SunSpec inverter models 101, 102 and 103.
var inverterFields = []FieldDescriptor{
	ro(1, 1, DecodeRaw, KindUint16, "", "I_SunSpec_DID"),
	ro(2, 1, DecodeRaw, KindUint16, "Registers", "I_SunSpec_Length"),
	ro(3, 1, DecodeRaw, KindUint16, "Amps", "I_AC_Current"),
	ro(4, 1, DecodeRaw, KindUint16, "Amps", "I_AC_CurrentA"),
	ro(5, 1, DecodeRaw, KindUint16, "Amps", "I_AC_CurrentB"),
	ro(6, 1, DecodeRaw, KindUint16, "Amps", "I_AC_CurrentC"),
	ro(7, 1, DecodeRaw, KindScaleFactor, "", "I_AC_Current_SF"),
	ro(8, 1, DecodeRaw, KindUint16, "Volts", "I_AC_VoltageAB"),
	ro(9, 1, DecodeRaw, KindUint16, "Volts", "I_AC_VoltageBC"),
	ro(10, 1, DecodeRaw, KindUint16, "Volts", "I_AC_VoltageCA"),
	ro(11, 1, DecodeRaw, KindUint16, "Volts", "I_AC_VoltageAN"),
	ro(12, 1, DecodeRaw, KindUint16, "Volts", "I_AC_VoltageBN"),
	ro(13, 1, DecodeRaw, KindUint16, "Volts", "I_AC_VoltageCN"),
	ro(14, 1, DecodeRaw, KindScaleFactor, "", "I_AC_Voltage_SF"),
	ro(15, 1, DecodeRaw, KindInt16, "Watts", "I_AC_Power"),
	ro(16, 1, DecodeRaw, KindScaleFactor, "", "I_AC_Power_SF"),
	ro(17, 1, DecodeRaw, KindUint16, "Hz", "I_AC_Frequency"),
	ro(18, 1, DecodeRaw, KindScaleFactor, "", "I_AC_Frequency_SF"),
	ro(19, 1, DecodeRaw, KindInt16, "VA", "I_AC_VA"),
	ro(20, 1, DecodeRaw, KindScaleFactor, "", "I_AC_VA_SF"),
	ro(21, 1, DecodeRaw, KindInt16, "VAr", "I_AC_VAR"),
	ro(22, 1, DecodeRaw, KindScaleFactor, "", "I_AC_VAR_SF"),
	ro(23, 1, DecodeRaw, KindInt16, "Pct", "I_AC_PF"),
	ro(24, 1, DecodeRaw, KindScaleFactor, "", "I_AC_PF_SF"),
	ro(25, 2, DecodeInt32, KindUint32, "WattHours", "I_AC_Energy_WH"),
	ro(27, 1, DecodeRaw, KindScaleFactor, "", "I_AC_Energy_WH_SF"),
	ro(28, 1, DecodeRaw, KindUint16, "Amps", "I_DC_Current"),
	ro(29, 1, DecodeRaw, KindScaleFactor, "", "I_DC_Current_SF"),
	ro(30, 1, DecodeRaw, KindUint16, "Volts", "I_DC_Voltage"),
	ro(31, 1, DecodeRaw, KindScaleFactor, "", "I_DC_Voltage_SF"),
	ro(32, 1, DecodeRaw, KindInt16, "Watts", "I_DC_Power"),
	ro(33, 1, DecodeRaw, KindScaleFactor, "", "I_DC_Power_SF"),
	ro(34, 1, DecodeRaw, KindInt16, "Degrees C", "I_Temp_Cab"),
	ro(35, 1, DecodeRaw, KindInt16, "Degrees C", "I_Temp_Sink"),
	ro(36, 1, DecodeRaw, KindInt16, "Degrees C", "I_Temp_Trans"),
	ro(37, 1, DecodeRaw, KindInt16, "Degrees C", "I_Temp_Other"),
	ro(38, 1, DecodeRaw, KindScaleFactor, "", "I_Temp_SF"),
	ro(39, 1, DecodeRaw, KindEnumerated, "", "I_Status"),
	ro(40, 1, DecodeRaw, KindEnumerated, "", "I_Status_Vendor"),
	ro(41, 2, DecodeHex8, KindBitfield32, "", "I_Event_1"),
	ro(43, 2, DecodeHex8, KindBitfield32, "", "I_Event_2"),
	ro(45, 2, DecodeHex8, KindBitfield32, "", "I_Event_1_Vendor"),
	ro(47, 2, DecodeHex8, KindBitfield32, "", "I_Event_2_Vendor"),
	ro(49, 2, DecodeHex8, KindBitfield32, "", "I_Event_3_Vendor"),
	ro(51, 2, DecodeHex8, KindBitfield32, "", "I_Event_4_Vendor"),
}
