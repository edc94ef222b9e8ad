package sunspec

// ModelOutBack (64110): AXS Port network and system settings.
var outbackFields = []FieldDescriptor{
	ro(1, 1, DecodeRaw, KindUint16, "", "OutBack_SunSpec_DID"),
	ro(2, 1, DecodeRaw, KindUint16, "Registers", "OutBack_SunSpec_Length"),
	ro(3, 1, DecodeRaw, KindUint16, "", "OutBack_Major_Firmware_Number"),
	ro(4, 1, DecodeRaw, KindUint16, "", "OutBack_Mid_Firmware_Number"),
	ro(5, 1, DecodeRaw, KindUint16, "", "OutBack_Minor_Firmware_Number"),
	ro(6, 1, DecodeRaw, KindUint16, "", "OutBack_Hardware_Revision"),
	ro(7, 1, DecodeHex4, KindBitfield16, "", "OutBack_Gateway_Options"),
	ro(8, 1, DecodeRaw, KindUint16, "", "OutBack_Encryption_Key"),
	ro(9, 3, DecodeIPAddress, KindString, "", "OutBack_MAC_Address"),
	rw(12, 2, DecodeInt32, KindUint32, "", "OutBack_Write_Password"),
	rw(14, 1, DecodeRaw, KindEnumerated, "", "OutBack_Enable_DHCP"),
	rw(15, 2, DecodeIPAddress, KindIPAddress, "", "OutBack_TCPIP_Address"),
	rw(17, 2, DecodeIPAddress, KindIPAddress, "", "OutBack_TCPIP_Gateway"),
	rw(19, 2, DecodeIPAddress, KindIPAddress, "", "OutBack_TCPIP_Netmask"),
	rw(21, 2, DecodeIPAddress, KindIPAddress, "", "OutBack_TCPIP_DNS_1"),
	rw(23, 2, DecodeIPAddress, KindIPAddress, "", "OutBack_TCPIP_DNS_2"),
	rw(25, 1, DecodeRaw, KindUint16, "", "OutBack_ModBus_Port"),
	rw(26, 20, DecodeString, KindString, "", "OutBack_SMTP_Server_Name"),
	rw(46, 16, DecodeString, KindString, "", "OutBack_SMTP_Account_Name"),
	rw(62, 1, DecodeRaw, KindEnumerated, "", "OutBack_SMTP_SSL_Enable"),
	rw(63, 20, DecodeString, KindString, "", "OutBack_SMTP_User_Name"),
	rw(83, 1, DecodeRaw, KindUint16, "Days", "OutBack_Status_Email_Interval"),
	rw(84, 1, DecodeRaw, KindUint16, "Hours", "OutBack_Status_Email_Status_Time"),
	rw(85, 25, DecodeString, KindString, "", "OutBack_Status_Email_Subject_Line"),
	rw(110, 20, DecodeString, KindString, "", "OutBack_Status_Email_To_Address_1"),
	rw(130, 20, DecodeString, KindString, "", "OutBack_Status_Email_To_Address_2"),
	rw(150, 1, DecodeRaw, KindEnumerated, "", "OutBack_Alarm_Email_Enable"),
	rw(151, 30, DecodeString, KindString, "", "OutBack_System_Name"),
	rw(181, 1, DecodeRaw, KindInt16, "Hours", "OutBack_Time_Zone"),
	rw(182, 1, DecodeRaw, KindEnumerated, "", "OutBack_Enable_Time_Zone_DST"),
	rw(183, 1, DecodeRaw, KindUint16, "", "OutBack_Date_Year"),
	rw(184, 1, DecodeRaw, KindUint16, "", "OutBack_Date_Month"),
	rw(185, 1, DecodeRaw, KindUint16, "", "OutBack_Date_Day"),
	rw(186, 1, DecodeRaw, KindUint16, "", "OutBack_Time_Hour"),
	rw(187, 1, DecodeRaw, KindUint16, "", "OutBack_Time_Minute"),
	rw(188, 1, DecodeRaw, KindUint16, "", "OutBack_Time_Second"),
	ro(189, 1, DecodeRaw, KindInt16, "Degrees C", "OutBack_Temp_Batt"),
	ro(190, 1, DecodeRaw, KindInt16, "Degrees C", "OutBack_Temp_Ambient"),
	ro(191, 1, DecodeRaw, KindScaleFactor, "", "OutBack_Temp_SF"),
	ro(192, 1, DecodeHex4, KindBitfield16, "", "OutBack_Error"),
	ro(193, 1, DecodeHex4, KindBitfield16, "", "OutBack_Status"),
	rw(194, 1, DecodeRaw, KindUint16, "", "OutBack_Update_Device_Firmware_Port"),
	ro(195, 1, DecodeRaw, KindEnumerated, "", "OutBack_Gateway_Type"),
	ro(196, 1, DecodeRaw, KindUint16, "Volts", "OutBack_System_Voltage"),
	ro(197, 1, DecodeFloat, KindUint16, "Volts", "OutBack_Measured_System_Voltage"),
	rw(198, 1, DecodeRaw, KindEnumerated, "", "OutBack_AGS_Mode"),
	rw(199, 1, DecodeRaw, KindUint16, "", "OutBack_AGS_Port"),
	rw(200, 1, DecodeRaw, KindEnumerated, "", "OutBack_AGS_Port_Type"),
	rw(201, 1, DecodeRaw, KindEnumerated, "", "OutBack_AGS_Generator_Type"),
	rw(202, 1, DecodeFloat, KindUint16, "Volts", "OutBack_AGS_DC_Gen_Absorb_Voltage"),
	rw(203, 1, DecodeFloat, KindUint16, "Hours", "OutBack_AGS_DC_Gen_Absorb_Time"),
	rw(204, 1, DecodeRaw, KindUint16, "Minutes", "OutBack_AGS_Fault_Time"),
	rw(205, 1, DecodeRaw, KindUint16, "Minutes", "OutBack_AGS_Gen_Cool_Down_Time"),
	rw(206, 1, DecodeRaw, KindUint16, "Minutes", "OutBack_AGS_Gen_Warm_Up_Time"),
	rw(207, 1, DecodeRaw, KindEnumerated, "", "OutBack_Generator_Exercise_Mode"),
	rw(208, 1, DecodeRaw, KindEnumerated, "", "OutBack_Load_Grid_Transfer_Mode"),
	rw(209, 1, DecodeFloat, KindUint16, "kW", "OutBack_Load_Grid_Transfer_Threshold"),
	rw(210, 1, DecodeRaw, KindUint16, "Seconds", "OutBack_Load_Grid_Transfer_Connect_Delay"),
	rw(211, 1, DecodeRaw, KindUint16, "Seconds", "OutBack_Load_Grid_Transfer_Disconnect_Delay"),
	rw(212, 1, DecodeFloat, KindUint16, "Volts", "OutBack_Load_Grid_Transfer_Connect_Battery_Voltage"),
	rw(213, 1, DecodeFloat, KindUint16, "Volts", "OutBack_Load_Grid_Transfer_Re_Connect_Battery_Voltage"),
	rw(214, 1, DecodeRaw, KindEnumerated, "", "OutBack_Global_Charger_Control_Mode"),
	rw(215, 1, DecodeFloat, KindUint16, "Amps", "OutBack_Global_Charger_Output_Limit"),
	rw(216, 1, DecodeRaw, KindEnumerated, "", "OutBack_Radian_AC_Coupled_Mode"),
	rw(217, 1, DecodeRaw, KindUint16, "", "OutBack_Radian_AC_Coupled_AUX_Port"),
	rw(218, 1, DecodeRaw, KindEnumerated, "", "OutBack_URL_Update_Lock"),
	ro(219, 1, DecodeRaw, KindEnumerated, "", "OutBack_Web_User_Logged_In_Status"),
	ro(220, 1, DecodeRaw, KindEnumerated, "", "OutBack_HUB_Type"),
	ro(221, 1, DecodeRaw, KindUint16, "", "OutBack_HUB_Major_Firmware_Number"),
	ro(222, 1, DecodeRaw, KindUint16, "", "OutBack_HUB_Mid_Firmware_Number"),
	ro(223, 1, DecodeRaw, KindUint16, "", "OutBack_HUB_Minor_Firmware_Number"),
	ro(224, 1, DecodeUHex4, KindUint16, "", "OutBack_Modbus_Port_Default"),
	ro(225, 2, DecodeIPAddress, KindIPAddress, "", "OutBack_IP_Address_Default"),
}

// ModelCC (64111): charge controller status.
var ccFields = []FieldDescriptor{
	ro(1, 1, DecodeRaw, KindUint16, "", "CC_SunSpec_DID"),
	ro(2, 1, DecodeRaw, KindUint16, "Registers", "CC_SunSpec_Length"),
	ro(3, 1, DecodeRaw, KindUint16, "", "CC_Port_Number"),
	ro(4, 1, DecodeRaw, KindScaleFactor, "", "CC_Voltage_SF"),
	ro(5, 1, DecodeRaw, KindScaleFactor, "", "CC_Current_SF"),
	ro(6, 1, DecodeRaw, KindScaleFactor, "", "CC_Power_SF"),
	ro(7, 1, DecodeRaw, KindScaleFactor, "", "CC_AH_SF"),
	ro(8, 1, DecodeRaw, KindScaleFactor, "", "CC_KWH_SF"),
	ro(9, 1, DecodeFloat, KindUint16, "Volts", "CC_Batt_Voltage"),
	ro(10, 1, DecodeFloat, KindUint16, "Volts", "CC_Array_Voltage"),
	ro(11, 1, DecodeFloat, KindUint16, "Amps", "CC_Batt_Current"),
	ro(12, 1, DecodeFloat, KindUint16, "Amps", "CC_Array_Current"),
	ro(13, 1, DecodeRaw, KindEnumerated, "", "CC_Charger_State"),
	ro(14, 1, DecodeRaw, KindUint16, "Watts", "CC_Watts"),
	ro(15, 1, DecodeFloat, KindUint16, "Volts", "CC_Todays_Min_Battery_Volts"),
	ro(16, 1, DecodeFloat, KindUint16, "Volts", "CC_Todays_Max_Battery_Volts"),
	ro(17, 1, DecodeFloat, KindUint16, "Volts", "CC_VOC"),
	ro(18, 1, DecodeFloat, KindUint16, "Volts", "CC_Todays_Peak_VOC"),
	ro(19, 1, DecodeFloat, KindUint16, "kWh", "CC_Todays_kWH"),
	ro(20, 1, DecodeRaw, KindUint16, "Amp Hours", "CC_Todays_AH"),
	ro(21, 1, DecodeFloat, KindUint16, "kWh", "CC_Lifetime_kWH_Hours"),
	ro(22, 1, DecodeFloat, KindUint16, "kAh", "CC_Lifetime_kAmp_Hours"),
	ro(23, 1, DecodeRaw, KindUint16, "Watts", "CC_Lifetime_Max_Watts"),
	ro(24, 1, DecodeFloat, KindUint16, "Volts", "CC_Lifetime_Max_Battery_Volts"),
	ro(25, 1, DecodeFloat, KindUint16, "Volts", "CC_Lifetime_Max_VOC"),
	ro(26, 1, DecodeRaw, KindScaleFactor, "", "CC_Temp_SF"),
	ro(27, 1, DecodeRaw, KindInt16, "Degrees C", "CC_Temp_Output_FETs"),
	ro(28, 1, DecodeRaw, KindInt16, "Degrees C", "CC_Temp_Enclosure"),
}

// ModelCCConfig (64112): charge controller configuration.
var ccConfigFields = []FieldDescriptor{
	ro(1, 1, DecodeRaw, KindUint16, "", "CCconfig_SunSpec_DID"),
	ro(2, 1, DecodeRaw, KindUint16, "Registers", "CCconfig_SunSpec_Length"),
	ro(3, 1, DecodeRaw, KindUint16, "", "CCconfig_Port_Number"),
	ro(4, 1, DecodeRaw, KindScaleFactor, "", "CCconfig_Voltage_SF"),
	ro(5, 1, DecodeRaw, KindScaleFactor, "", "CCconfig_Current_SF"),
	ro(6, 1, DecodeRaw, KindScaleFactor, "", "CCconfig_Hours_SF"),
	ro(7, 1, DecodeRaw, KindScaleFactor, "", "CCconfig_Power_SF"),
	ro(8, 1, DecodeRaw, KindScaleFactor, "", "CCconfig_AH_SF"),
	ro(9, 1, DecodeRaw, KindScaleFactor, "", "CCconfig_KWH_SF"),
	ro(10, 1, DecodeHex4, KindBitfield16, "", "CCconfig_Faults"),
	rw(11, 1, DecodeFloat, KindUint16, "Volts", "CCconfig_Absorb_Volts"),
	rw(12, 1, DecodeFloat, KindUint16, "Hours", "CCconfig_Absorb_Time_Hours"),
	rw(13, 1, DecodeRaw, KindUint16, "Amps", "CCconfig_Absorb_End_Amps"),
	rw(14, 1, DecodeFloat, KindUint16, "Volts", "CCconfig_Rebulk_Volts"),
	rw(15, 1, DecodeFloat, KindUint16, "Volts", "CCconfig_Float_Volts"),
	rw(16, 1, DecodeFloat, KindUint16, "Amps", "CCconfig_Bulk_Current"),
	rw(17, 1, DecodeFloat, KindUint16, "Volts", "CCconfig_EQ_Volts"),
	rw(18, 1, DecodeRaw, KindUint16, "Hours", "CCconfig_EQ_Time_Hours"),
	rw(19, 1, DecodeRaw, KindUint16, "Days", "CCconfig_Auto_EQ_Days"),
	rw(20, 1, DecodeRaw, KindEnumerated, "", "CCconfig_MPPT_Mode"),
	rw(21, 1, DecodeRaw, KindEnumerated, "", "CCconfig_Sweep_Width"),
	rw(22, 1, DecodeRaw, KindEnumerated, "", "CCconfig_Sweep_Max_Percentage"),
	rw(23, 1, DecodeRaw, KindUint16, "Pct", "CCconfig_U_Pick_Duty_Cycle"),
	rw(24, 1, DecodeRaw, KindEnumerated, "", "CCconfig_Grid_Tie_Mode"),
	rw(25, 1, DecodeRaw, KindEnumerated, "", "CCconfig_Temp_Comp_Mode"),
	rw(26, 1, DecodeFloat, KindUint16, "Volts", "CCconfig_Temp_Comp_Lower_Limit_Volts"),
	rw(27, 1, DecodeFloat, KindUint16, "Volts", "CCconfig_Temp_Comp_Upper_Limit_Volts"),
	rw(28, 1, DecodeRaw, KindUint16, "mV/C/Cell", "CCconfig_Temp_Comp_Slope"),
	rw(29, 1, DecodeRaw, KindEnumerated, "", "CCconfig_Auto_Restart_Mode"),
	rw(30, 1, DecodeFloat, KindUint16, "Volts", "CCconfig_Wakeup_VOC"),
	rw(31, 1, DecodeFloat, KindUint16, "Amps", "CCconfig_Snooze_Mode_Amps"),
	rw(32, 1, DecodeRaw, KindUint16, "Minutes", "CCconfig_Wakeup_Interval"),
	rw(33, 1, DecodeRaw, KindEnumerated, "", "CCconfig_AUX_Mode"),
	rw(34, 1, DecodeRaw, KindEnumerated, "", "CCconfig_AUX_Control"),
	ro(35, 1, DecodeRaw, KindEnumerated, "", "CCconfig_AUX_State"),
	rw(36, 1, DecodeRaw, KindEnumerated, "", "CCconfig_AUX_Polarity"),
	ro(37, 1, DecodeRaw, KindUint16, "", "CCconfig_Major_Firmware_Number"),
	ro(38, 1, DecodeRaw, KindUint16, "", "CCconfig_Mid_Firmware_Number"),
	ro(39, 1, DecodeRaw, KindUint16, "", "CCconfig_Minor_Firmware_Number"),
	rw(40, 1, DecodeRaw, KindUint16, "", "CCconfig_Set_Data_Log_Day_Offset"),
	ro(41, 1, DecodeRaw, KindUint16, "", "CCconfig_Get_Current_Data_Log_Day_Offset"),
	ro(42, 9, DecodeString, KindString, "", "CCconfig_Serial_Number"),
	ro(51, 9, DecodeString, KindString, "", "CCconfig_Model_Number"),
}

// ModelFX (64113): FX inverter status, one block per port.
var fxFields = []FieldDescriptor{
	ro(1, 1, DecodeRaw, KindUint16, "", "FX_SunSpec_DID"),
	ro(2, 1, DecodeRaw, KindUint16, "Registers", "FX_SunSpec_Length"),
	ro(3, 1, DecodeRaw, KindUint16, "", "FX_Port_Number"),
	ro(4, 1, DecodeRaw, KindScaleFactor, "", "FX_DC_Voltage_SF"),
	ro(5, 1, DecodeRaw, KindScaleFactor, "", "FX_AC_Current_SF"),
	ro(6, 1, DecodeRaw, KindScaleFactor, "", "FX_AC_Voltage_SF"),
	ro(7, 1, DecodeRaw, KindScaleFactor, "", "FX_AC_Frequency_SF"),
	ro(8, 1, DecodeFloat, KindUint16, "Amps", "FX_Inverter_Output_Current"),
	ro(9, 1, DecodeFloat, KindUint16, "Amps", "FX_Inverter_Charge_Current"),
	ro(10, 1, DecodeFloat, KindUint16, "Amps", "FX_Inverter_Buy_Current"),
	ro(11, 1, DecodeFloat, KindUint16, "Amps", "FX_Inverter_Sell_Current"),
	ro(12, 1, DecodeRaw, KindUint16, "Volts", "FX_AC_Output_Voltage"),
	ro(13, 1, DecodeRaw, KindEnumerated, "", "FX_Inverter_Operating_Mode"),
	ro(14, 1, DecodeHex4, KindBitfield16, "", "FX_Error_Flags"),
	ro(15, 1, DecodeHex4, KindBitfield16, "", "FX_Warning_Flags"),
	ro(16, 1, DecodeFloat, KindUint16, "Volts", "FX_Battery_Voltage"),
	ro(17, 1, DecodeFloat, KindUint16, "Volts", "FX_Temp_Compensated_Target_Voltage"),
	ro(18, 1, DecodeRaw, KindEnumerated, "", "FX_AUX_Output_State"),
	ro(19, 1, DecodeRaw, KindInt16, "Degrees C", "FX_Transformer_Temperature"),
	ro(20, 1, DecodeRaw, KindInt16, "Degrees C", "FX_Capacitor_Temperature"),
	ro(21, 1, DecodeRaw, KindInt16, "Degrees C", "FX_FET_Temperature"),
	ro(22, 1, DecodeRaw, KindUint16, "Hz", "FX_AC_Input_Frequency"),
	ro(23, 1, DecodeRaw, KindUint16, "Volts", "FX_AC_Input_Voltage"),
	ro(24, 1, DecodeRaw, KindEnumerated, "", "FX_AC_Input_State"),
	ro(25, 1, DecodeRaw, KindUint16, "Volts", "FX_Minimum_AC_Input_Voltage"),
	ro(26, 1, DecodeRaw, KindUint16, "Volts", "FX_Maximum_AC_Input_Voltage"),
	ro(27, 1, DecodeHex4, KindBitfield16, "", "FX_Sell_Status"),
	ro(28, 1, DecodeRaw, KindScaleFactor, "", "FX_kWh_SF"),
	ro(29, 1, DecodeFloat, KindUint16, "kWh", "FX_Buy_kWh"),
	ro(30, 1, DecodeFloat, KindUint16, "kWh", "FX_Sell_kWh"),
	ro(31, 1, DecodeFloat, KindUint16, "kWh", "FX_Output_kWh"),
	ro(32, 1, DecodeFloat, KindUint16, "kWh", "FX_Charger_kWh"),
	ro(33, 1, DecodeFloat2, KindUint16, "kW", "FX_Output_kW"),
	ro(34, 1, DecodeFloat2, KindUint16, "kW", "FX_Buy_kW"),
	ro(35, 1, DecodeFloat2, KindUint16, "kW", "FX_Sell_kW"),
	ro(36, 1, DecodeFloat2, KindUint16, "kW", "FX_Charge_kW"),
	ro(37, 1, DecodeFloat2, KindUint16, "kW", "FX_Load_kW"),
	ro(38, 1, DecodeFloat2, KindUint16, "kW", "FX_AC_Couple_kW"),
}

// ModelFXConfig (64114): FX inverter configuration, one block per port.
var fxConfigFields = []FieldDescriptor{
	ro(1, 1, DecodeRaw, KindUint16, "", "FXconfig_SunSpec_DID"),
	ro(2, 1, DecodeRaw, KindUint16, "Registers", "FXconfig_SunSpec_Length"),
	ro(3, 1, DecodeRaw, KindUint16, "", "FXconfig_Port_Number"),
	ro(4, 1, DecodeRaw, KindScaleFactor, "", "FXconfig_DC_Voltage_SF"),
	ro(5, 1, DecodeRaw, KindScaleFactor, "", "FXconfig_AC_Current_SF"),
	ro(6, 1, DecodeRaw, KindScaleFactor, "", "FXconfig_AC_Voltage_SF"),
	ro(7, 1, DecodeRaw, KindScaleFactor, "", "FXconfig_Time_SF"),
	ro(8, 1, DecodeRaw, KindUint16, "", "FXconfig_Major_Firmware_Number"),
	ro(9, 1, DecodeRaw, KindUint16, "", "FXconfig_Mid_Firmware_Number"),
	ro(10, 1, DecodeRaw, KindUint16, "", "FXconfig_Minor_Firmware_Number"),
	rw(11, 1, DecodeFloat, KindUint16, "Volts", "FXconfig_Absorb_Volts"),
	rw(12, 1, DecodeFloat, KindUint16, "Hours", "FXconfig_Absorb_Time_Hours"),
	rw(13, 1, DecodeFloat, KindUint16, "Volts", "FXconfig_Float_Volts"),
	rw(14, 1, DecodeFloat, KindUint16, "Hours", "FXconfig_Float_Time_Hours"),
	rw(15, 1, DecodeFloat, KindUint16, "Volts", "FXconfig_ReFloat_Volts"),
	rw(16, 1, DecodeFloat, KindUint16, "Volts", "FXconfig_EQ_Volts"),
	rw(17, 1, DecodeFloat, KindUint16, "Hours", "FXconfig_EQ_Time_Hours"),
	rw(18, 1, DecodeRaw, KindUint16, "", "FXconfig_Search_Sensitivity"),
	rw(19, 1, DecodeRaw, KindUint16, "Cycles", "FXconfig_Search_Pulse_Length"),
	rw(20, 1, DecodeRaw, KindUint16, "Cycles", "FXconfig_Search_Pulse_Spacing"),
	rw(21, 1, DecodeRaw, KindEnumerated, "", "FXconfig_AC_Input_Type"),
	rw(22, 1, DecodeRaw, KindEnumerated, "", "FXconfig_Input_Support"),
	rw(23, 1, DecodeFloat, KindUint16, "Amps", "FXconfig_Grid_AC_Input_Current_Limit"),
	rw(24, 1, DecodeFloat, KindUint16, "Amps", "FXconfig_Gen_AC_Input_Current_Limit"),
	rw(25, 1, DecodeFloat, KindUint16, "Amps", "FXconfig_Charger_AC_Input_Current_Limit"),
	rw(26, 1, DecodeRaw, KindEnumerated, "", "FXconfig_Charger_Operating_Mode"),
	rw(27, 1, DecodeRaw, KindEnumerated, "", "FXconfig_AC_Coupled"),
	rw(28, 1, DecodeRaw, KindUint16, "Volts", "FXconfig_Grid_Lower_Input_Voltage_Limit"),
	rw(29, 1, DecodeRaw, KindUint16, "Volts", "FXconfig_Grid_Upper_Input_Voltage_Limit"),
	rw(30, 1, DecodeRaw, KindUint16, "Milliseconds", "FXconfig_Grid_Transfer_Delay"),
	rw(31, 1, DecodeRaw, KindUint16, "Volts", "FXconfig_Gen_Lower_Input_Voltage_Limit"),
	rw(32, 1, DecodeRaw, KindUint16, "Volts", "FXconfig_Gen_Upper_Input_Voltage_Limit"),
	rw(33, 1, DecodeRaw, KindUint16, "Milliseconds", "FXconfig_Gen_Transfer_Delay"),
	rw(34, 1, DecodeFloat, KindUint16, "Minutes", "FXconfig_Gen_Connect_Delay"),
	rw(35, 1, DecodeRaw, KindUint16, "Volts", "FXconfig_AC_Output_Voltage"),
	rw(36, 1, DecodeFloat, KindUint16, "Volts", "FXconfig_Low_Battery_Cut_Out_Voltage"),
	rw(37, 1, DecodeFloat, KindUint16, "Volts", "FXconfig_Low_Battery_Cut_In_Voltage"),
	rw(38, 1, DecodeRaw, KindEnumerated, "", "FXconfig_AUX_Mode"),
	rw(39, 1, DecodeRaw, KindEnumerated, "", "FXconfig_AUX_Control"),
	rw(40, 1, DecodeFloat, KindUint16, "Volts", "FXconfig_AUX_On_Battery_Voltage"),
	rw(41, 1, DecodeFloat, KindUint16, "Volts", "FXconfig_AUX_Off_Battery_Voltage"),
	rw(42, 1, DecodeRaw, KindEnumerated, "", "FXconfig_Stacking_Mode"),
	rw(43, 1, DecodeRaw, KindUint16, "", "FXconfig_Master_Power_Save_Level"),
	rw(44, 1, DecodeRaw, KindUint16, "", "FXconfig_Slave_Power_Save_Level"),
	rw(45, 1, DecodeFloat, KindUint16, "Volts", "FXconfig_Sell_Volts"),
	rw(46, 1, DecodeRaw, KindEnumerated, "", "FXconfig_Grid_Tie_Window"),
	rw(47, 1, DecodeRaw, KindEnumerated, "", "FXconfig_Grid_Tie_Enable"),
	rw(48, 1, DecodeRaw, KindInt16, "Volts", "FXconfig_Grid_AC_Input_Voltage_Calibrate_Factor"),
	rw(49, 1, DecodeFloat, KindInt16, "Volts", "FXconfig_Battery_Voltage_Calibrate_Factor"),
	ro(50, 9, DecodeString, KindString, "", "FXconfig_Serial_Number"),
	ro(59, 9, DecodeString, KindString, "", "FXconfig_Model_Number"),
}

// ModelGSSplit (64115): split-phase Radian inverter status, one block per port.
var gsSplitFields = []FieldDescriptor{
	ro(1, 1, DecodeRaw, KindUint16, "", "GS_Split_SunSpec_DID"),
	ro(2, 1, DecodeRaw, KindUint16, "Registers", "GS_Split_SunSpec_Length"),
	ro(3, 1, DecodeRaw, KindUint16, "", "GS_Split_Port_Number"),
	ro(4, 1, DecodeRaw, KindScaleFactor, "", "GS_Split_DC_Voltage_SF"),
	ro(5, 1, DecodeRaw, KindScaleFactor, "", "GS_Split_AC_Current_SF"),
	ro(6, 1, DecodeRaw, KindScaleFactor, "", "GS_Split_AC_Voltage_SF"),
	ro(7, 1, DecodeRaw, KindScaleFactor, "", "GS_Split_AC_Frequency_SF"),
	ro(8, 1, DecodeFloat, KindUint16, "Amps", "GS_Split_L1_Inverter_Output_Current"),
	ro(9, 1, DecodeFloat, KindUint16, "Amps", "GS_Split_L1_Inverter_Charge_Current"),
	ro(10, 1, DecodeFloat, KindUint16, "Amps", "GS_Split_L1_Inverter_Buy_Current"),
	ro(11, 1, DecodeFloat, KindUint16, "Amps", "GS_Split_L1_Inverter_Sell_Current"),
	ro(12, 1, DecodeRaw, KindUint16, "Volts", "GS_Split_L1_Grid_Input_AC_Voltage"),
	ro(13, 1, DecodeRaw, KindUint16, "Volts", "GS_Split_L1_Gen_Input_AC_Voltage"),
	ro(14, 1, DecodeRaw, KindUint16, "Volts", "GS_Split_L1_Output_AC_Voltage"),
	ro(15, 1, DecodeFloat, KindUint16, "Amps", "GS_Split_L2_Inverter_Output_Current"),
	ro(16, 1, DecodeFloat, KindUint16, "Amps", "GS_Split_L2_Inverter_Charge_Current"),
	ro(17, 1, DecodeFloat, KindUint16, "Amps", "GS_Split_L2_Inverter_Buy_Current"),
	ro(18, 1, DecodeFloat, KindUint16, "Amps", "GS_Split_L2_Inverter_Sell_Current"),
	ro(19, 1, DecodeRaw, KindUint16, "Volts", "GS_Split_L2_Grid_Input_AC_Voltage"),
	ro(20, 1, DecodeRaw, KindUint16, "Volts", "GS_Split_L2_Gen_Input_AC_Voltage"),
	ro(21, 1, DecodeRaw, KindUint16, "Volts", "GS_Split_L2_Output_AC_Voltage"),
	ro(22, 1, DecodeRaw, KindEnumerated, "", "GS_Split_Inverter_Operating_mode"),
	ro(23, 1, DecodeHex4, KindBitfield16, "", "GS_Split_Error_Flags"),
	ro(24, 1, DecodeHex4, KindBitfield16, "", "GS_Split_Warning_Flags"),
	ro(25, 1, DecodeFloat, KindUint16, "Volts", "GS_Split_Battery_Voltage"),
	ro(26, 1, DecodeFloat, KindUint16, "Volts", "GS_Split_Temp_Compensated_Target_Voltage"),
	ro(27, 1, DecodeRaw, KindEnumerated, "", "GS_Split_AUX_Output_State"),
	ro(28, 1, DecodeRaw, KindEnumerated, "", "GS_Split_AUX_Relay_Output_State"),
	ro(29, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Split_L_Module_Transformer_Temperature"),
	ro(30, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Split_L_Module_Capacitor_Temperature"),
	ro(31, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Split_L_Module_FET_Temperature"),
	ro(32, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Split_R_Module_Transformer_Temperature"),
	ro(33, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Split_R_Module_Capacitor_Temperature"),
	ro(34, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Split_R_Module_FET_Temperature"),
	ro(35, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Split_Battery_Temperature"),
	ro(36, 1, DecodeRaw, KindEnumerated, "", "GS_Split_AC_Input_Selection"),
	ro(37, 1, DecodeFloat2, KindUint16, "Hz", "GS_Split_AC_Input_Frequency"),
	ro(38, 1, DecodeRaw, KindUint16, "Volts", "GS_Split_AC_Input_Voltage"),
	ro(39, 1, DecodeRaw, KindEnumerated, "", "GS_Split_AC_Input_State"),
	ro(40, 1, DecodeRaw, KindUint16, "Volts", "GS_Split_Minimum_AC_Input_Voltage"),
	ro(41, 1, DecodeRaw, KindUint16, "Volts", "GS_Split_Maximum_AC_Input_Voltage"),
	ro(42, 1, DecodeHex4, KindBitfield16, "", "GS_Split_Sell_Status"),
	ro(43, 1, DecodeRaw, KindScaleFactor, "", "GS_Split_kWh_SF"),
	ro(44, 1, DecodeFloat, KindUint16, "kWh", "GS_Split_AC1_Buy_kWh"),
	ro(45, 1, DecodeFloat, KindUint16, "kWh", "GS_Split_AC2_Buy_kWh"),
	ro(46, 1, DecodeFloat, KindUint16, "kWh", "GS_Split_AC1_Sell_kWh"),
	ro(47, 1, DecodeFloat, KindUint16, "kWh", "GS_Split_AC2_Sell_kWh"),
	ro(48, 1, DecodeFloat, KindUint16, "kWh", "GS_Split_Output_kWh"),
	ro(49, 1, DecodeFloat, KindUint16, "kWh", "GS_Split_Charger_kWh"),
	ro(50, 1, DecodeFloat2, KindUint16, "kW", "GS_Split_Output_kW"),
	ro(51, 1, DecodeFloat2, KindUint16, "kW", "GS_Split_Buy_kW"),
	ro(52, 1, DecodeFloat2, KindUint16, "kW", "GS_Split_Sell_kW"),
	ro(53, 1, DecodeFloat2, KindUint16, "kW", "GS_Split_Charge_kW"),
	ro(54, 1, DecodeFloat2, KindUint16, "kW", "GS_Split_Load_kW"),
	ro(55, 1, DecodeFloat2, KindUint16, "kW", "GS_Split_AC_Couple_kW"),
}

// ModelGSConfig (64116): Radian inverter configuration, one block per port.
var gsConfigFields = []FieldDescriptor{
	ro(1, 1, DecodeRaw, KindUint16, "", "GSconfig_SunSpec_DID"),
	ro(2, 1, DecodeRaw, KindUint16, "Registers", "GSconfig_SunSpec_Length"),
	ro(3, 1, DecodeRaw, KindUint16, "", "GSconfig_Port_Number"),
	ro(4, 1, DecodeRaw, KindScaleFactor, "", "GSconfig_DC_Voltage_SF"),
	ro(5, 1, DecodeRaw, KindScaleFactor, "", "GSconfig_AC_Current_SF"),
	ro(6, 1, DecodeRaw, KindScaleFactor, "", "GSconfig_AC_Voltage_SF"),
	ro(7, 1, DecodeRaw, KindScaleFactor, "", "GSconfig_Time_SF"),
	ro(8, 1, DecodeRaw, KindUint16, "", "GSconfig_Major_Firmware_Number"),
	ro(9, 1, DecodeRaw, KindUint16, "", "GSconfig_Mid_Firmware_Number"),
	ro(10, 1, DecodeRaw, KindUint16, "", "GSconfig_Minor_Firmware_Number"),
	rw(11, 1, DecodeFloat, KindUint16, "Volts", "GSconfig_Absorb_Volts"),
	rw(12, 1, DecodeFloat, KindUint16, "Hours", "GSconfig_Absorb_Time_Hours"),
	rw(13, 1, DecodeFloat, KindUint16, "Volts", "GSconfig_Float_Volts"),
	rw(14, 1, DecodeFloat, KindUint16, "Hours", "GSconfig_Float_Time_Hours"),
	rw(15, 1, DecodeFloat, KindUint16, "Volts", "GSconfig_ReFloat_Volts"),
	rw(16, 1, DecodeFloat, KindUint16, "Volts", "GSconfig_EQ_Volts"),
	rw(17, 1, DecodeFloat, KindUint16, "Hours", "GSconfig_EQ_Time_Hours"),
	rw(18, 1, DecodeRaw, KindUint16, "", "GSconfig_Search_Sensitivity"),
	rw(19, 1, DecodeRaw, KindUint16, "Cycles", "GSconfig_Search_Pulse_Length"),
	rw(20, 1, DecodeRaw, KindUint16, "Cycles", "GSconfig_Search_Pulse_Spacing"),
	rw(21, 1, DecodeRaw, KindEnumerated, "", "GSconfig_AC_Input_Type"),
	rw(22, 1, DecodeRaw, KindEnumerated, "", "GSconfig_Input_Support"),
	rw(23, 1, DecodeFloat, KindUint16, "Amps", "GSconfig_Grid_AC_Input_Current_Limit"),
	rw(24, 1, DecodeFloat, KindUint16, "Amps", "GSconfig_Gen_AC_Input_Current_Limit"),
	rw(25, 1, DecodeFloat, KindUint16, "Amps", "GSconfig_Charger_AC_Input_Current_Limit"),
	rw(26, 1, DecodeRaw, KindEnumerated, "", "GSconfig_Charger_Operating_Mode"),
	rw(27, 1, DecodeFloat, KindUint16, "Minutes", "GSconfig_Grid_Connect_Delay"),
	rw(28, 1, DecodeFloat, KindUint16, "Volts", "GSconfig_Mini_Grid_LBX_Volts"),
	rw(29, 1, DecodeFloat, KindUint16, "Hours", "GSconfig_Mini_Grid_LBX_Delay"),
	rw(30, 1, DecodeFloat, KindUint16, "Volts", "GSconfig_Grid_Zero_DoD_Volts"),
	rw(31, 1, DecodeFloat, KindUint16, "Amps", "GSconfig_Grid_Zero_DoD_Max_Offset_AC_Amps"),
	rw(32, 1, DecodeRaw, KindUint16, "Volts", "GSconfig_Grid_Lower_Input_Voltage_Limit"),
	rw(33, 1, DecodeRaw, KindUint16, "Volts", "GSconfig_Grid_Upper_Input_Voltage_Limit"),
	rw(34, 1, DecodeRaw, KindUint16, "Milliseconds", "GSconfig_Grid_Transfer_Delay"),
	rw(35, 1, DecodeRaw, KindUint16, "Volts", "GSconfig_Gen_Lower_Input_Voltage_Limit"),
	rw(36, 1, DecodeRaw, KindUint16, "Volts", "GSconfig_Gen_Upper_Input_Voltage_Limit"),
	rw(37, 1, DecodeRaw, KindUint16, "Milliseconds", "GSconfig_Gen_Transfer_Delay"),
	rw(38, 1, DecodeFloat, KindUint16, "Minutes", "GSconfig_Gen_Connect_Delay"),
	rw(39, 1, DecodeRaw, KindUint16, "Volts", "GSconfig_AC_Output_Voltage"),
	rw(40, 1, DecodeFloat, KindUint16, "Volts", "GSconfig_Low_Battery_Cut_Out_Voltage"),
	rw(41, 1, DecodeFloat, KindUint16, "Volts", "GSconfig_Low_Battery_Cut_In_Voltage"),
	rw(42, 1, DecodeRaw, KindEnumerated, "", "GSconfig_AUX_Mode"),
	rw(43, 1, DecodeRaw, KindEnumerated, "", "GSconfig_AUX_Control"),
	rw(44, 1, DecodeFloat, KindUint16, "Volts", "GSconfig_AUX_On_Battery_Voltage"),
	rw(45, 1, DecodeFloat, KindUint16, "Volts", "GSconfig_AUX_Off_Battery_Voltage"),
	rw(46, 1, DecodeRaw, KindEnumerated, "", "GSconfig_Stacking_Mode"),
	rw(47, 1, DecodeRaw, KindUint16, "", "GSconfig_Master_Power_Save_Level"),
	rw(48, 1, DecodeRaw, KindUint16, "", "GSconfig_Slave_Power_Save_Level"),
	rw(49, 1, DecodeFloat, KindUint16, "Volts", "GSconfig_Sell_Volts"),
	rw(50, 1, DecodeRaw, KindEnumerated, "", "GSconfig_Grid_Tie_Window"),
	rw(51, 1, DecodeRaw, KindEnumerated, "", "GSconfig_Grid_Tie_Enable"),
	rw(52, 1, DecodeRaw, KindInt16, "Volts", "GSconfig_Grid_AC_Input_Voltage_Calibrate_Factor"),
	rw(53, 1, DecodeFloat, KindInt16, "Volts", "GSconfig_Battery_Voltage_Calibrate_Factor"),
	ro(54, 9, DecodeString, KindString, "", "GSconfig_Serial_Number"),
	ro(63, 9, DecodeString, KindString, "", "GSconfig_Model_Number"),
}

// ModelGSSingle (64117): single-phase Radian inverter status, one block per port.
var gsSingleFields = []FieldDescriptor{
	ro(1, 1, DecodeRaw, KindUint16, "", "GS_Single_SunSpec_DID"),
	ro(2, 1, DecodeRaw, KindUint16, "Registers", "GS_Single_SunSpec_Length"),
	ro(3, 1, DecodeRaw, KindUint16, "", "GS_Single_Port_Number"),
	ro(4, 1, DecodeRaw, KindScaleFactor, "", "GS_Single_DC_Voltage_SF"),
	ro(5, 1, DecodeRaw, KindScaleFactor, "", "GS_Single_AC_Current_SF"),
	ro(6, 1, DecodeRaw, KindScaleFactor, "", "GS_Single_AC_Voltage_SF"),
	ro(7, 1, DecodeRaw, KindScaleFactor, "", "GS_Single_AC_Frequency_SF"),
	ro(8, 1, DecodeFloat, KindUint16, "Amps", "GS_Single_Inverter_Output_Current"),
	ro(9, 1, DecodeFloat, KindUint16, "Amps", "GS_Single_Inverter_Charge_Current"),
	ro(10, 1, DecodeFloat, KindUint16, "Amps", "GS_Single_Inverter_Buy_Current"),
	ro(11, 1, DecodeFloat, KindUint16, "Amps", "GS_Single_Inverter_Sell_Current"),
	ro(12, 1, DecodeRaw, KindUint16, "Volts", "GS_Single_Grid_Input_AC_Voltage"),
	ro(13, 1, DecodeRaw, KindUint16, "Volts", "GS_Single_Gen_Input_AC_Voltage"),
	ro(14, 1, DecodeRaw, KindUint16, "Volts", "GS_Single_Output_AC_Voltage"),
	ro(15, 1, DecodeRaw, KindEnumerated, "", "GS_Single_Inverter_Operating_mode"),
	ro(16, 1, DecodeHex4, KindBitfield16, "", "GS_Single_Error_Flags"),
	ro(17, 1, DecodeHex4, KindBitfield16, "", "GS_Single_Warning_Flags"),
	ro(18, 1, DecodeFloat, KindUint16, "Volts", "GS_Single_Battery_Voltage"),
	ro(19, 1, DecodeFloat, KindUint16, "Volts", "GS_Single_Temp_Compensated_Target_Voltage"),
	ro(20, 1, DecodeRaw, KindEnumerated, "", "GS_Single_AUX_Output_State"),
	ro(21, 1, DecodeRaw, KindEnumerated, "", "GS_Single_AUX_Relay_Output_State"),
	ro(22, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Single_L_Module_Transformer_Temperature"),
	ro(23, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Single_L_Module_Capacitor_Temperature"),
	ro(24, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Single_L_Module_FET_Temperature"),
	ro(25, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Single_R_Module_Transformer_Temperature"),
	ro(26, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Single_R_Module_Capacitor_Temperature"),
	ro(27, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Single_R_Module_FET_Temperature"),
	ro(28, 1, DecodeRaw, KindInt16, "Degrees C", "GS_Single_Battery_Temperature"),
	ro(29, 1, DecodeRaw, KindEnumerated, "", "GS_Single_AC_Input_Selection"),
	ro(30, 1, DecodeFloat2, KindUint16, "Hz", "GS_Single_AC_Input_Frequency"),
	ro(31, 1, DecodeRaw, KindUint16, "Volts", "GS_Single_AC_Input_Voltage"),
	ro(32, 1, DecodeRaw, KindEnumerated, "", "GS_Single_AC_Input_State"),
	ro(33, 1, DecodeRaw, KindUint16, "Volts", "GS_Single_Minimum_AC_Input_Voltage"),
	ro(34, 1, DecodeRaw, KindUint16, "Volts", "GS_Single_Maximum_AC_Input_Voltage"),
	ro(35, 1, DecodeHex4, KindBitfield16, "", "GS_Single_Sell_Status"),
	ro(36, 1, DecodeRaw, KindScaleFactor, "", "GS_Single_kWh_SF"),
	ro(37, 1, DecodeFloat, KindUint16, "kWh", "GS_Single_AC1_Buy_kWh"),
	ro(38, 1, DecodeFloat, KindUint16, "kWh", "GS_Single_AC2_Buy_kWh"),
	ro(39, 1, DecodeFloat, KindUint16, "kWh", "GS_Single_AC1_Sell_kWh"),
	ro(40, 1, DecodeFloat, KindUint16, "kWh", "GS_Single_AC2_Sell_kWh"),
	ro(41, 1, DecodeFloat, KindUint16, "kWh", "GS_Single_Output_kWh"),
	ro(42, 1, DecodeFloat, KindUint16, "kWh", "GS_Single_Charger_kWh"),
	ro(43, 1, DecodeFloat2, KindUint16, "kW", "GS_Single_Output_kW"),
	ro(44, 1, DecodeFloat2, KindUint16, "kW", "GS_Single_Buy_kW"),
	ro(45, 1, DecodeFloat2, KindUint16, "kW", "GS_Single_Sell_kW"),
	ro(46, 1, DecodeFloat2, KindUint16, "kW", "GS_Single_Charge_kW"),
	ro(47, 1, DecodeFloat2, KindUint16, "kW", "GS_Single_Load_kW"),
	ro(48, 1, DecodeFloat2, KindUint16, "kW", "GS_Single_AC_Couple_kW"),
}

// ModelFLEXnetDC (64118): FLEXnet-DC battery monitor status.
var flexnetFields = []FieldDescriptor{
	ro(1, 1, DecodeRaw, KindUint16, "", "FN_SunSpec_DID"),
	ro(2, 1, DecodeRaw, KindUint16, "Registers", "FN_SunSpec_Length"),
	ro(3, 1, DecodeRaw, KindUint16, "", "FN_Port_Number"),
	ro(4, 1, DecodeRaw, KindScaleFactor, "", "FN_DC_Voltage_SF"),
	ro(5, 1, DecodeRaw, KindScaleFactor, "", "FN_DC_Current_SF"),
	ro(6, 1, DecodeRaw, KindScaleFactor, "", "FN_Time_SF"),
	ro(7, 1, DecodeRaw, KindScaleFactor, "", "FN_kWh_SF"),
	ro(8, 1, DecodeRaw, KindScaleFactor, "", "FN_kW_SF"),
	ro(9, 1, DecodeFloat, KindInt16, "Amps", "FN_Shunt_A_Current"),
	ro(10, 1, DecodeFloat, KindInt16, "Amps", "FN_Shunt_B_Current"),
	ro(11, 1, DecodeFloat, KindInt16, "Amps", "FN_Shunt_C_Current"),
	ro(12, 1, DecodeFloat, KindUint16, "Volts", "FN_Battery_Voltage"),
	ro(13, 1, DecodeFloat, KindInt16, "Amps", "FN_Battery_Current"),
	ro(14, 1, DecodeRaw, KindInt16, "Degrees C", "FN_Battery_Temperature"),
	ro(15, 1, DecodeHex4, KindBitfield16, "", "FN_Status_Flags"),
	ro(16, 1, DecodeRaw, KindInt16, "Amp Hours", "FN_Shunt_A_Accumulated_AH"),
	ro(17, 1, DecodeFloat2, KindInt16, "kWh", "FN_Shunt_A_Accumulated_kWh"),
	ro(18, 1, DecodeRaw, KindInt16, "Amp Hours", "FN_Shunt_B_Accumulated_AH"),
	ro(19, 1, DecodeFloat2, KindInt16, "kWh", "FN_Shunt_B_Accumulated_kWh"),
	ro(20, 1, DecodeRaw, KindInt16, "Amp Hours", "FN_Shunt_C_Accumulated_AH"),
	ro(21, 1, DecodeFloat2, KindInt16, "kWh", "FN_Shunt_C_Accumulated_kWh"),
	ro(22, 1, DecodeFloat, KindUint16, "Amps", "FN_Input_Current"),
	ro(23, 1, DecodeFloat, KindUint16, "Amps", "FN_Output_Current"),
	ro(24, 1, DecodeFloat2, KindUint16, "kW", "FN_Input_kW"),
	ro(25, 1, DecodeFloat2, KindUint16, "kW", "FN_Output_kW"),
	ro(26, 1, DecodeFloat2, KindInt16, "kW", "FN_Net_kW"),
	ro(27, 1, DecodeFloat, KindUint16, "Days", "FN_Days_Since_Charge_Parameters_Met"),
	ro(28, 1, DecodeRaw, KindUint16, "Pct", "FN_State_Of_Charge"),
	ro(29, 1, DecodeRaw, KindUint16, "Pct", "FN_Todays_Minimum_SOC"),
	ro(30, 1, DecodeRaw, KindUint16, "Pct", "FN_Todays_Maximum_SOC"),
	ro(31, 1, DecodeRaw, KindUint16, "Amp Hours", "FN_Todays_NET_Input_AH"),
	ro(32, 1, DecodeFloat2, KindUint16, "kWh", "FN_Todays_NET_Input_kWh"),
	ro(33, 1, DecodeRaw, KindUint16, "Amp Hours", "FN_Todays_NET_Output_AH"),
	ro(34, 1, DecodeFloat2, KindUint16, "kWh", "FN_Todays_NET_Output_kWh"),
	ro(35, 1, DecodeRaw, KindInt16, "Amp Hours", "FN_Todays_NET_Battery_AH"),
	ro(36, 1, DecodeFloat2, KindInt16, "kWh", "FN_Todays_NET_Battery_kWh"),
	ro(37, 1, DecodeRaw, KindInt16, "Amp Hours", "FN_Charge_Factor_Corrected_NET_AH"),
	ro(38, 1, DecodeFloat2, KindInt16, "kWh", "FN_Charge_Factor_Corrected_NET_kWh"),
	ro(39, 1, DecodeFloat, KindUint16, "Volts", "FN_Todays_Minimum_Battery_Voltage"),
	ro(40, 1, DecodeFloat, KindUint16, "Volts", "FN_Todays_Maximum_Battery_Voltage"),
	ro(41, 1, DecodeRaw, KindUint16, "kAh", "FN_Lifetime_kAH_Removed"),
}

// ModelFLEXnetConfig (64119): FLEXnet-DC configuration.
var flexnetConfigFields = []FieldDescriptor{
	ro(1, 1, DecodeRaw, KindUint16, "", "FNconfig_SunSpec_DID"),
	ro(2, 1, DecodeRaw, KindUint16, "Registers", "FNconfig_SunSpec_Length"),
	ro(3, 1, DecodeRaw, KindUint16, "", "FNconfig_Port_Number"),
	ro(4, 1, DecodeRaw, KindScaleFactor, "", "FNconfig_DC_Voltage_SF"),
	ro(5, 1, DecodeRaw, KindScaleFactor, "", "FNconfig_DC_Current_SF"),
	ro(6, 1, DecodeRaw, KindScaleFactor, "", "FNconfig_kWh_SF"),
	ro(7, 1, DecodeRaw, KindUint16, "", "FNconfig_Major_Firmware_Number"),
	ro(8, 1, DecodeRaw, KindUint16, "", "FNconfig_Mid_Firmware_Number"),
	ro(9, 1, DecodeRaw, KindUint16, "", "FNconfig_Minor_Firmware_Number"),
	rw(10, 1, DecodeRaw, KindUint16, "Amp Hours", "FNconfig_Battery_Capacity"),
	rw(11, 1, DecodeFloat, KindUint16, "Volts", "FNconfig_Charged_Volts"),
	rw(12, 1, DecodeRaw, KindUint16, "Minutes", "FNconfig_Charged_Time"),
	rw(13, 1, DecodeFloat, KindUint16, "Amps", "FNconfig_Battery_Charged_Amps"),
	rw(14, 1, DecodeRaw, KindUint16, "Pct", "FNconfig_Charge_Factor"),
	rw(15, 1, DecodeRaw, KindEnumerated, "", "FNconfig_Shunt_A_Enabled"),
	rw(16, 1, DecodeRaw, KindEnumerated, "", "FNconfig_Shunt_B_Enabled"),
	rw(17, 1, DecodeRaw, KindEnumerated, "", "FNconfig_Shunt_C_Enabled"),
	rw(18, 1, DecodeRaw, KindEnumerated, "", "FNconfig_Relay_Control"),
	rw(19, 1, DecodeRaw, KindEnumerated, "", "FNconfig_Relay_Invert_Logic"),
	rw(20, 1, DecodeFloat, KindUint16, "Volts", "FNconfig_Relay_High_Voltage"),
	rw(21, 1, DecodeFloat, KindUint16, "Volts", "FNconfig_Relay_Low_Voltage"),
	rw(22, 1, DecodeRaw, KindUint16, "Pct", "FNconfig_Relay_SOC_High"),
	rw(23, 1, DecodeRaw, KindUint16, "Pct", "FNconfig_Relay_SOC_Low"),
	rw(24, 1, DecodeRaw, KindUint16, "Minutes", "FNconfig_Relay_High_Enable_Delay"),
	rw(25, 1, DecodeRaw, KindUint16, "Minutes", "FNconfig_Relay_Low_Enable_Delay"),
	rw(26, 1, DecodeRaw, KindUint16, "", "FNconfig_Set_Data_Log_Day_Offset"),
	ro(27, 1, DecodeRaw, KindUint16, "", "FNconfig_Get_Current_Data_Log_Day_Offset"),
	ro(28, 9, DecodeString, KindString, "", "FNconfig_Serial_Number"),
	ro(37, 9, DecodeString, KindString, "", "FNconfig_Model_Number"),
}

// ModelOutBackSystem (64120): system-wide control set points.
var outbackSystemFields = []FieldDescriptor{
	ro(1, 1, DecodeRaw, KindUint16, "", "OB_SunSpec_DID"),
	ro(2, 1, DecodeRaw, KindUint16, "Registers", "OB_SunSpec_Length"),
	ro(3, 1, DecodeRaw, KindScaleFactor, "", "OB_DC_Voltage_SF"),
	ro(4, 1, DecodeRaw, KindScaleFactor, "", "OB_AC_Current_SF"),
	ro(5, 1, DecodeRaw, KindScaleFactor, "", "OB_Time_SF"),
	rw(6, 1, DecodeRaw, KindEnumerated, "", "OB_Bulk_Charge_Enable_Disable"),
	rw(7, 1, DecodeRaw, KindEnumerated, "", "OB_Inverter_AC_Drop_Use"),
	rw(8, 1, DecodeRaw, KindEnumerated, "", "OB_Set_Inverter_Mode"),
	rw(9, 1, DecodeRaw, KindEnumerated, "", "OB_Grid_Tie_Mode"),
	rw(10, 1, DecodeRaw, KindEnumerated, "", "OB_Set_Inverter_Charger_Mode"),
	ro(11, 1, DecodeHex4, KindBitfield16, "", "OB_Control_Status"),
	rw(12, 1, DecodeFloat, KindUint16, "Volts", "OB_Set_Sell_Voltage"),
	rw(13, 1, DecodeFloat, KindUint16, "Amps", "OB_Set_Radian_Inverter_Sell_Current_Limit"),
	rw(14, 1, DecodeFloat, KindUint16, "Volts", "OB_Set_Absorb_Voltage"),
	rw(15, 1, DecodeFloat, KindUint16, "Hours", "OB_Set_Absorb_Time"),
	rw(16, 1, DecodeFloat, KindUint16, "Volts", "OB_Set_Float_Voltage"),
	rw(17, 1, DecodeFloat, KindUint16, "Hours", "OB_Set_Float_Time"),
	rw(18, 1, DecodeFloat, KindUint16, "Amps", "OB_Set_Inverter_Charger_Current_Limit"),
	rw(19, 1, DecodeFloat, KindUint16, "Amps", "OB_Set_Inverter_AC1_Current_Limit"),
	rw(20, 1, DecodeFloat, KindUint16, "Amps", "OB_Set_Inverter_AC2_Current_Limit"),
	rw(21, 1, DecodeRaw, KindEnumerated, "", "OB_Set_AGS_OP_Mode"),
	ro(22, 1, DecodeRaw, KindEnumerated, "", "OB_AGS_Operational_State"),
	ro(23, 1, DecodeRaw, KindUint16, "Seconds", "OB_AGS_Operational_State_Timer"),
	ro(24, 2, DecodeInt32, KindUint32, "Seconds", "OB_Gen_Last_Run_Start_Time_GMT"),
	ro(26, 2, DecodeInt32, KindUint32, "Seconds", "OB_Gen_Last_Run_Duration"),
	rw(28, 1, DecodeRaw, KindUint16, "Days", "OB_Set_AGS_Exercise_Period"),
	rw(29, 1, DecodeRaw, KindEnumerated, "", "OB_Data_Log_Enable"),
	rw(30, 1, DecodeUHex4, KindUint16, "", "OB_Data_Log_Clear"),
}
