// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

// MPU-6050 register addresses (register map revision 4.2).
const (
	regSelfTestX = 0x0D
	regSelfTestY = 0x0E
	regSelfTestZ = 0x0F
	regSelfTestA = 0x10

	regSmplrtDiv   = 0x19
	regConfig      = 0x1A
	regGyroConfig  = 0x1B
	regAccelConfig = 0x1C

	regFIFOEn = 0x23

	regIntPinCfg = 0x37
	regIntEnable = 0x38
	regIntStatus = 0x3A

	regAccelXoutH = 0x3B
	regTempOutH   = 0x41
	regGyroXoutH  = 0x43

	regSignalPathReset = 0x68
	regUserCtrl        = 0x6A
	regPwrMgmt1        = 0x6B
	regPwrMgmt2        = 0x6C

	regFIFOCountH = 0x72
	regFIFORW     = 0x74
	regWhoAmI     = 0x75
)

// PWR_MGMT_1 bits.
const (
	pwrDeviceReset = 0x80
	pwrSleep       = 0x40
	clkselPLLXGyro = 0x01
)

// INT_ENABLE / INT_STATUS bits.
const (
	intDataRdy = 0x01
)

// whoAmIValue is the fixed WHO_AM_I response of a healthy MPU-6050.
const whoAmIValue = 0x68

// burstLen is the span of the contiguous data block starting at
// ACCEL_XOUT_H: 3 accel axes, temperature, 3 gyro axes, 2 bytes each.
const burstLen = 14

// Full-scale sensitivities from the datasheet, indexed by range code.
var (
	accelLSBPerG  = [4]float64{16384, 8192, 4096, 2048}
	gyroLSBPerDps = [4]float64{131, 65.5, 32.8, 16.4}
	accelRangeG   = [4]int{2, 4, 8, 16}
	gyroRangeDps  = [4]int{250, 500, 1000, 2000}
)

// BitField describes one named field inside a register.
type BitField struct {
	Bits        string `json:"bits"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Values      string `json:"values,omitempty"`
}

// RegisterInfo is reference metadata for one register, used by the
// register debug tool to label live values.
type RegisterInfo struct {
	Address     byte       `json:"address"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Access      string     `json:"access"` // "R", "RW"
	Default     byte       `json:"default"`
	BitFields   []BitField `json:"bit_fields,omitempty"`
}

// MPU6050RegisterMap returns metadata for the registers the bridge touches
// plus the measurement block, in address order.
func MPU6050RegisterMap() []RegisterInfo {
	return []RegisterInfo{
		{Address: regSelfTestX, Name: "SELF_TEST_X", Description: "Gyro/accel X self-test factory trim", Access: "R"},
		{Address: regSelfTestY, Name: "SELF_TEST_Y", Description: "Gyro/accel Y self-test factory trim", Access: "R"},
		{Address: regSelfTestZ, Name: "SELF_TEST_Z", Description: "Gyro/accel Z self-test factory trim", Access: "R"},
		{Address: regSelfTestA, Name: "SELF_TEST_A", Description: "Accel self-test factory trim", Access: "R"},

		{Address: regSmplrtDiv, Name: "SMPLRT_DIV", Description: "Sample Rate Divider", Access: "RW",
			BitFields: []BitField{
				{Bits: "7:0", Name: "SMPLRT_DIV", Description: "Sample Rate = Gyro Output Rate / (1 + SMPLRT_DIV)", Values: "0-255"},
			}},
		{Address: regConfig, Name: "CONFIG", Description: "Configuration (DLPF, FSYNC)", Access: "RW",
			BitFields: []BitField{
				{Bits: "5:3", Name: "EXT_SYNC_SET", Description: "External FSYNC pin sampling", Values: "0=Disabled"},
				{Bits: "2:0", Name: "DLPF_CFG", Description: "Digital Low Pass Filter", Values: "0=260Hz, 1=184Hz, 2=94Hz, 3=44Hz, 4=21Hz, 5=10Hz, 6=5Hz"},
			}},
		{Address: regGyroConfig, Name: "GYRO_CONFIG", Description: "Gyroscope Configuration", Access: "RW",
			BitFields: []BitField{
				{Bits: "7", Name: "XG_ST", Description: "X Gyro self-test", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6", Name: "YG_ST", Description: "Y Gyro self-test", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5", Name: "ZG_ST", Description: "Z Gyro self-test", Values: "0=Disabled, 1=Enabled"},
				{Bits: "4:3", Name: "FS_SEL", Description: "Gyro Full Scale Range", Values: "0=±250°/s, 1=±500°/s, 2=±1000°/s, 3=±2000°/s"},
			}},
		{Address: regAccelConfig, Name: "ACCEL_CONFIG", Description: "Accelerometer Configuration", Access: "RW",
			BitFields: []BitField{
				{Bits: "7", Name: "XA_ST", Description: "X Accel self-test", Values: "0=Disabled, 1=Enabled"},
				{Bits: "6", Name: "YA_ST", Description: "Y Accel self-test", Values: "0=Disabled, 1=Enabled"},
				{Bits: "5", Name: "ZA_ST", Description: "Z Accel self-test", Values: "0=Disabled, 1=Enabled"},
				{Bits: "4:3", Name: "AFS_SEL", Description: "Accel Full Scale Range", Values: "0=±2g, 1=±4g, 2=±8g, 3=±16g"},
			}},

		{Address: regFIFOEn, Name: "FIFO_EN", Description: "FIFO Enable", Access: "RW"},

		{Address: regIntPinCfg, Name: "INT_PIN_CFG", Description: "INT Pin / Bypass Enable Configuration", Access: "RW"},
		{Address: regIntEnable, Name: "INT_ENABLE", Description: "Interrupt Enable", Access: "RW",
			BitFields: []BitField{
				{Bits: "4", Name: "FIFO_OFLOW_EN", Description: "FIFO overflow interrupt", Values: "0=Disabled, 1=Enabled"},
				{Bits: "3", Name: "I2C_MST_INT_EN", Description: "I2C master interrupt", Values: "0=Disabled, 1=Enabled"},
				{Bits: "0", Name: "DATA_RDY_EN", Description: "Data ready interrupt", Values: "0=Disabled, 1=Enabled"},
			}},
		{Address: regIntStatus, Name: "INT_STATUS", Description: "Interrupt Status", Access: "R"},

		{Address: regAccelXoutH, Name: "ACCEL_XOUT_H", Description: "Accelerometer X-Axis High Byte", Access: "R"},
		{Address: 0x3C, Name: "ACCEL_XOUT_L", Description: "Accelerometer X-Axis Low Byte", Access: "R"},
		{Address: 0x3D, Name: "ACCEL_YOUT_H", Description: "Accelerometer Y-Axis High Byte", Access: "R"},
		{Address: 0x3E, Name: "ACCEL_YOUT_L", Description: "Accelerometer Y-Axis Low Byte", Access: "R"},
		{Address: 0x3F, Name: "ACCEL_ZOUT_H", Description: "Accelerometer Z-Axis High Byte", Access: "R"},
		{Address: 0x40, Name: "ACCEL_ZOUT_L", Description: "Accelerometer Z-Axis Low Byte", Access: "R"},
		{Address: regTempOutH, Name: "TEMP_OUT_H", Description: "Temperature High Byte", Access: "R"},
		{Address: 0x42, Name: "TEMP_OUT_L", Description: "Temperature Low Byte", Access: "R"},
		{Address: regGyroXoutH, Name: "GYRO_XOUT_H", Description: "Gyroscope X-Axis High Byte", Access: "R"},
		{Address: 0x44, Name: "GYRO_XOUT_L", Description: "Gyroscope X-Axis Low Byte", Access: "R"},
		{Address: 0x45, Name: "GYRO_YOUT_H", Description: "Gyroscope Y-Axis High Byte", Access: "R"},
		{Address: 0x46, Name: "GYRO_YOUT_L", Description: "Gyroscope Y-Axis Low Byte", Access: "R"},
		{Address: 0x47, Name: "GYRO_ZOUT_H", Description: "Gyroscope Z-Axis High Byte", Access: "R"},
		{Address: 0x48, Name: "GYRO_ZOUT_L", Description: "Gyroscope Z-Axis Low Byte", Access: "R"},

		{Address: regSignalPathReset, Name: "SIGNAL_PATH_RESET", Description: "Signal Path Reset", Access: "RW"},
		{Address: regUserCtrl, Name: "USER_CTRL", Description: "User Control (FIFO, I2C master)", Access: "RW"},
		{Address: regPwrMgmt1, Name: "PWR_MGMT_1", Description: "Power Management 1", Access: "RW", Default: pwrSleep,
			BitFields: []BitField{
				{Bits: "7", Name: "DEVICE_RESET", Description: "Reset all registers to defaults", Values: "1=Reset"},
				{Bits: "6", Name: "SLEEP", Description: "Sleep mode", Values: "0=Awake, 1=Sleep"},
				{Bits: "3", Name: "TEMP_DIS", Description: "Disable temperature sensor", Values: "0=Enabled, 1=Disabled"},
				{Bits: "2:0", Name: "CLKSEL", Description: "Clock source", Values: "0=Internal 8MHz, 1=PLL X gyro, 2=PLL Y gyro, 3=PLL Z gyro"},
			}},
		{Address: regPwrMgmt2, Name: "PWR_MGMT_2", Description: "Power Management 2 (standby control)", Access: "RW"},

		{Address: regFIFOCountH, Name: "FIFO_COUNT_H", Description: "FIFO Count High Byte", Access: "R"},
		{Address: 0x73, Name: "FIFO_COUNT_L", Description: "FIFO Count Low Byte", Access: "R"},
		{Address: regFIFORW, Name: "FIFO_R_W", Description: "FIFO Read/Write", Access: "RW"},

		{Address: regWhoAmI, Name: "WHO_AM_I", Description: "Device identity", Access: "R", Default: whoAmIValue},
	}
}
