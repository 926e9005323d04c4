package via

// Command ids from the VIA protocol.
const (
	cmdGetProtocolVersion = 0x01
	cmdGetKeyboardValue   = 0x02
	cmdSetKeyboardValue   = 0x03
	cmdGetKeycode         = 0x04
	cmdCustomSetValue     = 0x07
	cmdCustomGetValue     = 0x08
	cmdCustomSave         = 0x09
	cmdGetMacroCount      = 0x0C
	cmdGetMacroBufferSize = 0x0D
	cmdGetMacroBuffer     = 0x0E
	cmdGetLayerCount      = 0x11
	cmdGetKeymapBuffer    = 0x12
)

// Keyboard value ids for cmdGetKeyboardValue/cmdSetKeyboardValue.
const (
	valueUptime            = 0x01
	valueLayoutOptions     = 0x02
	valueSwitchMatrixState = 0x03
	valueFirmwareVersion   = 0x04
	valueDeviceIndication  = 0x05
)

// Channel ids for custom get/set/save.
const (
	channelBacklight = 0x01
	channelRGBLight  = 0x02
	channelRGBMatrix = 0x03
	channelAudio     = 0x04
)

// Value ids shared by the lighting channels.
const (
	lightingBrightness  = 0x01
	lightingEffect      = 0x02
	lightingEffectSpeed = 0x03
	lightingColor       = 0x04
)
