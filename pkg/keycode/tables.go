package keycode

// basicNames is the fixed table of basic QMK keycodes, including navigation,
// keypad, media and mouse keys. Read-only.
var basicNames = map[uint16]string{
	0x0000: "KC_NO", 0x0001: "KC_TRNS",
	0x0004: "KC_A", 0x0005: "KC_B", 0x0006: "KC_C", 0x0007: "KC_D",
	0x0008: "KC_E", 0x0009: "KC_F", 0x000A: "KC_G", 0x000B: "KC_H",
	0x000C: "KC_I", 0x000D: "KC_J", 0x000E: "KC_K", 0x000F: "KC_L",
	0x0010: "KC_M", 0x0011: "KC_N", 0x0012: "KC_O", 0x0013: "KC_P",
	0x0014: "KC_Q", 0x0015: "KC_R", 0x0016: "KC_S", 0x0017: "KC_T",
	0x0018: "KC_U", 0x0019: "KC_V", 0x001A: "KC_W", 0x001B: "KC_X",
	0x001C: "KC_Y", 0x001D: "KC_Z",
	0x001E: "KC_1", 0x001F: "KC_2", 0x0020: "KC_3", 0x0021: "KC_4",
	0x0022: "KC_5", 0x0023: "KC_6", 0x0024: "KC_7", 0x0025: "KC_8",
	0x0026: "KC_9", 0x0027: "KC_0",
	0x0028: "KC_ENT", 0x0029: "KC_ESC", 0x002A: "KC_BSPC", 0x002B: "KC_TAB",
	0x002C: "KC_SPC", 0x002D: "KC_MINS", 0x002E: "KC_EQL", 0x002F: "KC_LBRC",
	0x0030: "KC_RBRC", 0x0031: "KC_BSLS", 0x0032: "KC_NUHS", 0x0033: "KC_SCLN",
	0x0034: "KC_QUOT", 0x0035: "KC_GRV", 0x0036: "KC_COMM", 0x0037: "KC_DOT",
	0x0038: "KC_SLSH", 0x0039: "KC_CAPS",
	0x003A: "KC_F1", 0x003B: "KC_F2", 0x003C: "KC_F3", 0x003D: "KC_F4",
	0x003E: "KC_F5", 0x003F: "KC_F6", 0x0040: "KC_F7", 0x0041: "KC_F8",
	0x0042: "KC_F9", 0x0043: "KC_F10", 0x0044: "KC_F11", 0x0045: "KC_F12",
	0x0046: "KC_PSCR", 0x0047: "KC_SCRL", 0x0048: "KC_PAUS", 0x0049: "KC_INS",
	0x004A: "KC_HOME", 0x004B: "KC_PGUP", 0x004C: "KC_DEL", 0x004D: "KC_END",
	0x004E: "KC_PGDN", 0x004F: "KC_RGHT", 0x0050: "KC_LEFT", 0x0051: "KC_DOWN",
	0x0052: "KC_UP", 0x0053: "KC_NUM",
	0x0054: "KC_PSLS", 0x0055: "KC_PAST", 0x0056: "KC_PMNS", 0x0057: "KC_PPLS",
	0x0058: "KC_PENT", 0x0059: "KC_P1", 0x005A: "KC_P2", 0x005B: "KC_P3",
	0x005C: "KC_P4", 0x005D: "KC_P5", 0x005E: "KC_P6", 0x005F: "KC_P7",
	0x0060: "KC_P8", 0x0061: "KC_P9", 0x0062: "KC_P0", 0x0063: "KC_PDOT",
	0x0064: "KC_NUBS", 0x0065: "KC_APP",
	0x0068: "KC_F13", 0x0069: "KC_F14", 0x006A: "KC_F15", 0x006B: "KC_F16",
	0x006C: "KC_F17", 0x006D: "KC_F18", 0x006E: "KC_F19", 0x006F: "KC_F20",
	0x0070: "KC_F21", 0x0071: "KC_F22", 0x0072: "KC_F23", 0x0073: "KC_F24",
	0x00A8: "KC_MUTE", 0x00A9: "KC_VOLU", 0x00AA: "KC_VOLD",
	0x00AB: "KC_MNXT", 0x00AC: "KC_MPRV", 0x00AD: "KC_MSTP", 0x00AE: "KC_MPLY",

	// Mouse keys. 0x00D9-0x00DB duplicate the wheel up/down/left codes; kept
	// as-is until firmware semantics for the second block are confirmed.
	0x00CD: "KC_MS_U", 0x00CE: "KC_MS_D", 0x00CF: "KC_MS_L", 0x00D0: "KC_MS_R",
	0x00D1: "KC_BTN1", 0x00D2: "KC_BTN2", 0x00D3: "KC_BTN3", 0x00D4: "KC_BTN4",
	0x00D5: "KC_BTN5",
	0x00D6: "KC_WH_U", 0x00D7: "KC_WH_D", 0x00D8: "KC_WH_L",
	0x00D9: "KC_WH_U", 0x00DA: "KC_WH_D", 0x00DB: "KC_WH_L",
	0x00DC: "KC_WH_R",

	0x00E0: "KC_LCTL", 0x00E1: "KC_LSFT", 0x00E2: "KC_LALT", 0x00E3: "KC_LGUI",
	0x00E4: "KC_RCTL", 0x00E5: "KC_RSFT", 0x00E6: "KC_RALT", 0x00E7: "KC_RGUI",
}

// rgbNames maps RGB control sub-codes (offset from 0x7800) to names.
var rgbNames = map[uint8]string{
	0x00: "RGB_TOG", 0x01: "RGB_MOD", 0x02: "RGB_RMOD",
	0x03: "RGB_HUI", 0x04: "RGB_HUD", 0x05: "RGB_SAI",
	0x06: "RGB_SAD", 0x07: "RGB_VAI", 0x08: "RGB_VAD",
	0x09: "RGB_SPI", 0x0A: "RGB_SPD",
}

// vendorNames covers bootloader/system codes plus the pre-shifted paren keys.
var vendorNames = map[uint16]string{
	0x7C00: "QK_BOOT",
	0x7C01: "QK_RBT",
	0x7C02: "QK_MAKE",
	0x7C03: "QK_VERS",
	0x7C04: "QK_CLR_EEPROM",
	0x7C16: "QK_GESC",
	0x7C1A: "LSFT(KC_9)",
	0x7C1B: "LSFT(KC_0)",
}
