//go:build linux

package window

// x11KeyCodes maps every portable key code to its X keysym (the unshifted
// group-0 symbol, which is what XLookupKeysym with index 0 reports). The
// inverse table is derived in init so the two directions cannot drift
// apart.
var x11KeyCodes = map[KeyCode]int{
	KeyCodeA: 'a', KeyCodeB: 'b', KeyCodeC: 'c', KeyCodeD: 'd',
	KeyCodeE: 'e', KeyCodeF: 'f', KeyCodeG: 'g', KeyCodeH: 'h',
	KeyCodeI: 'i', KeyCodeJ: 'j', KeyCodeK: 'k', KeyCodeL: 'l',
	KeyCodeM: 'm', KeyCodeN: 'n', KeyCodeO: 'o', KeyCodeP: 'p',
	KeyCodeQ: 'q', KeyCodeR: 'r', KeyCodeS: 's', KeyCodeT: 't',
	KeyCodeU: 'u', KeyCodeV: 'v', KeyCodeW: 'w', KeyCodeX: 'x',
	KeyCodeY: 'y', KeyCodeZ: 'z',

	KeyCodeNum0: '0', KeyCodeNum1: '1', KeyCodeNum2: '2', KeyCodeNum3: '3',
	KeyCodeNum4: '4', KeyCodeNum5: '5', KeyCodeNum6: '6', KeyCodeNum7: '7',
	KeyCodeNum8: '8', KeyCodeNum9: '9',

	KeyCodeEscape:    0xFF1B, // XK_Escape
	KeyCodeEnter:     0xFF0D, // XK_Return
	KeyCodeSpace:     0x0020, // XK_space
	KeyCodeBackspace: 0xFF08, // XK_BackSpace
	KeyCodeTab:       0xFF09, // XK_Tab
	KeyCodeShift:     0xFFE1, // XK_Shift_L
	KeyCodeCtrl:      0xFFE3, // XK_Control_L
	KeyCodeAlt:       0xFFE9, // XK_Alt_L

	KeyCodeLeft:  0xFF51, // XK_Left
	KeyCodeRight: 0xFF53, // XK_Right
	KeyCodeUp:    0xFF52, // XK_Up
	KeyCodeDown:  0xFF54, // XK_Down

	KeyCodeF1: 0xFFBE, KeyCodeF2: 0xFFBF, KeyCodeF3: 0xFFC0, KeyCodeF4: 0xFFC1,
	KeyCodeF5: 0xFFC2, KeyCodeF6: 0xFFC3, KeyCodeF7: 0xFFC4, KeyCodeF8: 0xFFC5,
	KeyCodeF9: 0xFFC6, KeyCodeF10: 0xFFC7, KeyCodeF11: 0xFFC8, KeyCodeF12: 0xFFC9,
}

var x11KeyCodesInverse map[int]KeyCode

func init() {
	x11KeyCodesInverse = make(map[int]KeyCode, len(x11KeyCodes))
	for code, native := range x11KeyCodes {
		x11KeyCodesInverse[native] = code
	}
}

func convertNativeKeyCode(native int) KeyCode {
	// Shifted letters report the uppercase keysym; fold to the canonical
	// lowercase entry. Right-hand modifiers fold onto their left twins.
	switch {
	case native >= 'A' && native <= 'Z':
		native += 'a' - 'A'
	case native == 0xFFE2: // XK_Shift_R
		native = 0xFFE1
	case native == 0xFFE4: // XK_Control_R
		native = 0xFFE3
	case native == 0xFFEA: // XK_Alt_R
		native = 0xFFE9
	}
	if code, ok := x11KeyCodesInverse[native]; ok {
		return code
	}
	return KeyCodeUnknown
}

func nativeKeyCode(code KeyCode) int {
	if native, ok := x11KeyCodes[code]; ok {
		return native
	}
	return -1
}
