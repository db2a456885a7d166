//go:build windows

package window

// win32KeyCodes maps every portable key code to its Win32 virtual-key
// code. The inverse table is derived in init so the two directions cannot
// drift apart.
var win32KeyCodes = map[KeyCode]int{
	KeyCodeA: 'A', KeyCodeB: 'B', KeyCodeC: 'C', KeyCodeD: 'D',
	KeyCodeE: 'E', KeyCodeF: 'F', KeyCodeG: 'G', KeyCodeH: 'H',
	KeyCodeI: 'I', KeyCodeJ: 'J', KeyCodeK: 'K', KeyCodeL: 'L',
	KeyCodeM: 'M', KeyCodeN: 'N', KeyCodeO: 'O', KeyCodeP: 'P',
	KeyCodeQ: 'Q', KeyCodeR: 'R', KeyCodeS: 'S', KeyCodeT: 'T',
	KeyCodeU: 'U', KeyCodeV: 'V', KeyCodeW: 'W', KeyCodeX: 'X',
	KeyCodeY: 'Y', KeyCodeZ: 'Z',

	KeyCodeNum0: '0', KeyCodeNum1: '1', KeyCodeNum2: '2', KeyCodeNum3: '3',
	KeyCodeNum4: '4', KeyCodeNum5: '5', KeyCodeNum6: '6', KeyCodeNum7: '7',
	KeyCodeNum8: '8', KeyCodeNum9: '9',

	KeyCodeEscape:    0x1B, // VK_ESCAPE
	KeyCodeEnter:     0x0D, // VK_RETURN
	KeyCodeSpace:     0x20, // VK_SPACE
	KeyCodeBackspace: 0x08, // VK_BACK
	KeyCodeTab:       0x09, // VK_TAB
	KeyCodeShift:     0x10, // VK_SHIFT
	KeyCodeCtrl:      0x11, // VK_CONTROL
	KeyCodeAlt:       0x12, // VK_MENU

	KeyCodeLeft:  0x25, // VK_LEFT
	KeyCodeRight: 0x27, // VK_RIGHT
	KeyCodeUp:    0x26, // VK_UP
	KeyCodeDown:  0x28, // VK_DOWN

	KeyCodeF1: 0x70, KeyCodeF2: 0x71, KeyCodeF3: 0x72, KeyCodeF4: 0x73,
	KeyCodeF5: 0x74, KeyCodeF6: 0x75, KeyCodeF7: 0x76, KeyCodeF8: 0x77,
	KeyCodeF9: 0x78, KeyCodeF10: 0x79, KeyCodeF11: 0x7A, KeyCodeF12: 0x7B,
}

var win32KeyCodesInverse map[int]KeyCode

func init() {
	win32KeyCodesInverse = make(map[int]KeyCode, len(win32KeyCodes))
	for code, native := range win32KeyCodes {
		win32KeyCodesInverse[native] = code
	}
}

func convertNativeKeyCode(native int) KeyCode {
	if code, ok := win32KeyCodesInverse[native]; ok {
		return code
	}
	return KeyCodeUnknown
}

func nativeKeyCode(code KeyCode) int {
	if native, ok := win32KeyCodes[code]; ok {
		return native
	}
	return -1
}
