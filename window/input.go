package window

// KeyCode identifies a keyboard key independently of the platform's native
// key codes. Unmapped native codes translate to KeyCodeUnknown.
type KeyCode uint8

const (
	KeyCodeUnknown KeyCode = iota

	KeyCodeA
	KeyCodeB
	KeyCodeC
	KeyCodeD
	KeyCodeE
	KeyCodeF
	KeyCodeG
	KeyCodeH
	KeyCodeI
	KeyCodeJ
	KeyCodeK
	KeyCodeL
	KeyCodeM
	KeyCodeN
	KeyCodeO
	KeyCodeP
	KeyCodeQ
	KeyCodeR
	KeyCodeS
	KeyCodeT
	KeyCodeU
	KeyCodeV
	KeyCodeW
	KeyCodeX
	KeyCodeY
	KeyCodeZ

	KeyCodeNum0
	KeyCodeNum1
	KeyCodeNum2
	KeyCodeNum3
	KeyCodeNum4
	KeyCodeNum5
	KeyCodeNum6
	KeyCodeNum7
	KeyCodeNum8
	KeyCodeNum9

	KeyCodeEscape
	KeyCodeEnter
	KeyCodeSpace
	KeyCodeBackspace
	KeyCodeTab
	KeyCodeShift
	KeyCodeCtrl
	KeyCodeAlt

	KeyCodeLeft
	KeyCodeRight
	KeyCodeUp
	KeyCodeDown

	KeyCodeF1
	KeyCodeF2
	KeyCodeF3
	KeyCodeF4
	KeyCodeF5
	KeyCodeF6
	KeyCodeF7
	KeyCodeF8
	KeyCodeF9
	KeyCodeF10
	KeyCodeF11
	KeyCodeF12

	keyCodeCount
)

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonUnknown MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
)
