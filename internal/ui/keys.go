package ui

// KeyCode is a key as seen by panels. Only the navigation keys below carry
// meaning inside this package; other codes pass through untouched.
type KeyCode int32

const (
	KeyUnknown KeyCode = iota
	KeyReturn
	KeyEscape
	KeyBackspace
	KeyTab
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
)
