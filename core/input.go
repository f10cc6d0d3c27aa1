package core

// Key identifies a keyboard key independently of the window library.
// The window layer maps its native key codes onto these before handing
// events to the camera controller.
type Key int

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyArrowRight
	KeyArrowLeft
	KeyArrowDown
	KeyArrowUp
	KeyLeftShift
	KeyLeftControl
	KeyLeftAlt
)

// ScrollUnit distinguishes the two ways window libraries report wheel
// motion: discrete lines or raw pixels.
type ScrollUnit int

const (
	ScrollLines ScrollUnit = iota
	ScrollPixels
)
