package esp32

// DebugWriter receives driver debug messages.
type DebugWriter func(string)

// debugPrintln is the package debug sink, a no-op until a target or
// test installs one.
var debugPrintln DebugWriter = func(string) {}

// SetDebugWriter routes driver debug output, e.g. to a USB serial
// console.
func SetDebugWriter(w DebugWriter) {
	debugPrintln = w
}
