package jumphash

// assertValue panics with the given message if the condition is false.
// This is used for validating constructor parameters.
func assertValue(ok bool, msg string) {
	if !ok {
		panic(msg)
	}
}
