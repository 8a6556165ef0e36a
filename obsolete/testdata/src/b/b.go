package b

// Deprecated: Replace with `NewHelper`.
func OldHelper() {} // want OldHelper:`hint\(NewHelper\)`

func NewHelper() {}

type T struct{}

// Deprecated: Replace with `New(x)`.
func (T) Old(x int) {} // want Old:`hint\(New\(x\)\)`

func (T) New(x int) {}

func _() {
	OldHelper() // want `OldHelper is obsolete and should be replaced with NewHelper`

	T{}.Old(1) // want `Old is obsolete and should be replaced with New\(x\)`

	f := OldHelper // want `OldHelper is obsolete`

	f()
}
