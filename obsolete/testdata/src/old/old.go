package old

// MyClass is an example type.
type MyClass struct {
	// Deprecated: Replace with `MyNewProperty`.
	MyOldProperty int // want MyOldProperty:`hint\(MyNewProperty\)`

	MyNewProperty int
}

// MyOldMethod prints x y times.
//
// Deprecated: Replace with `MyNewMethod(y, x, "text2")`.
func (c *MyClass) MyOldMethod(x string, y int) {} // want MyOldMethod:`hint\(MyNewMethod\(y, x, "text2"\)\)`

func (c *MyClass) MyNewMethod(y int, x, z string) {}

// Deprecated: Replace with `MyNewMethod`.
func (c *MyClass) Renamed(y int, x, z string) {} // want Renamed:`hint\(MyNewMethod\)`

// Deprecated: Replace with `old.NewFunc(y, x)`.
func OldFunc(x string, y int) string { return x } // want OldFunc:`hint\(old.NewFunc\(y, x\)\)`

func NewFunc(y int, x string) string { return x }

// OldType is kept for compatibility.
//
// Deprecated: Replace with `NewType`.
type OldType struct{ N int } // want OldType:`hint\(NewType\)`

func (OldType) Len() int { return 0 }

type NewType struct{ N int }

func (NewType) Len() int { return 0 }

// Deprecated: NoHint will be removed.
func NoHint() {}

// Deprecated: Replace with `NewVar`.
var OldVar = 1 // want OldVar:`hint\(NewVar\)`

var NewVar = 2
