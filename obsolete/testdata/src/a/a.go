package a

import "old"

func _(c *old.MyClass) {
	c.MyOldMethod("text", 2) // want `MyOldMethod is obsolete and should be replaced with MyNewMethod\(y, x, "text2"\)`

	c.Renamed(1, "a", "b") // want `Renamed is obsolete and should be replaced with MyNewMethod`

	_ = old.OldFunc("s", 3) // want `OldFunc is obsolete and should be replaced with old.NewFunc\(y, x\)`

	c.MyOldProperty = 4 // want `MyOldProperty is obsolete`

	_ = c.MyOldProperty + 1 // want `MyOldProperty is obsolete`

	_ = old.OldType{N: 1} // want `OldType is obsolete and should be replaced with NewType`

	_ = new(old.OldType) // want `OldType is obsolete`

	_ = old.OldType.Len // want `OldType is obsolete`

	_ = old.OldVar // want `OldVar is obsolete`

	old.NoHint()

	_ = old.NewFunc(1, "x")
}
