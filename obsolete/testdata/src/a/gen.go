// Code generated by hand for testing. DO NOT EDIT.

package a

import "old"

func _() {
	_ = old.OldFunc("s", 3)
}
