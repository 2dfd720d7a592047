package intern

import "github.com/hupe1980/lexpos"

// Default is a process-wide Interner for callers that do not wire their
// own. Libraries that want isolated or observable interning should create
// an Interner with New and pass it explicitly.
var Default = New()

// Get calls Default.Get.
func Get(record lexpos.PrimaryKey, index int32) (*lexpos.Position, error) {
	return Default.Get(record, index)
}

// Decode calls Default.Decode.
func Decode(b []byte) (*lexpos.Position, error) {
	return Default.Decode(b)
}
