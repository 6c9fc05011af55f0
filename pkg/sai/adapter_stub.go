//go:build !(linux && cgo)

package sai

import "github.com/racoon-project/racoon/pkg/schema"

// Open is unavailable on platforms or builds without cgo; the vendor
// library is a Linux shared object loaded through dlopen, which has no
// meaningful equivalent elsewhere. Callers needing a live adapter on
// such builds should use NewMockAdapter instead.
func Open(path string) (Adapter, error) {
	return nil, &schema.LibraryLoadError{Path: path, Msg: "sai adapter requires linux and cgo"}
}
