//go:build windows

package sdl

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// openLibrary loads a DLL and returns its HMODULE.
func openLibrary(path string) (uintptr, error) {
	dll, err := windows.LoadDLL(path)
	if err != nil {
		return 0, fmt.Errorf("LoadDLL failed: %w", err)
	}
	return uintptr(dll.Handle), nil
}
