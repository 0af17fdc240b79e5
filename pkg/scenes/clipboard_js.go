//go:build js

package scenes

import "errors"

func writeClipboard(string) error {
	return errors.New("clipboard not available in the browser build")
}
