// Package assets holds the files compiled into the server binary: the
// default vocabulary and the single-page client.
package assets

import (
	"embed"
	"io"
)

//go:embed vocab.txt index.html
var FS embed.FS

// Vocab opens the embedded default vocabulary.
func Vocab() (io.ReadCloser, error) {
	return FS.Open("vocab.txt")
}

// IndexHTML returns the game page.
func IndexHTML() ([]byte, error) {
	return FS.ReadFile("index.html")
}
