package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/flopp/go-findfont"
	xsfnt "golang.org/x/image/font/sfnt"
)

// loadFont reads a font file. When arg is not an existing path it is looked
// up among the installed system fonts.
func loadFont(arg string) (string, []byte, error) {
	path := arg
	if _, err := os.Stat(arg); errors.Is(err, fs.ErrNotExist) {
		path, err = findfont.Find(arg)
		if err != nil {
			return "", nil, fmt.Errorf("font %q: %w", arg, err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	return path, data, nil
}

type fontInfo struct {
	Name      string
	NumGlyphs int
}

// describeFont extracts display information. Fonts the x/image parser
// rejects are still valid GOS sources, so failures leave the info empty.
func describeFont(data []byte) fontInfo {
	f, err := xsfnt.Parse(data)
	if err != nil {
		return fontInfo{}
	}

	name, _ := f.Name(nil, xsfnt.NameIDFull)

	return fontInfo{Name: name, NumGlyphs: f.NumGlyphs()}
}

// Title returns the font's full name, or fallback when it has none.
func (i fontInfo) Title(fallback string) string {
	if i.Name == "" {
		return fallback
	}

	return i.Name
}
