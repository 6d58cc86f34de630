package fbhost

import (
	"github.com/golang/freetype/truetype"
	"github.com/phanxgames/garden"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
)

// newStatusFace loads Go Regular at size points for the status strip,
// falling back to the 7×13 bitmap face.
func newStatusFace(size float64) font.Face {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		garden.Logger().Error("status font parse failed, using basicfont", "err", err)
		return basicfont.Face7x13
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull})
}
