package imagemeta

// This file wires up every codec a sprite or frame may be stored in. Each
// import registers itself with the image package, so image.Decode and
// image.DecodeConfig pick the right one by sniffing the header.

import (
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "github.com/chai2010/webp"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)
