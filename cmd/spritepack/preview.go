package main

import (
	"fmt"
	"image"
	"os"

	"github.com/golang/glog"
	"github.com/nfnt/resize"

	"badc0de.net/pkg/spritepack/config"
	"badc0de.net/pkg/spritepack/imagemeta"
	"badc0de.net/pkg/spritepack/imageprint"
	"badc0de.net/pkg/spritepack/pipeline"
)

// fit shrinks img so that it fits on the terminal. Graphics protocols draw
// real pixels, so they get the terminal's pixel size; cell modes get two
// columns per pixel.
func fit(img image.Image, mode imageprint.Mode) image.Image {
	termSize, err := GetTermSize()
	if err != nil {
		glog.V(2).Infof("terminal size: %v", err)
		return img
	}
	pixels := mode == imageprint.Auto || mode == imageprint.RasTerm || mode == imageprint.ITerm
	if pixels && termSize.WSXPixel != 0 && termSize.WSYPixel != 0 {
		return resize.Thumbnail(termSize.WSXPixel/2, termSize.WSYPixel/2, img, resize.Lanczos3)
	}
	return resize.Thumbnail(termSize.WSCol/2, termSize.WSRow, img, resize.Lanczos3)
}

func previewAtlases(cfg config.Config, report pipeline.Report) {
	mode, err := imageprint.ParseMode(*previewMode)
	if err != nil {
		glog.Errorf("preview: %v", err)
		return
	}
	p := imageprint.Printer{W: os.Stdout, Mode: mode, Blanks: *blanks, Name: cfg.AtlasImageName}

	for _, j := range report.Jobs {
		if j.Kind != pipeline.AtlasJob || j.Err != nil {
			continue
		}
		img, err := imagemeta.Load(j.Outputs[0])
		if err != nil {
			glog.Errorf("preview %s: %v", j.Name, err)
			continue
		}
		if *downsize {
			img = fit(img, mode)
		}
		fmt.Printf("%s (%s)\n", j.Name, j.Outputs[0])
		if err := p.Print(img); err != nil {
			glog.Errorf("preview %s: %v", j.Name, err)
		}
	}
}
