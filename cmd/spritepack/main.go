// Command spritepack packs sprite directories into atlases and frame
// directories into looping GIFs.
//
// Settings come from config.Default, then the optional -config JSON file,
// then any flags given explicitly on the command line.
package main

import (
	"flag"
	"os"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"

	"badc0de.net/pkg/spritepack/config"
	"badc0de.net/pkg/spritepack/paths"
	"badc0de.net/pkg/spritepack/pipeline"
)

var (
	configPath    = flag.String("config", "", "JSON configuration file; flags given explicitly override it")
	atlases       = flag.String("atlases", "", "comma-separated asset categories to pack into atlases")
	animations    = flag.String("animations", "", "comma-separated asset categories whose subdirectories become GIFs")
	namespace     = flag.String("namespace", "", "prefix for every manifest key")
	frameDelay    = flag.Duration("frame_delay", config.DefaultFrameDelay, "per-frame delay of generated animations")
	maxSpriteSize = flag.Int("max_sprite_size", config.DefaultMaxSpriteSize, "sprites larger than this on either side are shrunk to fit")
	forcePNG      = flag.Bool("force_png", true, "always write atlases as PNG, whatever their file extension")
	palette       = flag.Bool("palette", false, "quantize atlases to at most -colors colours")
	colors        = flag.Int("colors", 256, "palette size in -palette mode")
	printConfig   = flag.Bool("print_config", false, "print the effective configuration as JSON and exit")

	preview     = flag.Bool("preview", false, "print every generated atlas on the terminal")
	previewMode = flag.String("preview_mode", "auto", "terminal preview mode: auto, rasterm, iterm, truecolor, 256 or nocolor")
	blanks      = flag.Bool("blanks", true, "whether to just use colored blanks instead of some bad ascii art")
	downsize    = flag.Bool("downsize", true, "shrink previews to fit the terminal")

	assetsPath string
	outputPath string
)

func splitList(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// loadConfig builds the effective configuration. Only flags that were set
// explicitly override the file; defaults of unset flags are ignored.
func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg, err = config.Load(f)
		f.Close()
		if err != nil {
			return config.Config{}, err
		}
	}

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["assets_path"] || *configPath == "" {
		cfg.AssetsPath = assetsPath
	}
	if set["output_path"] || *configPath == "" {
		cfg.OutputPath = outputPath
	}
	if set["atlases"] {
		cfg.Atlases = splitList(*atlases)
	}
	if set["animations"] {
		cfg.Animations = splitList(*animations)
	}
	if set["namespace"] {
		cfg.Namespace = *namespace
	}
	if set["frame_delay"] {
		cfg.FrameDelayMillis = int(frameDelay.Milliseconds())
	}
	if set["max_sprite_size"] {
		cfg.MaxSpriteSize = *maxSpriteSize
	}
	if set["force_png"] {
		cfg.Encode.Force = *forcePNG
	}
	if set["palette"] {
		cfg.Encode.Palette = *palette
	}
	if set["colors"] {
		cfg.Encode.Colors = *colors
	}
	return cfg, cfg.Validate()
}

func main() {
	paths.SetupDirFlag(flag.CommandLine, "assets", "assets_path", "./assets", &assetsPath)
	paths.SetupDirFlag(flag.CommandLine, "output", "output_path", "./output", &outputPath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	cfg, err := loadConfig()
	if err != nil {
		glog.Exitf("configuration: %v", err)
	}
	if *printConfig {
		if err := cfg.Save(os.Stdout); err != nil {
			glog.Exit(err)
		}
		return
	}

	report := pipeline.Run(cfg)
	glog.Infof("%d jobs, %d failed", len(report.Jobs), len(report.Failed()))

	if *preview {
		previewAtlases(cfg, report)
	}

	if err := report.Err(); err != nil {
		glog.Exit(err)
	}
}
