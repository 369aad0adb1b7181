// Command spriteweb serves the output tree of spritepack for previewing in
// a browser.
package main

import (
	"flag"
	"net/http"
	"os"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "golang.org/x/net/trace"

	"badc0de.net/pkg/spritepack/config"
	"badc0de.net/pkg/spritepack/paths"
	"badc0de.net/pkg/spritepack/web"
)

var (
	listenAddress = flag.String("listen_address", ":8080", "http listen address for spriteweb")
	configPath    = flag.String("config", "", "JSON configuration file naming the atlas files")

	outputPath string
)

func main() {
	paths.SetupDirFlag(flag.CommandLine, "output", "output_path", "./output", &outputPath)
	flagutil.Parse()
	flag.Set("logtostderr", "true")

	cfg := config.Default()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			glog.Exitf("opening config: %v", err)
		}
		cfg, err = config.Load(f)
		f.Close()
		if err != nil {
			glog.Exitf("configuration: %v", err)
		}
	}
	outputSet := false
	flag.Visit(func(f *flag.Flag) { outputSet = outputSet || f.Name == "output_path" })
	if outputSet || *configPath == "" {
		cfg.OutputPath = outputPath
	}

	r := mux.NewRouter()
	web.NewHandler(cfg).RegisterRoutes(r)
	// golang.org/x/net/trace registers /debug/requests and /debug/events on
	// the default mux.
	r.PathPrefix("/debug/").Handler(http.DefaultServeMux)

	glog.Infof("serving %s on %s", cfg.OutputPath, *listenAddress)
	glog.Fatal(http.ListenAndServe(*listenAddress, handlers.LoggingHandler(os.Stderr, handlers.CompressHandler(r))))
}
