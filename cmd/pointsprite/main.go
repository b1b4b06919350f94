package main

import (
	"flag"
	"log"
	"log/slog"
	"runtime"

	"github.com/fosdem/pointsprite/lib/config"
	pslog "github.com/fosdem/pointsprite/lib/log"
	"github.com/fosdem/pointsprite/lib/viewer"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()
	if flag.NArg() < 1 {
		log.Fatalf("Usage: pointsprite [-debug] <config file>")
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	pslog.Setup(level)

	cfgFilename := flag.Arg(0)
	cfg, err := config.Parse(cfgFilename)
	if err != nil {
		log.Fatal(err)
	}

	err = viewer.MakeWindowAndDraw(cfg, cfgFilename)
	if err != nil {
		log.Fatal(err)
	}
}
