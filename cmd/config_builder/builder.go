package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/thrasher-corp/bfxrest/config"
	"github.com/thrasher-corp/bfxrest/encoding/json"
)

func main() {
	var out string
	flag.StringVar(&out, "out", "", "writes the default config to this file instead of stdout")
	flag.Parse()

	if err := build(os.Stdout, out); err != nil {
		log.Fatalf("Unable to build config. Err: %s", err)
	}
}

// build emits a checked default config, either to w or to the file at path
func build(w io.Writer, path string) error {
	cfg := config.DefaultConfig()
	if err := cfg.CheckConfig(); err != nil {
		return err
	}
	if path != "" {
		if err := cfg.SaveConfigToFile(path); err != nil {
			return err
		}
		log.Printf("Default config written to %s", path)
		return nil
	}
	data, err := json.MarshalIndent(cfg, "", " ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
