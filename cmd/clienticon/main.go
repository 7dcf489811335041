// Command clienticon prints the client icon ids of Steam apps.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bsm/appinfo"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
)

type options struct {
	File    string `short:"f" long:"file" description:"Path to appinfo.vdf" value-name:"PATH"`
	Strict  bool   `long:"strict" description:"Skip entries with unknown value types"`
	Verbose bool   `short:"v" long:"verbose" description:"Log skipped entries"`

	Args struct {
		AppIDs []string `positional-arg-name:"APPID" required:"1"`
	} `positional-args:"yes"`
}

func main() {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if opts.Verbose {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}

	if opts.File == "" {
		opts.File = filepath.Join(os.Getenv("HOME"), ".local", "share", "Steam", "appcache", "appinfo.vdf")
	}

	os.Exit(run(os.Stdout, &opts, &logger))
}

func run(w io.Writer, opts *options, logger *zerolog.Logger) int {
	f, err := appinfo.Open(opts.File, &appinfo.Options{
		StrictTags: opts.Strict,
		Logger:     logger,
	})
	if err != nil {
		logger.Error().Err(err).Str("file", opts.File).Msg("cannot open appinfo")
		return 1
	}
	defer f.Close()

	hits := 0
	for _, s := range opts.Args.AppIDs {
		appID, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			logger.Warn().Str("appid", s).Msg("invalid app id")
			continue
		}

		tree, err := f.Find(uint32(appID))
		if errors.Is(err, appinfo.ErrNotFound) {
			logger.Info().Int64("appid", appID).Msg("app not found")
			continue
		} else if err != nil {
			logger.Error().Err(err).Str("file", opts.File).Msg("cannot read appinfo")
			return 1
		}

		icon, ok := appinfo.ClientIconOf(tree, int32(appID))
		if !ok {
			logger.Info().Int64("appid", appID).Msg("app has no client icon")
			continue
		}

		fmt.Fprintf(w, "%d\t%s\n", appID, icon)
		hits++
	}

	if hits == 0 {
		return 2
	}
	return 0
}
