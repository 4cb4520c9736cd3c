package config

import (
	"flag"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/adearn/internal/flagx"
)

// parseFlags overlays command-line flags onto config.
//
// Supported flags:
//
//	-t string   transport: rest or grpc
//	-u string   REST backend base URL
//	-k string   backend API key
//	-a string   gRPC backend address
//	-d string   data directory
//	-l string   log level (debug, info, warn, error)
//	-b string   bot username used in invite links
//	-w int      loading timeout, seconds
//	-r int      request timeout, seconds
//	-s string   bot token for verifying launch data
//	-init string  Telegram launch data (initData query string)
//
// Arguments are filtered with flagx.FilterArgs first so -c/-config and
// unknown flags do not abort parsing.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-t", "-u", "-k", "-a", "-d", "-l", "-b", "-w", "-r", "-s", "-init"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.Transport, "t", config.Transport, "transport: rest or grpc")
	fs.StringVar(&config.BackendURL, "u", config.BackendURL, "REST backend base URL")
	fs.StringVar(&config.APIKey, "k", config.APIKey, "backend API key")
	fs.StringVar(&config.GRPCAddr, "a", config.GRPCAddr, "gRPC backend address")
	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.BotUsername, "b", config.BotUsername, "bot username for invite links")

	loadingTimeout := fs.Int("w", int(config.LoadingTimeout.Seconds()), "loading timeout (in seconds)")
	requestTimeout := fs.Int("r", int(config.RequestTimeout.Seconds()), "request timeout (in seconds)")

	fs.StringVar(&config.BotToken, "s", config.BotToken, "bot token for launch data verification")
	fs.StringVar(&config.InitData, "init", config.InitData, "Telegram launch data")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.LoadingTimeout = time.Duration(*loadingTimeout) * time.Second
	config.RequestTimeout = time.Duration(*requestTimeout) * time.Second
}
