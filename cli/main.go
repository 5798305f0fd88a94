package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/gaswelder/minisql"
)

func main() {
	flags := pflag.NewFlagSet("minisql", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "config file")
	execute := flags.StringP("execute", "e", "", "execute the statements and quit")
	flags.String("state-file", "", "JSON file to load the databases from and save them to")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("addr", "", "listen address for serve")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [script-file | - | serve]\n", os.Args[0])
		flags.PrintDefaults()
	}
	flags.Parse(os.Args[1:])

	cfg, err := LoadConfig(*configPath, flags)
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(cfg.Level()).
		With().Timestamp().Logger()

	state := &stateFile{path: cfg.StateFile, client: cfg.Client}
	store, err := state.load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load state")
	}
	session := &minisql.Session{Store: store, Logger: logger, Client: cfg.Client}
	sh := &shell{session: session, state: state, logger: logger, out: os.Stdout}

	args := flags.Args()
	switch {
	case len(args) > 0 && args[0] == "serve":
		if err := serve(cfg, session, state, logger); err != nil {
			logger.Fatal().Err(err).Msg("server failed")
		}
		return
	case *execute != "":
		sh.run(*execute)
	case len(args) > 0:
		script, err := readScript(args[0])
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to read script")
		}
		sh.run(script)
	default:
		if err := sh.repl(os.Stdin, cfg.Prompt); err != nil {
			logger.Fatal().Err(err).Send()
		}
	}
	if sh.failures > 0 {
		os.Exit(1)
	}
}

func readScript(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(path)
	return string(data), err
}
