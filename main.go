package main

import (
	"flag"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
)

func main() {
	env := loadEnv()
	debug := flag.Bool("debug", false, "write debug logs to the temp dir")
	seed := flag.Int64("seed", env.Seed, "fixed piece sequence seed (0 = random)")
	flag.Parse()

	closer := setupLogging(*debug, env.LogLevel)
	log.Info().Bool("debug", *debug).Int64("seed", *seed).Msg("tetrigo start")

	program := tea.NewProgram(NewModel(env, *seed), tea.WithAltScreen())
	_, err := program.Run()
	if err != nil {
		log.Error().Err(err).Msg("program error")
	}
	closer.Close()
	if err != nil {
		os.Exit(1)
	}
}
