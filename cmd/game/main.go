package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/okabe/colossus/internal/config"
	"github.com/okabe/colossus/internal/leaderboard"
	"github.com/okabe/colossus/internal/loop"
)

func main() {
	tuning, err := config.Load(config.GetEnv("COLOSSUS_TUNING", ""))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load tuning: %v\n", err)
		os.Exit(1)
	}

	// Scores go to a local database; if it can't be opened, keep the
	// session's scores in memory so play is unaffected.
	var store leaderboard.Store = leaderboard.NewMemory()
	if path := config.GetEnv("COLOSSUS_DB", "colossus.db"); path != "" {
		if s, err := leaderboard.OpenSQLite(path); err == nil {
			store = s
			defer s.Close()
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)
	runErr := loop.Run(reader, os.Stdout, loop.Options{
		Tuning:   tuning,
		Store:    store,
		Username: localUsername(),
	})

	_ = term.Restore(fd, oldState)
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", runErr)
		os.Exit(1)
	}
}

func localUsername() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "pilot"
}
