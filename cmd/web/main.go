package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/okabe/colossus/internal/config"
	"github.com/okabe/colossus/internal/leaderboard"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	// Read-only view of the score database the SSH server writes.
	var store leaderboard.Store
	if path := config.GetEnv("COLOSSUS_DB", "/app/data/scores.db"); path != "" {
		s, err := leaderboard.OpenSQLite(path)
		if err != nil {
			log.Error("scores endpoint disabled", "path", path, "err", err)
		} else {
			store = s
			defer s.Close()
		}
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		page := strings.Replace(htmlPage, "{{.SSHHost}}", sshHost, -1)
		fmt.Fprint(w, page)
	})

	http.HandleFunc("/scores", func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			http.Error(w, "leaderboard unavailable", http.StatusServiceUnavailable)
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
		defer cancel()

		top, err := store.Top(ctx, 10)
		if err != nil {
			log.Error("scores query failed", "err", err)
			http.Error(w, "leaderboard unavailable", http.StatusInternalServerError)
			return
		}

		type score struct {
			Name        string  `json:"name"`
			Score       int     `json:"score"`
			Destruction float64 `json:"destruction_percent"`
			PlayTime    float64 `json:"play_time_seconds"`
		}
		out := make([]score, len(top))
		for i, e := range top {
			out[i] = score{Name: e.Name, Score: e.Score, Destruction: e.DestructionRate, PlayTime: e.PlayTime}
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			log.Error("scores encode failed", "err", err)
		}
	})

	addr := fmt.Sprintf("%s:%s", host, port)
	log.Info("starting web server", "addr", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal("server error", "err", err)
	}
}
