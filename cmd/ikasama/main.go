package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"ikasama/internal/catalog"
	"ikasama/internal/config"
	"ikasama/internal/log"
	"ikasama/internal/session"
	"ikasama/internal/transport"
	"ikasama/internal/ui"
)

func main() {
	offline := flag.Bool("offline", false, "play the scripted opponent without a server")
	host := flag.String("host", "localhost:8080", "game server host:port")
	room := flag.String("room", "new", "room id to join, or 'new' to create one")
	mode := flag.String("mode", "create", "room mode: create or join")
	rulesFile := flag.String("config", "", "path to a rules YAML file (defaults when empty)")
	verbose := flag.Bool("v", false, "log session events to stderr")
	flag.Parse()

	rules := config.Default()
	if *rulesFile != "" {
		var err error
		rules, err = config.Load(*rulesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	var logger log.EventLogger = log.NewMemoryLogger()
	if *verbose {
		logger = log.NewTextLogger(os.Stderr)
	}

	game := ui.New(rules)
	sess := session.New(rules, session.Options{Hooks: game.Hooks(), Logger: logger})
	game.Bind(sess)

	game.OnConnect = func() {
		if *offline {
			off := transport.NewOffline(sess, rules, catalog.Default(), transport.OfflineOptions{})
			sess.Attach(off, true)
			off.Open()
			sess.StartMatch()
			return
		}
		client, err := transport.Dial(context.Background(), *host, *room, *mode, sess, logger)
		if err != nil {
			sess.HandleError(fmt.Sprintf("connect: %v", err))
			return
		}
		sess.Attach(client, false)
		if first, err := transport.FirstAttack(context.Background(), *host); err == nil {
			sess.HandleSystem(fmt.Sprintf("First attack: %s", first))
		}
		sess.StartMatch()
	}

	ebiten.SetWindowSize(ui.ViewW, ui.ViewH)
	ebiten.SetWindowTitle("ikasama")
	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
