package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/jhoicas/b2b-portal-api/internal/cli"
	"github.com/jhoicas/b2b-portal-api/internal/client/session"
	"github.com/jhoicas/b2b-portal-api/pkg/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := cli.NewRootCmd(cli.Options{
		Session: func() (*session.Session, error) {
			cfg, err := config.LoadClient()
			if err != nil {
				return nil, err
			}
			store, err := session.NewFileStore(cfg.SessionFile, cfg.Passphrase)
			if err != nil {
				return nil, err
			}
			return session.New(store, session.NewAPIClient(cfg.APIURL)), nil
		},
	})
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
