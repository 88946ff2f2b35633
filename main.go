package main

import (
	"os"
	"time"

	"github.com/benedict-erwin/manufacture-online/cmd"
	"github.com/jpillora/overseer"

	_ "github.com/benedict-erwin/manufacture-online/http/route"
)

// main runs serve under overseer for zero-downtime restarts; every other
// command runs directly
func main() {
	if len(os.Args) >= 2 && os.Args[1] == "serve" {
		overseer.Run(overseer.Config{
			Program: func(state overseer.State) {
				cmd.ExecuteWithListener(state.Listener)
			},
			Address:          ":" + listenPort(),
			RestartSignal:    overseer.SIGUSR2,
			TerminateTimeout: 30 * time.Second,
		})
		return
	}
	cmd.Execute()
}

// listenPort reads PORT before config is loaded; overseer binds the socket
// in the master process
func listenPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "5000"
}
