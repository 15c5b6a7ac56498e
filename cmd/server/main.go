package main

import (
	"log"

	"genesis_reels/internal/app"

	_ "go.uber.org/automaxprocs"
)

func main() {
	a := app.NewApp()
	if err := a.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
