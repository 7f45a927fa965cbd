// Package main is the entry point for the GraphLens comparison service.
package main

import (
	"os"

	_ "go.uber.org/automaxprocs/maxprocs"

	graphlens "github.com/kart-io/graphlens/internal/graphlens"
)

func main() {
	if err := graphlens.NewApp().Run(); err != nil {
		os.Exit(1)
	}
}
