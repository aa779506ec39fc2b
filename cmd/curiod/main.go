package main

import (
	"log"

	"github.com/curiohq/curio/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("curiod failed to start: %v", err)
	}
}
