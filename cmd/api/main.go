package main

import (
	"context"
	"log"

	"github.com/Apurer/pet-adoption-api/internal/app/api"
)

func main() {
	if err := api.Run(context.Background()); err != nil {
		log.Fatalf("adoption API failed: %v", err)
	}
}
