package main

import (
	"log"

	"programpro_backend/internals/cli"
	"programpro_backend/internals/configs"
)

func main() {
	configs.LoadEnv()

	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
