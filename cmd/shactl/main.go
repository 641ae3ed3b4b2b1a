package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/shastore/shastore/internal/client"
	"github.com/shastore/shastore/internal/client/cli"
)

func main() {
	server := flag.String("s", "http://localhost:8000", "server base URL")
	flag.Parse()

	app := cli.NewApp(client.New(*server), os.Stdout)
	if err := app.Run(context.Background(), flag.Args()); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
