package main

import (
	"context"
	"flag"

	"github.com/dmitrijs2005/authgate/internal/client/cli"
)

func main() {

	serverURL := flag.String("s", "http://127.0.0.1:8080", "server base URL")
	flag.Parse()

	app := cli.NewApp(*serverURL)
	app.Run(context.Background())

}
