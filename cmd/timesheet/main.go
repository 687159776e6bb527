package main

import (
	"os"

	"github.com/vinay0094k/myteamda-withroles-mobile/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
