// Command weatherforecast prints the weather forecast for a place.
package main

import (
	"fmt"
	"os"

	"github.com/joakimwinum/weatherforecast/api"
	"github.com/joakimwinum/weatherforecast/cli"
	"github.com/morikuni/failure/v2"
)

func main() {
	if err := cli.Run(); err != nil {
		var userMessage string
		if fmsg := failure.MessageOf(err); fmsg != "" {
			userMessage = fmsg.String()
		} else {
			userMessage = err.Error()
		}

		// NotFound is printed on stdout without the error prefix
		if failure.Is(err, api.ErrNotFound) {
			fmt.Println(userMessage)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", userMessage)
		os.Exit(1)
	}
}
