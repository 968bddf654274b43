package main

import (
	"fmt"
	"os"

	"placetrack/cmd/cli/auth"
	"placetrack/cmd/cli/places"
	"placetrack/cmd/cli/records"
	"placetrack/cmd/cli/root"
	"placetrack/cmd/cli/stats"
)

func main() {
	rootCmd := root.GetRoot()

	auth.Init(rootCmd)
	places.Init(rootCmd)
	records.Init(rootCmd)
	stats.Init(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
