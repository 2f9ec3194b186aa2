package main

import "tally/cmd/tally/cmd"

func main() {
	cmd.Execute()
}
