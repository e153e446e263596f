package main

import "github.com/kamal-hamza/neo-cli/cmd"

func main() {
	cmd.Execute()
}
