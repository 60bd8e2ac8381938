package main

import "github.com/nrgonzalez/depot/cmd"

func main() {
	cmd.Execute()
}
