package main

import "github.com/dev-mohitbeniwal/listpane/cmd"

func main() {
	cmd.Execute()
}
