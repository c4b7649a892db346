package main

import "github.com/notargets/tesnet/cmd"

func main() {
	cmd.Execute()
}
