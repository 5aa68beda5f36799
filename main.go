package main

import "github.com/bradford-hamilton/octo/cmd"

func main() {
	cmd.Execute()
}
