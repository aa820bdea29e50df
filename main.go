package main

import "github.com/lumenpage/materials-cli/cmd"

func main() {
	cmd.Execute()
}
