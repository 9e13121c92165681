package main

import "github.com/mj1618/axbridge/cmd"

func main() {
	cmd.Execute()
}
