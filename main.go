package main

import "github.com/brk3/habitlog/cmd"

func main() {
	cmd.Execute()
}
