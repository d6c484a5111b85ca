package main

import "github.com/simtask/simtask/cmd"

func main() {
	cmd.Execute()
}
