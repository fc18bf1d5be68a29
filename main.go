package main

import "github.com/ProgrammerShajib/fullstack/cmd"

func main() {
	cmd.Execute()
}
