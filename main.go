package main

import "github.com/ValentinKolb/rksok/cmd"

func main() {
	cmd.Execute()
}
