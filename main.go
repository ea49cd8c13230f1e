package main

import "github.com/ardubev16/cineca-choice-helper/cmd"

func main() {
	cmd.Execute()
}
