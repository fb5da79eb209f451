/*
Copyright © 2024 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/openabi/calldata-guesser/cmd"

func main() {
	cmd.Execute()
}
