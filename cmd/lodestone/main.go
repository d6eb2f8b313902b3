/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"github.com/lodeworks/lodestone/cmd/lodestone/cmd"
)

func main() {
	cmd.Execute()
}
