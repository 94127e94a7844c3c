/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/masnyjimmy/blogapi/cmd"

func main() {
	cmd.Execute()
}
