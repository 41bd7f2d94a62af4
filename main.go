package main

import "xmldocmd/cmd"

func main() {
	cmd.Execute()
}
