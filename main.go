package main

import "mini-library/cmd"

func main() {
	cmd.Execute()
}
