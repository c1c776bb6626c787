package main

import "alfaaz/cmd"

func main() {
	cmd.Run()
}
