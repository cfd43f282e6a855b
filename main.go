package main

import "github.com/gbmsdev99/xclinic/cmd"

func main() {
	cmd.Execute()
}
