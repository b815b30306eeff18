package main

import "github.com/ufosc/minihack-registration/cmd"

func main() {
	cmd.Execute()
}
