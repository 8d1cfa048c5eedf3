package main

import "github.com/Solteris-Dev/OpenSteamController/cmd"

func main() {
	cmd.Execute()
}
