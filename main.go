package main

import "teamops.com/teamops/cmd"

func main() {
	cmd.Execute()
}
