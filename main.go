package main

import "ietfmeet/cmd"

func main() {
	cmd.Execute()
}
