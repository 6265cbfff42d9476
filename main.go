package main

import "ikdashboard/cmd"

func main() {
	cmd.Execute()
}
