package main

import "Sceptre/client/sceptre-cli/cmd"

func main() {
	cmd.Execute()
}
