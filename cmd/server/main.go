package main

import "github.com/gatherhub/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
