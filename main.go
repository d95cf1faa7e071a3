package main

import cmd "github.com/inference-gateway/costgate/cmd"

func main() {
	cmd.Execute()
}
