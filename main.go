package main

import "github.com/wskoly/virtual-tryon/cmd"

func main() {
	cmd.Execute()
}
