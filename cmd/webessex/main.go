package main

import "github.com/webessex/site/cmd"

func main() {
	cmd.Execute()
}
