package main

import "github.com/KaramelBytes/strokestat-cli/cmd"

func main() {
	cmd.Execute()
}
