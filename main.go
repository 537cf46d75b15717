package main

import "github.com/KaramelBytes/quickeda/cmd"

func main() {
	cmd.Execute()
}
