package main

import "github.com/odget-downloader/odget/cmd"

func main() {
	cmd.Execute()
}
