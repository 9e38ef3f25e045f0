package main

import "github.com/lkarjala/curator/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
