package main

import "github.com/kestrel-lang/kestrel/cmd/kestrelc/cmd"

func main() {
	cmd.Execute()
}
