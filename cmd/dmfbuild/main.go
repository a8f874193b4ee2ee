package main

import "github.com/sci-bots/dmfbuild/cmd/dmfbuild/internal"

func main() {
	internal.Execute()
}
