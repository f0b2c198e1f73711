package main

import "github.com/mvp-joe/runcount/internal/cli"

func main() {
	cli.Execute()
}
