package main

import (
	cmd "github.com/uioperator/uictl/cmd"
)

func main() {
	cmd.Execute()
}
