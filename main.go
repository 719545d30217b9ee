package main

import (
	"anganwadi/cmd"
)

func main() {
	cmd.Execute()
}
