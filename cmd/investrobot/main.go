package main

import (
	"os"

	"github.com/YroslavBochkov/investRobot/cmd/investrobot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
