package main

import (
	"os"

	"github.com/iot-data-space/dataspace/cmd/dataspace"
)

func main() {
	if err := dataspace.Execute(); err != nil {
		os.Exit(1)
	}
}
