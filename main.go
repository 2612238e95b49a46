package main

import (
	"github.com/sst/growingtext/cmd"
	"github.com/sst/growingtext/internal/logging"
)

func main() {
	defer logging.RecoverPanic("main", nil)

	cmd.Execute()
}
