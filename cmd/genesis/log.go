package main

import (
	"github.com/donatenet/donated/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CMDS")
