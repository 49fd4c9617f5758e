package chaincfg

import (
	"github.com/donatenet/donated/infrastructure/logger"
)

var log = logger.RegisterSubSystem("CHCF")
