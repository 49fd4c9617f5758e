package genesis

import (
	"github.com/donatenet/donated/infrastructure/logger"
)

var log = logger.RegisterSubSystem("GNSS")
