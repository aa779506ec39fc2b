package deps

import (
	"time"

	"github.com/curiohq/curio/internal/logger"
	"github.com/curiohq/curio/internal/store"
)

type Deps struct {
	Logger            logger.Logger
	StartTime         time.Time
	Version           string
	Commit            string
	BuildDate         string
	GoVersion         string
	TimeNow           func() time.Time // for testing, defaults to time.Now
	Store             *store.Store     // favorites + galleries repositories
	Persistent        bool             // true when a durable backing store is configured
	SeedReloadTrigger chan struct{}    // channel to trigger a manual seed reload (nil if seeding disabled)
}
