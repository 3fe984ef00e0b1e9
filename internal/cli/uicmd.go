package cli

import (
	"time"

	"github.com/idilsaglam/projorg/internal/tui"
)

func (a *app) doUI() int {
	if !a.load() {
		return 1
	}
	saved, err := tui.Run(a.store, tui.Options{
		Windows:          a.windows(),
		RemindDaysBefore: a.cfg.Notify.RemindDaysBefore,
		PollInterval:     time.Duration(a.cfg.Notify.CheckIntervalMinutes) * time.Minute,
	})
	if err != nil {
		a.theme.Fail("ui: " + err.Error())
		return 1
	}
	if saved {
		a.theme.OK("saved")
	}
	return 0
}
