package fuel

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/TejasJagadale/backendofficial/internal/log"
)

// StartScheduler runs the daily update on spec (default "0 9 * * *"). The
// returned cron should be stopped on shutdown.
func StartScheduler(spec string, svc *Service) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		res := svc.RunUpdate(ctx)
		log.L().Info("fuel: scheduled run finished",
			zap.Bool("success", res.Success),
			zap.String("date", res.Date),
			zap.Int("cities", res.Cities))
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
