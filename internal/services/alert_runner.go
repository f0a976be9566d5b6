package services

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/linkedscout/linkedscout/internal/domain/events"
	"github.com/linkedscout/linkedscout/internal/domain/models"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type alertLister interface {
	EnabledAlerts() ([]models.SavedAlert, error)
}

// AlertRunner periodically runs every enabled alert and publishes a
// JobsFound event per alert that produced listings. Alerts run one after
// another; the shared rate limiter keeps the overall request rate bounded
// either way.
type AlertRunner struct {
	bus     EventBus.Bus
	jobs    *JobService
	alerts  alertLister
	cron    *cron.Cron
	onlyNew bool
}

func NewAlertRunner(bus EventBus.Bus, jobService *JobService, alerts alertLister,
	interval time.Duration, onlyNew bool) (*AlertRunner, error) {

	if interval < time.Minute {
		return nil, errors.New("interval must be at least one minute")
	}

	runner := &AlertRunner{
		bus:     bus,
		jobs:    jobService,
		alerts:  alerts,
		cron:    cron.New(),
		onlyNew: onlyNew,
	}

	_, err := runner.cron.AddFunc(fmt.Sprintf("@every %s", interval), runner.RunOnce)
	if err != nil {
		return nil, err
	}

	return runner, nil
}

func (r *AlertRunner) Start() {
	r.cron.Start()
	log.Info("alert runner started")
	r.RunOnce()
}

func (r *AlertRunner) Stop() {
	r.cron.Stop()
}

func (r *AlertRunner) RunOnce() {

	alerts, err := r.alerts.EnabledAlerts()
	if err != nil {
		log.Errorf("failed to load alerts: %v", err)
		return
	}

	if len(alerts) == 0 {
		log.Info("no enabled alerts to run")
		return
	}

	for _, alert := range alerts {
		result, err := r.jobs.RunAlert(context.Background(), alert,
			SearchOptions{OnlyNew: r.onlyNew, SaveToDb: true})
		if err != nil {
			log.Errorf("alert %q failed: %v", alert.Name, err)
			continue
		}

		if result.Failed() {
			log.Warnf("alert %q ended with a partial result: %v", alert.Name, result.Err)
		}

		log.Infof("alert %q found %d listings", alert.Name, len(result.Jobs))

		if len(result.Jobs) > 0 {
			r.bus.Publish(events.JobsFoundTopic, events.JobsFound{
				AlertName: alert.Name,
				Result:    result,
			})
		}
	}
}
