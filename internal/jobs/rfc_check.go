package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"ietfmeet/internal/model"
	"ietfmeet/internal/rfcindex"
	"ietfmeet/internal/store"
)

// DefaultRFCCheckInterval is how long the RFC index is left alone between
// import cycles. The importer itself never rate-limits; this job is the
// caller that does.
const DefaultRFCCheckInterval = 48 * time.Hour

// RFCCheckTask runs the RFC index importer at most once per interval,
// tracked via a persisted last-check timestamp.
type RFCCheckTask struct {
	store    store.Store
	importer *rfcindex.Importer
	interval time.Duration
	cron     string
}

func NewRFCCheckTask(cronExpr string, st store.Store, importer *rfcindex.Importer, interval time.Duration) *RFCCheckTask {
	if interval <= 0 {
		interval = DefaultRFCCheckInterval
	}
	return &RFCCheckTask{
		store:    st,
		importer: importer,
		interval: interval,
		cron:     cronExpr,
	}
}

func (t *RFCCheckTask) Schedule() string {
	return t.cron
}

func (t *RFCCheckTask) Run() {
	ctx := context.Background()

	if last, err := t.store.GetSetting(ctx, model.SettingRFCLastCheck); err == nil {
		if ts, err := time.Parse(time.RFC3339, last); err == nil && time.Since(ts) < t.interval {
			return
		}
	}

	if err := t.importer.Run(ctx); err != nil {
		logrus.Errorf("rfc index import: %v", err)
		return
	}

	if err := t.store.PutSetting(ctx, model.SettingRFCLastCheck, time.Now().UTC().Format(time.RFC3339)); err != nil {
		logrus.Errorf("persist rfc last check: %v", err)
	}
}
