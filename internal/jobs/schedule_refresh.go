package jobs

import (
	"context"

	"github.com/sirupsen/logrus"

	"ietfmeet/internal/model"
	"ietfmeet/internal/store"
	gosync "ietfmeet/internal/sync"
)

// ScheduleRefreshTask re-syncs the meeting list and the selected meeting's
// schedule. Transient fetch failures are logged and retried on the next tick.
type ScheduleRefreshTask struct {
	store  store.Store
	syncer *gosync.Syncer
	cron   string
}

func NewScheduleRefreshTask(cronExpr string, st store.Store, syncer *gosync.Syncer) *ScheduleRefreshTask {
	return &ScheduleRefreshTask{
		store:  st,
		syncer: syncer,
		cron:   cronExpr,
	}
}

func (t *ScheduleRefreshTask) Schedule() string {
	return t.cron
}

func (t *ScheduleRefreshTask) Run() {
	ctx := context.Background()

	if err := t.syncer.SyncMeetings(ctx); err != nil {
		logrus.Errorf("refresh meetings: %v", err)
	}

	number, err := t.store.GetSetting(ctx, model.SettingMeetingNumber)
	if err != nil || number == "" {
		return
	}
	if err := t.syncer.SyncSchedule(ctx, number); err != nil {
		logrus.Errorf("refresh schedule for meeting %s: %v", number, err)
	}
}
