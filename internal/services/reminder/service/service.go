// Package service implements the reminder supervisor (spec.md §4.6): on each
// tick, for every registered user, it computes the user's local time and
// fires at most one lunch reminder, end-of-day reminder, and
// work-hours-complete notification per local day
package service

import (
	"context"
	"sync"
	"time"

	"worklog/internal/modkit/repokit"
	"worklog/internal/platform/logger"

	holidaysdom "worklog/internal/services/holidays/domain"
	notifydom "worklog/internal/services/notify/domain"
	trackingrepo "worklog/internal/services/tracking/repo"
	usersrepo "worklog/internal/services/users/repo"
)

// Config carries the supervisor's tunables (spec.md §6.5)
type Config struct {
	// CheckInterval is the tick period; 0 uses DefaultCheckInterval
	CheckInterval time.Duration
}

// DefaultCheckInterval is used when Config.CheckInterval is zero
const DefaultCheckInterval = 3 * time.Minute

// reminderWindow is the ±1-minute tolerance spec.md §4.6 specifies around a
// configured local target time
const reminderWindow = time.Minute

// userState tracks the last local date seen for a user and which reminder
// kinds have already fired for that date; process-local and best-effort
// (spec.md §5)
type userState struct {
	lastLocalDate string
	sentToday     map[notifydom.Kind]bool
}

// Svc hosts the reminder worker loop
type Svc struct {
	db             repokit.TxRunner
	usersBinder    repokit.Binder[usersrepo.Repo]
	sessionsBinder repokit.Binder[trackingrepo.Repo]
	holidays       holidaysdom.OnHolidayLookup
	sink           notifydom.Sink
	cfg            Config
	log            logger.Logger
	nowFunc        func() time.Time

	mu          sync.Mutex
	users2state map[string]*userState
}

// New constructs the reminder supervisor
func New(
	db repokit.TxRunner,
	usersBinder repokit.Binder[usersrepo.Repo],
	sessionsBinder repokit.Binder[trackingrepo.Repo],
	holidays holidaysdom.OnHolidayLookup,
	sink notifydom.Sink,
	cfg Config,
) *Svc {
	if db == nil {
		panic("reminder.Service requires a non nil TxRunner")
	}
	if cfg.CheckInterval <= 0 {
		cfg.CheckInterval = DefaultCheckInterval
	}
	return &Svc{
		db:             db,
		usersBinder:    usersBinder,
		sessionsBinder: sessionsBinder,
		holidays:       holidays,
		sink:           sink,
		cfg:            cfg,
		log:            *logger.Named("reminder"),
		nowFunc:        func() time.Time { return time.Now().UTC() },
		users2state:    make(map[string]*userState),
	}
}

// Run hosts the ticker loop
func (s *Svc) Run(ctx context.Context) error {
	t := time.NewTicker(s.cfg.CheckInterval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if err := s.Tick(ctx); err != nil {
				s.log.Error().Err(err).Msg("reminder tick failed")
			}
		}
	}
}

// Tick runs one sweep of every registered user
func (s *Svc) Tick(ctx context.Context) error {
	var users []usersrepo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		users, err = s.usersBinder.Bind(q).ListAll(ctx)
		return err
	})
	if err != nil {
		return err
	}
	for _, u := range users {
		if err := s.checkOne(ctx, u); err != nil {
			s.log.Error().Err(err).Str("user_id", u.ID).Msg("reminder check failed for user")
		}
	}
	return nil
}

func (s *Svc) checkOne(ctx context.Context, u usersrepo.Row) error {
	now := s.nowFunc()
	local := now.Add(time.Duration(u.UTCOffsetMinutes) * time.Minute)
	localDate := local.Format("2006-01-02")

	st := s.stateFor(u.ID, localDate)

	onHoliday, err := s.holidays.IsOnHoliday(ctx, u.ID, local)
	if err != nil {
		return err
	}
	if onHoliday {
		return nil
	}

	if u.LunchReminderHour != nil && u.LunchReminderMinute != nil {
		s.maybeFire(ctx, st, u.ID, notifydom.KindLunchReminder, local,
			*u.LunchReminderHour, *u.LunchReminderMinute, "time for your lunch break")
	}
	if u.EndOfDayReminderHour != nil && u.EndOfDayReminderMinute != nil {
		s.maybeFire(ctx, st, u.ID, notifydom.KindEndOfDayReminder, local,
			*u.EndOfDayReminderHour, *u.EndOfDayReminderMinute, "your configured end-of-day time has arrived")
	}
	if u.DailyTargetWorkHours != nil {
		if err := s.checkWorkHoursComplete(ctx, st, u, local); err != nil {
			return err
		}
	}
	return nil
}

// maybeFire emits kind if local is within reminderWindow of hour:minute on
// local's date and kind has not already fired for this local date
func (s *Svc) maybeFire(ctx context.Context, st *userState, userID string, kind notifydom.Kind, local time.Time, hour, minute int, msg string) {
	s.mu.Lock()
	if st.sentToday[kind] {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	target := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, local.Location())
	diff := local.Sub(target)
	if diff < -reminderWindow || diff > reminderWindow {
		return
	}

	s.mu.Lock()
	st.sentToday[kind] = true
	s.mu.Unlock()
	s.sink.SendNotification(ctx, userID, kind, msg)
}

// checkWorkHoursComplete sums the user's completed Working sessions within
// their current local day and fires once the total meets the daily target
func (s *Svc) checkWorkHoursComplete(ctx context.Context, st *userState, u usersrepo.Row, local time.Time) error {
	s.mu.Lock()
	already := st.sentToday[notifydom.KindWorkHoursComplete]
	s.mu.Unlock()
	if already {
		return nil
	}

	offset := time.Duration(u.UTCOffsetMinutes) * time.Minute
	localMidnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	fromUTC := localMidnight.Add(-offset)
	toUTC := fromUTC.Add(24 * time.Hour)

	var sessions []trackingrepo.Row
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		sessions, err = s.sessionsBinder.Bind(q).SessionsInRange(ctx, u.ID, fromUTC, toUTC)
		return err
	})
	if err != nil {
		return err
	}
	var worked time.Duration
	for _, sess := range sessions {
		if sess.State != "Working" || sess.EndedAt == nil {
			continue
		}
		worked += sess.EndedAt.Sub(sess.StartedAt)
	}
	if worked < time.Duration(*u.DailyTargetWorkHours*float64(time.Hour)) {
		return nil
	}

	s.mu.Lock()
	st.sentToday[notifydom.KindWorkHoursComplete] = true
	s.mu.Unlock()
	s.sink.SendNotification(ctx, u.ID, notifydom.KindWorkHoursComplete, "you have reached your daily target work hours")
	return nil
}

// stateFor returns the user's bookkeeping state, clearing its sent-today set
// if the user has crossed a local day boundary since the last tick
func (s *Svc) stateFor(userID, localDate string) *userState {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.users2state[userID]
	if !ok {
		st = &userState{sentToday: make(map[notifydom.Kind]bool)}
		s.users2state[userID] = st
	}
	if st.lastLocalDate != localDate {
		st.lastLocalDate = localDate
		st.sentToday = make(map[notifydom.Kind]bool)
	}
	return st
}
