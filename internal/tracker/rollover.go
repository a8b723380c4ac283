package tracker

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lifesyncapp/lifesync/internal/model"
	"github.com/lifesyncapp/lifesync/internal/storage"
)

// RolloverWater scores yesterday against the goal and opens a fresh day.
// If the app was closed for several days only this single transition is
// evaluated; intermediate days are not retroactively scored.
func RolloverWater(log model.WaterLog, goalML int, today string) model.WaterLog {
	if log.Date == today {
		return log
	}
	if log.TodayML >= goalML {
		log.Streak++
	} else {
		log.Streak = 0
	}
	log.TodayML = 0
	log.Date = today
	return log
}

func RolloverPomodoro(stats model.PomodoroStats, today string) model.PomodoroStats {
	if stats.Date == today {
		return stats
	}
	return model.PomodoroStats{SessionsToday: 0, Date: today}
}

// Engine applies date rollovers against the store. It must run before any
// per-day metric is displayed or incremented, so a session left open across
// midnight never carries stale same-day counters.
type Engine struct {
	data   *storage.Data
	logger *zap.Logger
	now    func() time.Time
}

func NewEngine(data *storage.Data, logger *zap.Logger) *Engine {
	return NewEngineAt(data, logger, time.Now)
}

func NewEngineAt(data *storage.Data, logger *zap.Logger, now func() time.Time) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{data: data, logger: logger.Named("rollover"), now: now}
}

// EnsureCurrent loads both per-day records, rolls them over if the stored
// date is stale, and persists any change.
func (e *Engine) EnsureCurrent(userID string, goalML int) (model.WaterLog, model.PomodoroStats, error) {
	today := model.FormatDate(e.now())

	water, err := e.data.WaterLog(userID, today)
	if err != nil {
		return model.WaterLog{}, model.PomodoroStats{}, fmt.Errorf("load water log: %w", err)
	}
	rolledWater := RolloverWater(water, goalML, today)
	if rolledWater != water {
		if err := e.data.SaveWaterLog(userID, rolledWater); err != nil {
			return model.WaterLog{}, model.PomodoroStats{}, fmt.Errorf("persist water log: %w", err)
		}
		e.logger.Info("water log rolled over",
			zap.String("user_id", userID),
			zap.String("date", today),
			zap.Int("streak", rolledWater.Streak),
		)
	}

	pomo, err := e.data.PomodoroStats(userID, today)
	if err != nil {
		return model.WaterLog{}, model.PomodoroStats{}, fmt.Errorf("load pomodoro stats: %w", err)
	}
	rolledPomo := RolloverPomodoro(pomo, today)
	if rolledPomo != pomo {
		if err := e.data.SavePomodoroStats(userID, rolledPomo); err != nil {
			return model.WaterLog{}, model.PomodoroStats{}, fmt.Errorf("persist pomodoro stats: %w", err)
		}
		e.logger.Info("pomodoro stats rolled over", zap.String("user_id", userID), zap.String("date", today))
	}

	return rolledWater, rolledPomo, nil
}
