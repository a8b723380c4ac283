package tracker

import "github.com/lifesyncapp/lifesync/internal/model"

// GlassML is the size of one logged glass of water.
const GlassML = 250

// AddWater logs an intake and reports whether this addition crossed the
// daily goal, which the UI uses to trigger the one-time celebration.
func AddWater(log model.WaterLog, amountML, goalML int) (model.WaterLog, bool) {
	if amountML <= 0 {
		return log, false
	}
	before := log.TodayML
	log.TodayML += amountML
	crossed := before < goalML && log.TodayML >= goalML
	return log, crossed
}

// ResetWater zeroes today's intake without touching the streak or date.
func ResetWater(log model.WaterLog) model.WaterLog {
	log.TodayML = 0
	return log
}

// Glasses converts today's intake into whole glasses.
func Glasses(log model.WaterLog) int {
	return log.TodayML / GlassML
}

// ProgressPercent caps at 100 for display.
func ProgressPercent(log model.WaterLog, goalML int) int {
	if goalML <= 0 {
		return 0
	}
	pct := log.TodayML * 100 / goalML
	if pct > 100 {
		return 100
	}
	return pct
}
