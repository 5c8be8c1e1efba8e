package control

// incrementTime steps the target time up by the selected field. Every
// branch clamps in place: the target never leaves 0..99 minutes and
// 0..59 seconds, and nothing is corrected after the fact.
func (c *Controller) incrementTime(field AdjustField) {
	switch field {
	case AdjustMinutesTens:
		// No-op above 89: a ten-minute step never pushes past 99.
		if c.targetMinutes <= maxMinutes-10 {
			c.targetMinutes += 10
		}
	case AdjustMinutesUnits:
		if c.targetMinutes < maxMinutes {
			c.targetMinutes++
		}
	case AdjustSecondsTens:
		if c.targetSeconds+10 <= maxSeconds {
			c.targetSeconds += 10
		} else if c.targetMinutes < maxMinutes {
			// Carry a full minute out of the seconds.
			c.targetSeconds = c.targetSeconds + 10 - 60
			c.targetMinutes++
		}
	case AdjustSecondsUnits:
		fallthrough
	default:
		if c.targetSeconds < maxSeconds {
			c.targetSeconds++
		} else {
			// Wrap past 59; the carry into minutes is clamped.
			c.targetSeconds = 0
			if c.targetMinutes < maxMinutes {
				c.targetMinutes++
			}
		}
	}
}

// decrementTime mirrors incrementTime: subtract with a borrow of sixty
// seconds from the minutes, each branch guarded so nothing goes negative.
func (c *Controller) decrementTime(field AdjustField) {
	switch field {
	case AdjustMinutesTens:
		if c.targetMinutes >= 10 {
			c.targetMinutes -= 10
		}
	case AdjustMinutesUnits:
		if c.targetMinutes > 0 {
			c.targetMinutes--
		}
	case AdjustSecondsTens:
		if c.targetSeconds >= 10 {
			c.targetSeconds -= 10
		} else if c.targetMinutes > 0 {
			c.targetSeconds = c.targetSeconds + 60 - 10
			c.targetMinutes--
		}
	case AdjustSecondsUnits:
		fallthrough
	default:
		if c.targetSeconds > 0 {
			c.targetSeconds--
		} else if c.targetMinutes > 0 {
			c.targetSeconds = 59
			c.targetMinutes--
		}
	}
}
