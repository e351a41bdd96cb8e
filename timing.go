package ssepoll

import "time"

// onKeepAliveBoundary reports whether a keep-alive comment is due. The check
// is a whole-second modulo against the interval, evaluated once per poll
// cycle: a cycle landing on an exact multiple of the interval (including
// elapsed zero) fires a heartbeat, all other cycles do not. A sleep_time that
// never lands the loop on a whole multiple can therefore starve heartbeats;
// pick a sleep_time that divides keep_alive_time.
func onKeepAliveBoundary(elapsed, interval time.Duration) bool {
	if interval <= 0 {
		return false
	}
	return int64(elapsed.Seconds())%int64(interval.Seconds()) == 0
}
