package runtime

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"teamline/domain"
)

// AlertReason says which pipeline step set the alert.
type AlertReason string

const (
	ReasonKeyword AlertReason = "KEYWORD"
	ReasonMention AlertReason = "MENTION"
	ReasonNormal  AlertReason = "NORMAL"
)

// DefaultSound is the literal fallback when neither the channel nor
// the user configured a notification sound.
const DefaultSound = "default"

// DecisionInput is everything the alert decision depends on. The
// decision is a pure function of this struct: identical inputs
// always yield identical outputs.
type DecisionInput struct {
	Text            string
	RecipientName   string
	Keywords        []string
	NotifyOn        domain.NotifyLevel
	MuteUntil       *time.Time
	ChannelSound    string
	Settings        domain.NotificationSettings
	RecipientOnline bool
	Now             time.Time
}

// Decision is the per-recipient output delivered to that user's
// personal room alongside the message broadcast.
type Decision struct {
	ShouldAlert bool
	Reason      AlertReason
	Sound       *string
}

// Decide evaluates the alert pipeline for one recipient. The steps
// are strictly ordered; each sets the alert only if no earlier step
// did, and the suppression pass runs once at the end when an alert
// is currently set. Suppression clears the alert but keeps the
// reason, so clients can still label the unread entry.
func Decide(in DecisionInput) Decision {
	var d Decision

	for _, kw := range in.Keywords {
		if kw == "" {
			continue
		}
		if wholeWord(in.Text, kw) {
			d.ShouldAlert = true
			d.Reason = ReasonKeyword
			break
		}
	}

	if !d.ShouldAlert && in.RecipientName != "" && wholeWord(in.Text, "@"+in.RecipientName) {
		d.ShouldAlert = true
		d.Reason = ReasonMention
	}

	if !d.ShouldAlert {
		switch {
		case wholeWord(in.Text, "@channel"):
			d.ShouldAlert = true
			d.Reason = ReasonMention
		case in.RecipientOnline && (wholeWord(in.Text, "@here") || wholeWord(in.Text, "@online")):
			d.ShouldAlert = true
			d.Reason = ReasonMention
		}
	}

	if !d.ShouldAlert && in.NotifyOn == domain.NotifyAll {
		d.ShouldAlert = true
		d.Reason = ReasonNormal
	}

	if d.ShouldAlert && suppressed(in) {
		d.ShouldAlert = false
	}

	if d.ShouldAlert {
		sound := resolveSound(in.ChannelSound, in.Settings.Sound)
		d.Sound = &sound
	}
	return d
}

// suppressed applies the ordered suppression checks: active DND
// window, channel mute-until still in the future, global messages
// flag, global desktop flag. Any one suppresses.
func suppressed(in DecisionInput) bool {
	if dndActive(in.Settings, in.Now) {
		return true
	}
	if in.MuteUntil != nil && in.MuteUntil.After(in.Now) {
		return true
	}
	if !in.Settings.MessagesEnabled {
		return true
	}
	if !in.Settings.DesktopEnabled {
		return true
	}
	return false
}

// dndActive tests the do-not-disturb window by minute-of-day in the
// recipient's timezone (UTC when unset or unknown). A window whose
// start is at or past its end wraps midnight.
func dndActive(s domain.NotificationSettings, now time.Time) bool {
	if !s.DNDEnabled {
		return false
	}
	start, okStart := clockMinutes(s.DNDStart)
	end, okEnd := clockMinutes(s.DNDEnd)
	if !okStart || !okEnd {
		return false
	}

	loc := time.UTC
	if s.Timezone != "" {
		if l, err := time.LoadLocation(s.Timezone); err == nil {
			loc = l
		}
	}
	local := now.In(loc)
	cur := local.Hour()*60 + local.Minute()

	if start < end {
		return cur >= start && cur <= end
	}
	return cur >= start || cur <= end
}

// clockMinutes parses "HH:MM" into minutes since midnight.
func clockMinutes(v string) (int, bool) {
	parts := strings.SplitN(v, ":", 2)
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, false
	}
	return h*60 + m, true
}

// resolveSound picks the channel override, then the user's global
// sound, then the literal default.
func resolveSound(channelSound, userSound string) string {
	if channelSound != "" {
		return channelSound
	}
	if userSound != "" {
		return userSound
	}
	return DefaultSound
}

// wordPatterns caches one compiled pattern per needle; Decide runs
// per message, per recipient, per keyword, and the keyword sets are
// small and stable.
var wordPatterns sync.Map

// wholeWord reports a case-insensitive whole-word match of needle in
// text. The needle is regex-escaped, so keywords containing regex
// metacharacters match literally.
func wholeWord(text, needle string) bool {
	if cached, ok := wordPatterns.Load(needle); ok {
		return cached.(*regexp.Regexp).MatchString(text)
	}
	re := regexp.MustCompile(`(?i)(^|[^\w@])` + regexp.QuoteMeta(needle) + `($|[^\w])`)
	wordPatterns.Store(needle, re)
	return re.MatchString(text)
}
