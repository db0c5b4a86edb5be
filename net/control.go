package net

// TriggerType enumerates a simple control's activation condition.
type TriggerType int

const (
	BelowLevel TriggerType = iota
	AboveLevel
	AtTime
	AtClockTime
)

// SimpleControl is one (link, new-status, new-setting, trigger) tuple.
// NodeIndex is only meaningful for the two level triggers.
type SimpleControl struct {
	LinkIndex  int
	NewStatus  Status
	NewSetting float64
	Trigger    TriggerType
	NodeIndex  int
	Level      float64
	Time       float64 // seconds, either absolute sim time or time-of-day

	fired bool // timed controls fire exactly once; reset by Network.ResetControls
	armed bool // cleared by Reset; the control-processing code neither sets nor reads it
}

// Fired reports whether a one-shot (AtTime) control has already triggered
// this run.
func (c *SimpleControl) Fired() bool { return c.fired }

// MarkFired records that an AtTime control has triggered.
func (c *SimpleControl) MarkFired() { c.fired = true }

// Reset clears the fired/armed bookkeeping, called at the start of each
// extended-period run, mirroring initH's reset of transient statuses.
func (c *SimpleControl) Reset() {
	c.fired = false
	c.armed = false
}
