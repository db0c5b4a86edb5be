package timestep

// recordStatuses snapshots each link's just-solved status and setting into
// OldStatus/OldSetting, keeping the values of the last solved step
// available after the next step changes Status and Setting.
func (d *Driver) recordStatuses() {
	for _, l := range d.Net.Links {
		l.OldStatus = l.Status
		l.OldSetting = l.Setting
	}
}
