package engine

// Mutable container for the side-effects of evaluating one message. Detectors
// enqueue effects during rule execution; the engine applies them in bulk after
// evaluation completes, so a cancelled or crashed evaluation leaves no state
// behind.
type Effects struct {
	// Mark the sender as warned at message time. Set when a warning-tier
	// verdict fires, applied to the warning store after evaluation.
	RecordWarning bool
	// Notification services which should hear about this decision.
	NotifyServices []string
}

func (e *Effects) MarkWarned() {
	e.RecordWarning = true
}

// Enqueues a notification to the named service at the end of processing.
func (e *Effects) Notify(srv string) {
	e.NotifyServices = append(e.NotifyServices, srv)
}
