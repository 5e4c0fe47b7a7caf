package engine

// Detector is one moderation category check. Evaluate returns nil when the
// message is fine, or a Verdict when the category fires. Detectors read
// message state and configs through the context and never mutate either;
// side effects (warning marks, notifications) go through context methods and
// are applied by the engine after all detectors have run.
type Detector interface {
	Name() string
	Evaluate(c *MessageContext) *Verdict
}
