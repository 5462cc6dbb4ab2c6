package metrics

import "time"

// NoopMetrics is a no-operation implementation of Recorder.
// All methods are empty, providing zero overhead when metrics are disabled.
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() Recorder {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordRegistration(success bool)                                       {}
func (n *NoopMetrics) RecordLogin(authSource string, success bool)                           {}
func (n *NoopMetrics) RecordEmailSent(kind string, success bool)                             {}
func (n *NoopMetrics) RecordPasswordReset(stage string, success bool)                        {}
func (n *NoopMetrics) RecordReviewCreated(success bool)                                      {}
func (n *NoopMetrics) RecordReviewDeleted(actor string)                                      {}
func (n *NoopMetrics) RecordVote(direction, action string)                                   {}
func (n *NoopMetrics) RecordWatchlistChange(op string, success bool)                         {}
func (n *NoopMetrics) RecordAIRequest(endpoint string, success bool, duration time.Duration) {}
func (n *NoopMetrics) RecordAICacheLookup(hit bool)                                          {}
func (n *NoopMetrics) RecordDatabaseQueryError(operation string)                             {}
