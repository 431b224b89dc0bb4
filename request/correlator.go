package request

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hupe1980/agenthub/core"
	"github.com/hupe1980/agenthub/logging"
	"github.com/hupe1980/agenthub/mailbox"
	"github.com/hupe1980/agenthub/metrics"
)

// DefaultPollInterval is the sleep between response checks inside
// WaitForResponse.
const DefaultPollInterval = 100 * time.Millisecond

var (
	// ErrRequestNotFound is returned when a response references a request id
	// that was never created through SendRequest.
	ErrRequestNotFound = errors.New("request: request not found")
	// ErrUnknownAgent is returned when a request names an agent the directory
	// cannot resolve.
	ErrUnknownAgent = errors.New("request: unknown agent")
)

// Options configures a Correlator.
type Options struct {
	// PollInterval is the retry interval used by WaitForResponse. Values < 1
	// fall back to DefaultPollInterval.
	PollInterval time.Duration
	// Logger receives correlation outcomes. Defaults to NoOpLogger.
	Logger logging.Logger
	// Metrics records wait gauge and derived delivery counters. Nil disables
	// recording.
	Metrics *metrics.Metrics
}

// Correlator tracks requests and their responses in independently
// synchronized maps. Requests and responses are immutable once stored.
type Correlator struct {
	dir     core.AgentDirectory
	mailbox *mailbox.Store
	logger  logging.Logger
	metrics *metrics.Metrics
	poll    time.Duration

	reqMu    sync.RWMutex
	requests map[string]core.Request

	respMu    sync.RWMutex
	responses map[string]core.Response // keyed by request id, first response wins
}

// NewCorrelator creates a correlator that validates agents against dir and
// emits derived messages through mb.
func NewCorrelator(dir core.AgentDirectory, mb *mailbox.Store, optFns ...func(o *Options)) *Correlator {
	opts := Options{PollInterval: DefaultPollInterval, Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.PollInterval < 1 {
		opts.PollInterval = DefaultPollInterval
	}
	return &Correlator{
		dir:       dir,
		mailbox:   mb,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
		poll:      opts.PollInterval,
		requests:  make(map[string]core.Request),
		responses: make(map[string]core.Response),
	}
}

// SendRequest stores the request and delivers a derived command message to the
// recipient. Both agents must resolve through the directory. The returned id
// identifies the request for correlation and waiting.
//
// The request write and the derived message delivery are not transactional: a
// failed delivery is logged but leaves the stored request intact and pending.
func (c *Correlator) SendRequest(ctx context.Context, from, to string, req core.Request) (string, error) {
	if !c.agentExists(ctx, from) {
		return "", fmt.Errorf("%w: %s", ErrUnknownAgent, from)
	}
	if !c.agentExists(ctx, to) {
		return "", fmt.Errorf("%w: %s", ErrUnknownAgent, to)
	}

	req.FromAgentID = from
	req.ToAgentID = to
	if req.ID == "" {
		req.ID = core.NewID()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}

	c.reqMu.Lock()
	c.requests[req.ID] = req
	c.reqMu.Unlock()

	msg := core.NewMessage(from, to, "Request: "+req.Description, core.MessageTypeCommand, req.Priority.MessagePriority())
	msg.Attachments = map[string]any{"request_id": req.ID, "request_type": req.RequestType}
	if !c.mailbox.Send(ctx, from, to, msg) {
		c.logger.Warn("derived command message not delivered", "request_id", req.ID, "to", to)
	}
	c.metrics.RecordDelivery(metrics.KindRequest, true)

	c.logger.Info("request sent", "request_id", req.ID, "from", from, "to", to, "request_type", req.RequestType)
	return req.ID, nil
}

// SendResponse records a response for an existing request and delivers a
// derived answer message back to the original requester. A response for an
// unknown request id is rejected and no response record is created. When a
// request already has a response the first one is retained for correlation;
// the derived message is still delivered.
func (c *Correlator) SendResponse(ctx context.Context, requestID string, resp core.Response) bool {
	c.reqMu.RLock()
	req, ok := c.requests[requestID]
	c.reqMu.RUnlock()
	if !ok {
		c.logger.Warn("response rejected for unknown request", "request_id", requestID)
		c.metrics.RecordDelivery(metrics.KindResponse, false)
		return false
	}

	resp.RequestID = requestID
	if resp.ID == "" {
		resp.ID = core.NewID()
	}
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = time.Now().UTC()
	}

	c.respMu.Lock()
	if _, exists := c.responses[requestID]; !exists {
		c.responses[requestID] = resp
	}
	c.respMu.Unlock()

	content := "Request completed successfully"
	if !resp.Success {
		content = "Request failed: " + resp.ErrorMessage
	}
	msg := core.NewMessage(resp.FromAgentID, req.FromAgentID, content, core.MessageTypeAnswer, core.MessagePriorityMedium)
	if len(resp.Data) > 0 {
		msg.Attachments = resp.Data
	}
	if !c.mailbox.Send(ctx, resp.FromAgentID, req.FromAgentID, msg) {
		c.logger.Warn("derived answer message not delivered", "request_id", requestID, "to", req.FromAgentID)
	}
	c.metrics.RecordDelivery(metrics.KindResponse, true)

	c.logger.Info("response recorded", "request_id", requestID, "success", resp.Success)
	return true
}

// Response returns the response correlated with the request id, if any.
func (c *Correlator) Response(requestID string) (core.Response, bool) {
	c.respMu.RLock()
	defer c.respMu.RUnlock()
	resp, ok := c.responses[requestID]
	return resp, ok
}

// WaitForResponse blocks until a response for the request arrives, the
// timeout elapses, or ctx is cancelled. It polls at the configured interval;
// cancellation aborts the wait promptly rather than at the next poll boundary.
// Returns nil on timeout or cancellation.
func (c *Correlator) WaitForResponse(ctx context.Context, requestID string, timeout time.Duration) *core.Response {
	c.metrics.WaitStarted()
	defer c.metrics.WaitFinished()

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(c.poll)
	defer ticker.Stop()

	for {
		if resp, ok := c.Response(requestID); ok {
			return &resp
		}
		select {
		case <-ctx.Done():
			return nil
		case <-deadline.C:
			c.logger.Warn("timeout waiting for response", "request_id", requestID, "timeout", timeout)
			return nil
		case <-ticker.C:
		}
	}
}

// Pending returns the requests addressed to the agent that have no response
// yet and whose timeout (when set) has not elapsed. Ordering is priority
// descending, then creation time ascending, which defines scheduling fairness
// for downstream consumers.
func (c *Correlator) Pending(agentID string) []core.Request {
	now := time.Now().UTC()

	c.reqMu.RLock()
	candidates := make([]core.Request, 0)
	for _, req := range c.requests {
		if req.ToAgentID == agentID && !req.Expired(now) {
			candidates = append(candidates, req)
		}
	}
	c.reqMu.RUnlock()

	c.respMu.RLock()
	pending := candidates[:0]
	for _, req := range candidates {
		if _, answered := c.responses[req.ID]; !answered {
			pending = append(pending, req)
		}
	}
	c.respMu.RUnlock()

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].Priority != pending[j].Priority {
			return pending[i].Priority > pending[j].Priority
		}
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending
}

// RequestsFrom returns every stored request sent by the agent. Snapshot;
// used by communication analytics.
func (c *Correlator) RequestsFrom(agentID string) []core.Request {
	c.reqMu.RLock()
	defer c.reqMu.RUnlock()
	reqs := make([]core.Request, 0)
	for _, req := range c.requests {
		if req.FromAgentID == agentID {
			reqs = append(reqs, req)
		}
	}
	return reqs
}

// RequestsTo returns every stored request addressed to the agent, including
// answered and expired ones. Snapshot; used by communication analytics.
func (c *Correlator) RequestsTo(agentID string) []core.Request {
	c.reqMu.RLock()
	defer c.reqMu.RUnlock()
	reqs := make([]core.Request, 0)
	for _, req := range c.requests {
		if req.ToAgentID == agentID {
			reqs = append(reqs, req)
		}
	}
	return reqs
}

// Request returns the stored request by id.
func (c *Correlator) Request(requestID string) (core.Request, bool) {
	c.reqMu.RLock()
	defer c.reqMu.RUnlock()
	req, ok := c.requests[requestID]
	return req, ok
}

func (c *Correlator) agentExists(ctx context.Context, agentID string) bool {
	desc, err := c.dir.Resolve(ctx, agentID)
	if err != nil {
		c.logger.Error("agent resolution failed", "agent_id", agentID, "error", err)
		return false
	}
	return desc != nil
}
