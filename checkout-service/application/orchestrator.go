package application

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/draftea/checkout-system/checkout-service/domain"
	"github.com/draftea/checkout-system/shared/logging"
	"github.com/draftea/checkout-system/shared/telemetry"
)

// DefaultAbandonAfter is how long a restored in-flight session may have been
// idle before it is abandoned instead of resumed
const DefaultAbandonAfter = 85 * time.Second

// Orchestrator drives checkout sessions through their channel's state machine.
// Every state is checkpointed before the call it leads to is made, so a
// session can always be resumed from the store.
type Orchestrator struct {
	store        domain.CheckpointStore
	executors    map[domain.Channel]ChannelExecutor
	notifier     domain.Notifier
	refresher    *BalanceRefresher
	scheduler    *PollScheduler
	clock        domain.Clock
	abandonAfter time.Duration
	locks        *sessionLocks

	ctx    context.Context
	cancel context.CancelFunc
}

// NewOrchestrator creates the orchestrator. ctx is the parent of the context
// scheduled polls run with.
func NewOrchestrator(
	ctx context.Context,
	store domain.CheckpointStore,
	notifier domain.Notifier,
	refresher *BalanceRefresher,
	scheduler *PollScheduler,
	clock domain.Clock,
	abandonAfter time.Duration,
	executors ...ChannelExecutor,
) *Orchestrator {
	if abandonAfter <= 0 {
		abandonAfter = DefaultAbandonAfter
	}
	byChannel := make(map[domain.Channel]ChannelExecutor, len(executors))
	for _, e := range executors {
		byChannel[e.Channel()] = e
	}

	ctx, cancel := context.WithCancel(ctx)
	return &Orchestrator{
		store:        store,
		executors:    byChannel,
		notifier:     notifier,
		refresher:    refresher,
		scheduler:    scheduler,
		clock:        clock,
		abandonAfter: abandonAfter,
		locks:        newSessionLocks(),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Begin starts a new session. It fails with ErrCheckpointExists when the
// session key already has a checkpoint.
func (o *Orchestrator) Begin(ctx context.Context, sess *domain.CheckoutSession) (*domain.Checkpoint, error) {
	if _, ok := o.executors[sess.Channel]; !ok {
		return nil, errors.Errorf("no executor for channel %s", sess.Channel)
	}

	unlock, ok := o.locks.tryAcquire(sess.Key)
	if !ok {
		return nil, domain.ErrSessionBusy
	}
	defer unlock()

	existing, err := o.store.Load(ctx, sess.Key)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load checkpoint")
	}
	if existing != nil {
		return nil, domain.ErrCheckpointExists
	}

	sess.State = sess.State.WithStage(domain.StageSelectingChannel)
	if err := o.save(ctx, sess); err != nil {
		return nil, err
	}

	logging.SW("session_key", sess.Key, "channel", sess.Channel, "retailer_id", sess.Retailer.RetailerID).
		Infow("checkout_started")

	return o.run(ctx, sess, domain.FirstEffect(sess.Channel))
}

// Resume restores a session from its checkpoint and continues it from the
// stage it was saved at. A session idle in flight for too long is abandoned.
func (o *Orchestrator) Resume(ctx context.Context, sessionKey string) (*domain.Checkpoint, error) {
	unlock := o.locks.acquire(sessionKey)
	defer unlock()

	sess, err := o.load(ctx, sessionKey)
	if err != nil {
		return nil, err
	}

	if domain.ShouldAbandon(sess.State, sess.SavedAt, o.clock.Now(), o.abandonAfter) {
		logging.SW("session_key", sessionKey, "stage", sess.State.Stage, "saved_at", sess.SavedAt).
			Warnw("checkout_abandoned")
		return o.finish(ctx, sess, domain.EffectAbandon)
	}

	effect := domain.ResumeEffect(sess.Channel, sess.State)
	logging.SW("session_key", sessionKey, "stage", sess.State.Stage, "effect", effect).Infow("checkout_resumed")

	return o.run(ctx, sess, effect)
}

// GoBack lets the caller leave the checkout. It is refused once the order is
// initiated or while a call is in flight; a refusal is counted on the session.
func (o *Orchestrator) GoBack(ctx context.Context, sessionKey string) error {
	unlock, ok := o.locks.tryAcquire(sessionKey)
	if !ok {
		return errors.Wrap(domain.ErrGoBackDenied, domain.ErrSessionBusy.Error())
	}
	defer unlock()

	cp, err := o.store.Load(ctx, sessionKey)
	if err != nil {
		return errors.Wrap(err, "failed to load checkpoint")
	}
	if cp == nil {
		return nil
	}

	sess := cp.Session()
	if domain.CanGoBack(sess.State) {
		o.scheduler.Cancel(sessionKey)
		if err := o.store.Clear(ctx, sessionKey); err != nil {
			return errors.Wrap(err, "failed to clear checkpoint")
		}
		logging.SW("session_key", sessionKey).Infow("checkout_left")
		return nil
	}

	sess.State = sess.State.WithBackTrial()
	if err := o.save(ctx, sess); err != nil {
		return err
	}
	logging.SW("session_key", sessionKey, "back_trial_count", sess.State.BackTrialCount).Infow("checkout_go_back_denied")
	return domain.ErrGoBackDenied
}

// Close cancels scheduled polls
func (o *Orchestrator) Close() {
	o.cancel()
	o.scheduler.Stop()
}

// poll runs when a scheduled poll fires
func (o *Orchestrator) poll(sessionKey string) {
	ctx := o.ctx
	unlock := o.locks.acquire(sessionKey)
	defer unlock()
	o.scheduler.Done(sessionKey)

	if ctx.Err() != nil {
		return
	}

	sess, err := o.load(ctx, sessionKey)
	if err != nil {
		if !errors.Is(err, domain.ErrCheckpointNotFound) {
			logging.SW("session_key", sessionKey, "error", err).Errorw("checkout_poll_load_failed")
		}
		return
	}
	if !sess.State.Stage.IsPolling() {
		return
	}

	telemetry.RecordCounter(ctx, "checkout_polls_total", "Payment request status polls", 1,
		attribute.String("channel", sess.Channel.String()))

	if _, err := o.run(ctx, sess, domain.EffectPollStatus); err != nil {
		logging.SW("session_key", sessionKey, "error", err).Errorw("checkout_poll_failed")
	}
}

func (o *Orchestrator) load(ctx context.Context, sessionKey string) (*domain.CheckoutSession, error) {
	cp, err := o.store.Load(ctx, sessionKey)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load checkpoint")
	}
	if cp == nil {
		return nil, domain.ErrCheckpointNotFound
	}
	if err := cp.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid checkpoint")
	}
	return cp.Session(), nil
}

// run performs effects until the session waits on the caller, a poll or a
// terminal outcome. Each submitting call is issued at most once per run.
func (o *Orchestrator) run(ctx context.Context, sess *domain.CheckoutSession, effect domain.Effect) (*domain.Checkpoint, error) {
	issued := make(map[domain.Effect]bool)

	for {
		switch effect {
		case domain.EffectNone:
			return sess.Snapshot(), nil
		case domain.EffectComplete, domain.EffectFail, domain.EffectAbandon:
			return o.finish(ctx, sess, effect)
		case domain.EffectSchedulePoll:
			return o.schedulePoll(ctx, sess)
		case domain.EffectAwaitQueue:
			o.notifier.Emit(ctx, domain.TransferQueuedNotification(sess))
			return sess.Snapshot(), nil
		case domain.EffectReportError:
			o.notifier.Emit(ctx, domain.RetryRequiredNotification(sess))
			return sess.Snapshot(), nil
		}

		if effect.IsSubmission() {
			if issued[effect] {
				logging.SW("session_key", sess.Key, "stage", sess.State.Stage, "effect", effect, "error", domain.ErrDuplicateSubmission).
					Warnw("checkout_repeat_submission_stopped")
				o.notifier.Emit(ctx, domain.RetryRequiredNotification(sess))
				return sess.Snapshot(), nil
			}
			issued[effect] = true
		}
		if effect == domain.EffectCreateOrder && sess.State.OrderInitiated {
			return sess.Snapshot(), errors.Wrapf(domain.ErrOrderAlreadyInitiated, "session %s", sess.Key)
		}

		next, err := o.step(ctx, sess, effect)
		if err != nil {
			return sess.Snapshot(), err
		}
		effect = next
	}
}

// step checkpoints the state effect leads to, performs it and checkpoints the
// resulting transition
func (o *Orchestrator) step(ctx context.Context, sess *domain.CheckoutSession, effect domain.Effect) (domain.Effect, error) {
	executor, ok := o.executors[sess.Channel]
	if !ok {
		return domain.EffectNone, errors.Errorf("no executor for channel %s", sess.Channel)
	}

	previous := sess.State
	sess.State = domain.Enter(sess.Channel, executor.Prepare(sess, effect), effect)
	if err := o.save(ctx, sess); err != nil {
		sess.State = previous
		return domain.EffectNone, err
	}

	spanCtx, span := telemetry.StartSpan(ctx, "checkout."+effect.String(),
		trace.WithAttributes(
			attribute.String("checkout.session_key", sess.Key),
			attribute.String("checkout.channel", sess.Channel.String()),
		))
	start := time.Now()
	outcome := executor.Perform(spanCtx, sess, effect)
	telemetry.RecordDuration(ctx, "gateway_call_duration_seconds", "Duration of checkout backend calls", start,
		attribute.String("effect", effect.String()),
		attribute.String("outcome", string(outcome.Kind)))
	span.SetAttributes(attribute.String("checkout.outcome", string(outcome.Kind)))
	if outcome.Err != nil {
		span.SetStatus(codes.Error, outcome.Err.Message)
	}
	span.End()

	var next domain.Effect
	sess.State, next = domain.Transition(sess.Channel, sess.State, effect, outcome)
	if err := o.save(ctx, sess); err != nil {
		return domain.EffectNone, err
	}

	log := logging.SW(
		"session_key", sess.Key,
		"channel", sess.Channel,
		"effect", effect,
		"outcome", outcome.Kind,
		"stage", sess.State.Stage,
		"next", next,
	)
	if outcome.Err != nil {
		log.With("error_kind", outcome.Err.Kind, "error_code", outcome.Err.Code, "error", outcome.Err.Message).
			Warnw("checkout_call_failed")
	} else {
		log.Infow("checkout_stage_transition")
	}

	if effect == domain.EffectSendLink && outcome.Kind == domain.OutcomeAccepted {
		o.notifier.Emit(ctx, domain.LinkSentNotification(sess))
	}
	return next, nil
}

func (o *Orchestrator) schedulePoll(ctx context.Context, sess *domain.CheckoutSession) (*domain.Checkpoint, error) {
	sess.State = domain.Enter(sess.Channel, sess.State, domain.EffectSchedulePoll)
	if err := o.save(ctx, sess); err != nil {
		return sess.Snapshot(), err
	}

	key := sess.Key
	if o.scheduler.Arm(key, func() { o.poll(key) }) {
		logging.SW("session_key", key, "in", o.scheduler.Interval()).Debugw("checkout_poll_scheduled")
	}
	return sess.Snapshot(), nil
}

// finish records the terminal stage, clears the checkpoint and notifies
func (o *Orchestrator) finish(ctx context.Context, sess *domain.CheckoutSession, effect domain.Effect) (*domain.Checkpoint, error) {
	var notification *domain.Notification
	switch effect {
	case domain.EffectComplete:
		sess.State = sess.State.WithStage(domain.StageSuccess).WithPendingReconcile(false)
		notification = domain.SucceededNotification(sess)
	case domain.EffectFail:
		if sess.State.Stage != domain.StageWalletStatusFailed {
			sess.State = sess.State.WithStage(domain.StageFatalFailure)
		}
		notification = domain.FailedNotification(sess)
	default:
		sess.State = sess.State.WithStage(domain.StageFatalFailure)
		notification = domain.AbandonedNotification(sess)
	}

	if err := o.save(ctx, sess); err != nil {
		logging.SW("session_key", sess.Key, "error", err).Warnw("checkout_terminal_save_failed")
	}

	o.scheduler.Cancel(sess.Key)
	if err := o.store.Clear(ctx, sess.Key); err != nil {
		return sess.Snapshot(), errors.Wrap(err, "failed to clear checkpoint")
	}

	o.notifier.Emit(ctx, notification)
	telemetry.RecordCounter(ctx, "checkout_terminal_total", "Checkout sessions that reached a terminal outcome", 1,
		attribute.String("channel", sess.Channel.String()),
		attribute.String("outcome", notification.Type))
	logging.SW("session_key", sess.Key, "channel", sess.Channel, "stage", sess.State.Stage, "order_id", sess.State.OrderID()).
		Infow("checkout_finished")

	if o.refresher != nil {
		o.refresher.RefreshAsync(ctx, sess.Retailer.RetailerID)
	}
	return sess.Snapshot(), nil
}

func (o *Orchestrator) save(ctx context.Context, sess *domain.CheckoutSession) error {
	sess.SavedAt = o.clock.Now()
	sess.Version++
	if err := o.store.Save(ctx, sess.Snapshot()); err != nil {
		sess.Version--
		return errors.Wrap(err, "failed to save checkpoint")
	}

	telemetry.RecordCounter(ctx, "checkout_stage_transitions_total", "Checkpointed checkout stage transitions", 1,
		attribute.String("channel", sess.Channel.String()),
		attribute.String("stage", sess.State.Stage.String()))
	return nil
}
