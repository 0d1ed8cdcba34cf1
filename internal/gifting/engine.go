package gifting

import (
	"github.com/focustense/penpals-server/internal/config"
	"github.com/focustense/penpals-server/internal/logger"
	"github.com/focustense/penpals-server/internal/world"
	"github.com/focustense/penpals-server/internal/worlddate"
)

// Engine ties the gift-mail pieces together for the hosting simulation. It
// re-reads configuration through a provider and reloads the custom-rules
// asset for every evaluation, so both can change between sweeps.
type Engine struct {
	world    world.World
	store    *Store
	configFn func() *config.GiftingConfig
}

// NewEngine creates an engine over the given world, store and config
// provider.
func NewEngine(w world.World, store *Store, configFn func() *config.GiftingConfig) *Engine {
	return &Engine{world: w, store: store, configFn: configFn}
}

// Store returns the pending-delivery store.
func (e *Engine) Store() *Store {
	return e.store
}

// Rules builds a rule evaluator from the current config, a fresh
// custom-rules snapshot, and the current date.
func (e *Engine) Rules() *Rules {
	cfg := e.configFn()
	custom, err := LoadCustomRules(cfg.RulesPath)
	if err != nil {
		logger.Warningf("Using empty custom rules: %v", err)
	}
	return NewRules(cfg, custom, e.world.Date())
}

// Distributor builds a distributor for an immediate sweep or dry run.
func (e *Engine) Distributor() *Distributor {
	return NewDistributor(e.world, e.store, e.Rules(), e.configFn())
}

// Sender builds a sender for the given actor and selected item.
func (e *Engine) Sender(actor world.Actor, item *world.Item) *Sender {
	return NewSender(e.world, e.configFn(), e.Rules(), e.store.DataFor(actor.ID()), actor, item)
}

// OnDayEnding runs the end-of-day sweep. Only fires under same-day
// scheduling; exactly one of OnDayEnding/OnDayStarted processes gifts on
// any given day.
func (e *Engine) OnDayEnding() []GiftResult {
	if e.configFn().Scheduling != worlddate.SchedulingSameDay {
		return nil
	}
	results := e.Distributor().ReceiveAll()
	LogResults(results, "End-of-Day Gift Results:")
	return results
}

// OnDayStarted runs the start-of-day sweep under next-day scheduling.
func (e *Engine) OnDayStarted() []GiftResult {
	if e.configFn().Scheduling != worlddate.SchedulingNextDay {
		return nil
	}
	results := e.Distributor().ReceiveAll()
	LogResults(results, "Start-of-Day Gift Results:")
	return results
}

// CollectReturn hands a returned gift back to its sender when the
// corresponding return mail is opened. The record is removed; the mailbox
// key itself is owned by the simulation.
func (e *Engine) CollectReturn(actor world.Actor, mailKey string) (ReturnedGift, bool) {
	returnID := ReturnIDFromMailKey(mailKey)
	if returnID == "" {
		return ReturnedGift{}, false
	}
	returned, ok := e.store.CollectReturn(actor.ID(), returnID)
	if !ok {
		return ReturnedGift{}, false
	}
	actor.AddItem(returned.Gift)
	return returned, true
}

// ReturnMailText renders the body for a return mail key, for the mail
// content collaborator.
func (e *Engine) ReturnMailText(playerID int64, mailKey string) (string, bool) {
	returnID := ReturnIDFromMailKey(mailKey)
	if returnID == "" {
		return "", false
	}
	data, ok := e.store.PlayerGiftMail[playerID]
	if !ok {
		return "", false
	}
	returned, ok := data.ReturnedGifts[returnID]
	if !ok {
		return "", false
	}
	return FormatReturnText(e.world, returned, e.configFn().DetailedReturnReasons), true
}
