package bridge

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/adearn/internal/client/models"
	"github.com/dmitrijs2005/adearn/internal/logging"
)

// Event is a host-side effect requested by the app.
type Event struct {
	Kind  string
	Value string
}

const (
	EventReady        = "ready"
	EventExpand       = "expand"
	EventHeaderColor  = "header_color"
	EventImpact       = "haptic_impact"
	EventNotification = "haptic_notification"
	EventSelection    = "haptic_selection"
	EventOpenLink     = "open_link"
)

// EventSink receives host effects. A nil sink drops them.
type EventSink func(Event)

// Telegram is the bridge for a session launched from the Telegram client.
type Telegram struct {
	data *InitData
	sink EventSink
	log  logging.Logger
}

var _ Bridge = (*Telegram)(nil)

func NewTelegram(data *InitData, sink EventSink, log logging.Logger) *Telegram {
	return &Telegram{data: data, sink: sink, log: log}
}

// Detect picks the bridge for the current launch: a parseable payload yields
// a Telegram bridge, anything else the no-op one.
func Detect(initData string, sink EventSink, log logging.Logger) Bridge {
	if initData == "" {
		return Noop{}
	}
	data, err := ParseInitData(initData)
	if err != nil {
		log.Warn(context.Background(), "ignoring malformed init data", "error", err)
		return Noop{}
	}
	return NewTelegram(data, sink, log)
}

func (t *Telegram) Available() bool { return true }

func (t *Telegram) Data() *InitData { return t.data }

func (t *Telegram) Ready() { t.emit(Event{Kind: EventReady}) }
func (t *Telegram) Expand() { t.emit(Event{Kind: EventExpand}) }

func (t *Telegram) SetHeaderColor(color string) {
	t.emit(Event{Kind: EventHeaderColor, Value: color})
}

func (t *Telegram) User() (models.BridgeUser, bool) {
	if t.data.User == nil {
		return models.BridgeUser{}, false
	}
	return *t.data.User, true
}

func (t *Telegram) LanguageHint() string {
	if t.data.User == nil {
		return ""
	}
	return t.data.User.LanguageCode
}

func (t *Telegram) StartParam() string { return t.data.StartParam }
func (t *Telegram) InitData() string { return t.data.Raw }

func (t *Telegram) HapticImpact(style ImpactStyle) {
	t.emit(Event{Kind: EventImpact, Value: string(style)})
}

func (t *Telegram) HapticNotification(kind NotificationType) {
	t.emit(Event{Kind: EventNotification, Value: string(kind)})
}

func (t *Telegram) HapticSelection() { t.emit(Event{Kind: EventSelection}) }

func (t *Telegram) OpenLink(url string) {
	t.emit(Event{Kind: EventOpenLink, Value: url})
}

// emit never lets a sink failure reach the caller.
func (t *Telegram) emit(ev Event) {
	if t.sink == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			t.log.Warn(context.Background(), "bridge call failed", "event", ev.Kind, "panic", fmt.Sprint(r))
		}
	}()
	t.sink(ev)
}
