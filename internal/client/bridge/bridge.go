// Package bridge adapts the host messenger's Mini App capabilities (identity,
// haptics, link opening, chrome control) behind one interface. Every method
// is safe to call when no host is present.
package bridge

import "github.com/dmitrijs2005/adearn/internal/client/models"

type ImpactStyle string

const (
	ImpactLight  ImpactStyle = "light"
	ImpactMedium ImpactStyle = "medium"
	ImpactHeavy  ImpactStyle = "heavy"
)

type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyWarning NotificationType = "warning"
	NotifyError   NotificationType = "error"
)

type Bridge interface {
	Available() bool

	Ready()
	Expand()
	SetHeaderColor(color string)

	User() (models.BridgeUser, bool)
	LanguageHint() string
	// StartParam is the referral code the app was opened with, if any.
	StartParam() string
	// InitData is the raw signed launch payload used for auto-login.
	InitData() string

	HapticImpact(style ImpactStyle)
	HapticNotification(kind NotificationType)
	HapticSelection()

	OpenLink(url string)
}

// Noop is the bridge used outside the host. It does nothing.
type Noop struct{}

var _ Bridge = Noop{}

func (Noop) Available() bool { return false }
func (Noop) Ready() {}
func (Noop) Expand() {}
func (Noop) SetHeaderColor(string) {}
func (Noop) User() (models.BridgeUser, bool) { return models.BridgeUser{}, false }
func (Noop) LanguageHint() string { return "" }
func (Noop) StartParam() string { return "" }
func (Noop) InitData() string { return "" }
func (Noop) HapticImpact(ImpactStyle) {}
func (Noop) HapticNotification(NotificationType) {}
func (Noop) HapticSelection() {}
func (Noop) OpenLink(string) {}
