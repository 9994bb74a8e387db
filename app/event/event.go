// Package event provides definitions for global DOM
// events that are dispatched by the `HX-Trigger`
// header in HTMX requests.
package event

import (
	"github.com/angelofallars/htmx-go"
)

// Event is a client-side event that can be triggered
// on the server.
//
// Event names are kebab-case so they can be used
// directly in hx-trigger attributes.
type Event string

// Event satisfies [fmt.Stringer]
func (e Event) String() string { return string(e) }

// FromBody returns an hx-trigger value that fires
// when the event reaches the document body.
//
// Format:
//
//	<eventName> from:body
func (e Event) FromBody() string {
	return string(e) + " from:body"
}

const SetErrMessage Event = "set-err-message"

func TriggerSetErrMessage(message string) htmx.EventTrigger {
	return htmx.TriggerDetail(SetErrMessage.String(), message)
}

// RegistryChanged fires after the shop list was
// persisted, so every selector reloads.
const RegistryChanged Event = "registry-changed"

var TriggerRegistryChanged = htmx.Trigger(RegistryChanged.String())

const OpenDeleteDialog Event = "open-delete-dialog"

var TriggerOpenDeleteDialog = htmx.Trigger(OpenDeleteDialog.String())

const CloseDeleteDialog Event = "close-delete-dialog"

var TriggerCloseDeleteDialog = htmx.Trigger(CloseDeleteDialog.String())

// TotalChanged carries the new invoice total
// as its detail.
const TotalChanged Event = "total-changed"

func TriggerTotalChanged(total string) htmx.EventTrigger {
	return htmx.TriggerDetail(TotalChanged.String(), total)
}
