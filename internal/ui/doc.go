// Package ui contains the Fyne desktop window of the sorter. It maps buttons,
// keyboard shortcuts and dialogs onto a session.Controller and renders the
// snapshots the controller publishes. All UI strings are localized via
// Localization.
package ui
