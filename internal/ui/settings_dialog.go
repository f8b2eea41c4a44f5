package ui

import (
	"sort"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	zlog "github.com/rs/zerolog/log"

	"github.com/ytget/video-sorter/internal/config"
)

// SettingsResult describes what a save changed
type SettingsResult struct {
	SkipShort     time.Duration
	SkipLong      time.Duration
	Language      string
	BinaryChanged bool
}

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func(SettingsResult)

	// UI components
	mpvEntry       *widget.Entry
	skipShortEntry *widget.Entry
	skipLongEntry  *widget.Entry
	languageSelect *widget.Select
	languageCodes  map[string]string // display name -> code
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, loc *Localization, window fyne.Window, onSaved func(SettingsResult)) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: loc,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	t := sd.localization.GetText

	sd.mpvEntry = widget.NewEntry()
	sd.mpvEntry.SetPlaceHolder(config.DefaultMPVBinary)

	sd.skipShortEntry = widget.NewEntry()
	sd.skipShortEntry.Validator = validateSeconds
	sd.skipLongEntry = widget.NewEntry()
	sd.skipLongEntry.Validator = validateSeconds

	sd.languageCodes = map[string]string{}
	var names []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		names = append(names, name)
	}
	sort.Strings(names)
	sd.languageSelect = widget.NewSelect(names, nil)

	form := container.NewVBox(
		widget.NewLabel(t(KeyMPVBinary)),
		sd.mpvEntry,
		widget.NewLabel(t(KeySkipShortSeconds)),
		sd.skipShortEntry,
		widget.NewLabel(t(KeySkipLongSeconds)),
		sd.skipLongEntry,
		widget.NewSeparator(),
		widget.NewLabel(t(KeyLanguage)),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		t(KeySettings),
		t(KeySave),
		t(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.mpvEntry.SetText(sd.settings.GetMPVBinary())
	sd.skipShortEntry.SetText(strconv.Itoa(int(sd.settings.GetSkipShort() / time.Second)))
	sd.skipLongEntry.SetText(strconv.Itoa(int(sd.settings.GetSkipLong() / time.Second)))

	lang := sd.settings.GetLanguage()
	for name, code := range sd.languageCodes {
		if code == lang {
			sd.languageSelect.SetSelected(name)
		}
	}
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()
}

// apply writes the form into settings and reports the result
func (sd *SettingsDialog) apply() SettingsResult {
	var result SettingsResult

	oldBinary := sd.settings.GetMPVBinary()
	sd.settings.SetMPVBinary(sd.mpvEntry.Text)
	result.BinaryChanged = sd.settings.GetMPVBinary() != oldBinary

	if v, err := strconv.Atoi(sd.skipShortEntry.Text); err == nil {
		sd.settings.SetSkipShort(v)
	}
	if v, err := strconv.Atoi(sd.skipLongEntry.Text); err == nil {
		sd.settings.SetSkipLong(v)
	}
	result.SkipShort = sd.settings.GetSkipShort()
	result.SkipLong = sd.settings.GetSkipLong()

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}
	result.Language = sd.settings.GetLanguage()

	zlog.Info().
		Str("mpv", sd.settings.GetMPVBinary()).
		Dur("skip_short", result.SkipShort).
		Dur("skip_long", result.SkipLong).
		Str("language", result.Language).
		Msg("settings saved")

	if sd.onSaved != nil {
		sd.onSaved(result)
	}
	return result
}

func validateSeconds(s string) error {
	v, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	if v < 1 || v > config.MaxSkipSec {
		return strconv.ErrRange
	}
	return nil
}
