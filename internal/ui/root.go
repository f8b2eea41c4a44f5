package ui

import (
	"time"
	"unicode"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	zlog "github.com/rs/zerolog/log"

	"github.com/ytget/video-sorter/internal/config"
	"github.com/ytget/video-sorter/internal/model"
	"github.com/ytget/video-sorter/internal/platform"
	"github.com/ytget/video-sorter/internal/session"
)

// RootUI represents the main window: a video area over four rows of controls
type RootUI struct {
	app          fyne.App
	window       fyne.Window
	controller   session.Controller
	settings     *config.Settings
	localization *Localization

	titleText *canvas.Text

	playBtn     *widget.Button
	replayBtn   *widget.Button
	skipBackBtn *widget.Button
	skipFwdBtn  *widget.Button
	skipLongBtn *widget.Button

	prevBtn   *widget.Button
	nextBtn   *widget.Button
	repeatBtn *widget.Button
	autoBtn   *widget.Button
	randomBtn *widget.Button

	deleteBtn     *widget.Button
	fullscreenBtn *widget.Button
	folderBtn     *widget.Button
	revealBtn     *widget.Button
	settingsBtn   *widget.Button
	exitBtn       *widget.Button

	muteBtn      *widget.Button
	volumeSlider *widget.Slider
	timeLabel    *widget.Label
	statusLabel  *widget.Label

	snapshot model.Snapshot
	closed   bool
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, controller session.Controller, settings *config.Settings) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		app:          app,
		window:       window,
		controller:   controller,
		settings:     settings,
		localization: localization,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	window.SetIcon(LoadAppIcon())
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	ui.setupUI()
	ui.bindKeys()
	window.SetCloseIntercept(ui.Quit)

	controller.SetUpdateCallback(ui.render)
	ui.render(controller.Snapshot())

	zlog.Debug().Str("language", localization.GetCurrentLanguage()).Msg("UI setup completed")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.titleText = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	ui.titleText.Alignment = fyne.TextAlignCenter
	ui.titleText.TextSize = theme.TextHeadingSize()
	background := canvas.NewRectangle(VideoBackground)
	background.SetMinSize(fyne.NewSize(0, VideoAreaMinHeight))
	videoArea := container.NewStack(background, container.NewCenter(ui.titleText))

	c := ui.controller
	ui.snapshot = c.Snapshot()

	// Row 1: playback
	ui.playBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), ui.action(c.TogglePlay))
	ui.replayBtn = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), ui.action(c.Replay))
	ui.skipBackBtn = widget.NewButtonWithIcon("", theme.MediaFastRewindIcon(), ui.action(c.SkipBackward))
	ui.skipFwdBtn = widget.NewButtonWithIcon("", theme.MediaFastForwardIcon(), ui.action(c.SkipForward))
	ui.skipLongBtn = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), ui.action(c.SkipForwardLong))

	// Row 2: navigation and modes
	ui.prevBtn = widget.NewButtonWithIcon("", theme.NavigateBackIcon(), ui.action(c.Previous))
	ui.nextBtn = widget.NewButtonWithIcon("", theme.NavigateNextIcon(), ui.action(c.Next))
	ui.repeatBtn = widget.NewButton("", ui.toggle(c.ToggleRepeat))
	ui.autoBtn = widget.NewButton("", ui.toggle(c.ToggleAutoPlay))
	ui.randomBtn = widget.NewButton("", ui.toggle(c.ToggleRandom))

	// Row 3: files and system
	ui.deleteBtn = widget.NewButtonWithIcon("", theme.DeleteIcon(), ui.action(c.Delete))
	ui.deleteBtn.Importance = widget.DangerImportance
	ui.fullscreenBtn = widget.NewButtonWithIcon("", theme.ViewFullScreenIcon(), ui.action(c.ToggleFullscreen))
	ui.folderBtn = widget.NewButtonWithIcon("", theme.FolderOpenIcon(), ui.onSelectFolder)
	ui.revealBtn = widget.NewButtonWithIcon("", theme.SearchIcon(), ui.onRevealFile)
	ui.settingsBtn = widget.NewButtonWithIcon("", theme.SettingsIcon(), ui.onShowSettings)
	ui.exitBtn = widget.NewButtonWithIcon("", theme.LogoutIcon(), ui.Quit)

	// Row 4: audio, time and status
	ui.muteBtn = widget.NewButtonWithIcon("", theme.VolumeMuteIcon(), ui.action(c.ToggleMute))
	ui.volumeSlider = widget.NewSlider(0, config.MaxVolume)
	ui.volumeSlider.Step = 1
	ui.volumeSlider.SetValue(float64(ui.snapshot.Volume))
	ui.volumeSlider.OnChanged = ui.onVolumeChanged
	ui.volumeSlider.OnChangeEnded = func(v float64) {
		ui.settings.SetVolume(int(v))
	}
	ui.timeLabel = widget.NewLabel(model.ClockPlaceholder)
	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	slider := container.NewGridWrap(fyne.NewSize(VolumeSliderWidth, ui.volumeSlider.MinSize().Height), ui.volumeSlider)
	clock := container.NewGridWrap(fyne.NewSize(TimeLabelWidth, ui.timeLabel.MinSize().Height), ui.timeLabel)
	audioRow := container.NewBorder(nil, nil,
		container.NewHBox(ui.muteBtn, slider, clock),
		nil,
		ui.statusLabel,
	)

	controls := container.NewVBox(
		container.NewHBox(ui.playBtn, ui.replayBtn, ui.skipBackBtn, ui.skipFwdBtn, ui.skipLongBtn),
		container.NewHBox(ui.prevBtn, ui.nextBtn, ui.repeatBtn, ui.autoBtn, ui.randomBtn),
		container.NewHBox(ui.deleteBtn, ui.fullscreenBtn, ui.folderBtn, ui.revealBtn, layout.NewSpacer(), ui.settingsBtn, ui.exitBtn),
		audioRow,
	)

	ui.refreshUITexts()
	ui.window.SetContent(container.NewBorder(nil, controls, nil, nil, videoArea))
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(IconSettings+" "+ui.localization.GetText(KeySettings), ui.onShowSettings)
	folderItem := fyne.NewMenuItem(ui.localization.GetText(KeySelectFolder), ui.onSelectFolder)

	languageMenu := fyne.NewMenu(IconLanguage + " " + ui.localization.GetText(KeyLanguage))
	names := ui.localization.GetAvailableLanguages()
	for _, code := range ui.localization.GetLanguageCodes() {
		langCode := code
		langItem := fyne.NewMenuItem(names[code], func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = ui.localization.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), folderItem, settingsItem),
		languageMenu,
	))
}

// onLanguageChange switches the interface language and stores it
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all static texts with current language and settings
func (ui *RootUI) refreshUITexts() {
	l := ui.localization

	ui.playBtn.SetText(l.GetText(KeyPlayPause))
	ui.replayBtn.SetText(l.GetText(KeyReplay))
	ui.skipBackBtn.SetText(l.Format(KeySkipBack, seconds(ui.settings.GetSkipShort())))
	ui.skipFwdBtn.SetText(l.Format(KeySkipForward, seconds(ui.settings.GetSkipShort())))
	ui.skipLongBtn.SetText(l.Format(KeySkipLong, seconds(ui.settings.GetSkipLong())))
	ui.prevBtn.SetText(l.GetText(KeyPrevious))
	ui.nextBtn.SetText(l.GetText(KeyNext))
	ui.deleteBtn.SetText(l.GetText(KeyDelete))
	ui.fullscreenBtn.SetText(l.GetText(KeyFullscreen))
	ui.folderBtn.SetText(l.GetText(KeySelectFolder))
	ui.revealBtn.SetText(l.GetText(KeyShowInFolder))
	ui.settingsBtn.SetText(l.GetText(KeySettings))
	ui.exitBtn.SetText(l.GetText(KeyExit))

	ui.render(ui.snapshot)
}

// render applies a controller snapshot to the widgets
func (ui *RootUI) render(snap model.Snapshot) {
	ui.snapshot = snap
	l := ui.localization

	title := l.GetText(KeyAppTitle)
	if snap.Title != "" {
		ui.titleText.Text = snap.Title
		title += MiddleDotSeparator + snap.Title
	} else {
		ui.titleText.Text = l.GetText(KeyNoVideo)
	}
	ui.titleText.Refresh()
	ui.window.SetTitle(title)

	ui.repeatBtn.SetText(l.Toggle(KeyRepeat, snap.Modes.Repeat))
	ui.autoBtn.SetText(l.Toggle(KeyAuto, snap.Modes.AutoPlay))
	ui.randomBtn.SetText(l.Toggle(KeyRandom, snap.Modes.Random))
	setHighlighted(ui.repeatBtn, snap.Modes.Repeat)
	setHighlighted(ui.autoBtn, snap.Modes.AutoPlay)
	setHighlighted(ui.randomBtn, snap.Modes.Random)

	if snap.Modes.Muted {
		ui.muteBtn.SetText(l.GetText(KeyUnmute))
		ui.muteBtn.SetIcon(theme.VolumeUpIcon())
	} else {
		ui.muteBtn.SetText(l.GetText(KeyMute))
		ui.muteBtn.SetIcon(theme.VolumeMuteIcon())
	}
	if snap.Modes.Fullscreen {
		ui.fullscreenBtn.SetIcon(theme.ViewRestoreIcon())
	} else {
		ui.fullscreenBtn.SetIcon(theme.ViewFullScreenIcon())
	}

	if int(ui.volumeSlider.Value) != snap.Volume {
		ui.volumeSlider.SetValue(float64(snap.Volume))
	}
	ui.timeLabel.SetText(snap.Clock)
	ui.statusLabel.SetText(l.StatusText(snap.Status))

	for _, btn := range ui.playbackButtons() {
		if snap.HasVideos {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
}

// playbackButtons are the controls that need a non-empty list
func (ui *RootUI) playbackButtons() []*widget.Button {
	return []*widget.Button{
		ui.playBtn, ui.replayBtn, ui.skipBackBtn, ui.skipFwdBtn, ui.skipLongBtn,
		ui.prevBtn, ui.nextBtn, ui.deleteBtn, ui.fullscreenBtn, ui.revealBtn,
	}
}

func setHighlighted(btn *widget.Button, on bool) {
	want := widget.MediumImportance
	if on {
		want = widget.HighImportance
	}
	if btn.Importance != want {
		btn.Importance = want
		btn.Refresh()
	}
}

// action wraps a controller call for a button. Errors already reach the
// status bar through the controller, so they are only logged here.
func (ui *RootUI) action(f func() error) func() {
	return func() {
		ui.run(f)
	}
}

func (ui *RootUI) toggle(f func()) func() {
	return func() {
		f()
		ui.window.Canvas().Unfocus()
	}
}

func (ui *RootUI) run(f func() error) {
	if ui.closed {
		return
	}
	if err := f(); err != nil {
		zlog.Warn().Err(err).Msg("action failed")
	}
	ui.window.Canvas().Unfocus()
}

func (ui *RootUI) onVolumeChanged(v float64) {
	volume := int(v)
	ui.run(func() error {
		return ui.controller.SetVolume(volume)
	})
}

// bindKeys installs the keyboard shortcuts on the window canvas
func (ui *RootUI) bindKeys() {
	ui.window.Canvas().SetOnTypedKey(ui.onTypedKey)
	ui.window.Canvas().SetOnTypedRune(ui.onTypedRune)
}

func (ui *RootUI) onTypedKey(ev *fyne.KeyEvent) {
	c := ui.controller
	switch ev.Name {
	case fyne.KeySpace:
		ui.run(c.TogglePlay)
	case fyne.KeyDelete:
		ui.run(c.Delete)
	case fyne.KeyRight:
		ui.run(c.SkipForward)
	case fyne.KeyLeft:
		ui.run(c.SkipBackward)
	case fyne.KeyUp:
		ui.run(c.Next)
	case fyne.KeyDown:
		ui.run(c.Previous)
	case fyne.KeyF11:
		ui.run(c.ToggleFullscreen)
	case fyne.KeyEscape:
		ui.run(c.ExitFullscreen)
	}
}

func (ui *RootUI) onTypedRune(r rune) {
	c := ui.controller
	switch unicode.ToLower(r) {
	case 'r':
		ui.run(c.Replay)
	case 'l':
		c.ToggleRepeat()
	case 'a':
		c.ToggleAutoPlay()
	case 's':
		c.ToggleRandom()
	case 'm':
		ui.run(c.ToggleMute)
	}
}

// onRevealFile opens the system file manager at the current file
func (ui *RootUI) onRevealFile() {
	path := ui.snapshot.Current
	if path == "" {
		return
	}
	if err := platform.OpenFileInManager(path); err != nil {
		zlog.Error().Err(err).Str("file", path).Msg("reveal failed")
		ui.showPopup(ui.localization.GetText(KeyErrorOpeningFile) + ": " + err.Error())
		return
	}
	ui.window.Canvas().Unfocus()
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

func (ui *RootUI) onSettingsSaved(result SettingsResult) {
	ui.controller.SetSkipOffsets(result.SkipShort, result.SkipLong)
	if result.Language != ui.localization.GetCurrentLanguage() {
		ui.onLanguageChange(result.Language)
	} else {
		ui.refreshUITexts()
	}

	msg := ui.localization.GetText(KeySettingsSaved)
	if result.BinaryChanged {
		msg += MiddleDotSeparator + ui.localization.GetText(KeyRestartRequired)
	}
	ui.showPopup(msg)
}

// showPopup shows a transient message over the window
func (ui *RootUI) showPopup(message string) {
	popup := widget.NewPopUp(widget.NewLabel(message), ui.window.Canvas())
	popup.Show()
	time.AfterFunc(PopupAutoHide, func() {
		fyne.Do(popup.Hide)
	})
}

// LoadFolder opens dir as the playlist
func (ui *RootUI) LoadFolder(dir string) {
	ui.run(func() error {
		return ui.controller.LoadFolder(dir)
	})
}

// Quit shuts the session down and exits the application
func (ui *RootUI) Quit() {
	if ui.closed {
		return
	}
	ui.closed = true
	if err := ui.controller.Close(); err != nil {
		zlog.Error().Err(err).Msg("close session")
	}
	ui.app.Quit()
}

// ShowAndRun shows the window and runs the event loop
func (ui *RootUI) ShowAndRun() {
	ui.window.ShowAndRun()
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}
