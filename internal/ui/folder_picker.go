package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	zlog "github.com/rs/zerolog/log"
)

// onSelectFolder offers the remembered folders, or goes straight to the
// folder browser when there are none
func (ui *RootUI) onSelectFolder() {
	recent := ui.controller.RecentFolders()
	if len(recent) == 0 {
		ui.browseForFolder()
		return
	}
	ui.showRecentFolders(recent)
}

// showRecentFolders lists recent folders with Use Selected, Browse and Cancel
func (ui *RootUI) showRecentFolders(recent []string) {
	t := ui.localization.GetText
	selected := -1

	list := widget.NewList(
		func() int { return len(recent) },
		func() fyne.CanvasObject {
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			return label
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(recent[id])
		},
	)

	var d dialog.Dialog
	useBtn := widget.NewButton(t(KeyUseSelected), func() {
		if selected < 0 {
			return
		}
		d.Hide()
		ui.LoadFolder(recent[selected])
	})
	useBtn.Importance = widget.HighImportance
	useBtn.Disable()

	list.OnSelected = func(id widget.ListItemID) {
		selected = id
		useBtn.Enable()
	}

	browseBtn := widget.NewButton(t(KeyBrowseNew), func() {
		d.Hide()
		ui.browseForFolder()
	})
	cancelBtn := widget.NewButton(t(KeyCancel), func() {
		d.Hide()
	})

	header := widget.NewLabel(t(KeyRecentFolders))
	header.TextStyle = fyne.TextStyle{Bold: true}
	content := container.NewBorder(header, nil, nil, nil, list)

	cd := dialog.NewCustomWithoutButtons(t(KeySelectFolder), content, ui.window)
	cd.SetButtons([]fyne.CanvasObject{useBtn, browseBtn, cancelBtn})
	cd.Resize(fyne.NewSize(FolderDialogWidth, FolderDialogHeight))
	d = cd
	d.Show()
}

// browseForFolder opens the native folder chooser at the last used folder
func (ui *RootUI) browseForFolder() {
	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil {
			zlog.Warn().Err(err).Msg("folder dialog failed")
			return
		}
		if uri == nil {
			return
		}
		ui.LoadFolder(uri.Path())
	}, ui.window)
	fd.SetTitleText(ui.localization.GetText(KeyChooseVideoDir))

	if start := ui.controller.BrowseStart(); start != "" {
		if lister, err := storage.ListerForURI(storage.NewFileURI(start)); err == nil {
			fd.SetLocation(lister)
		}
	}
	fd.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	fd.Show()
}
