package ui

import (
	"fmt"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/subtitle-overlay/internal/config"
	"github.com/ytget/subtitle-overlay/internal/overlay"
)

// SettingsDialog edits the subtitle settings. While it is open the overlay
// shows a preview label that follows the selected font size.
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	overlay      *overlay.SubtitleOverlay
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	// UI components
	timelineDirEntry *widget.Entry
	fontSizeSelect   *widget.Select
	forceIntoView    *widget.Check
	languageSelect   *widget.Select

	// option label -> preference key
	fontSizeKeys map[string]string
	languageKeys map[string]string
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, o *overlay.SubtitleOverlay, window fyne.Window) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		overlay:      o,
		window:       window,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog creates and shows the settings dialog. onSaved runs after
// the settings were stored.
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, o *overlay.SubtitleOverlay, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, localization, o, window)
	sd.onSaved = onSaved
	sd.Show()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.overlay.SetPreviewText(sd.localization.GetText(KeySubtitleExample))
	sd.overlay.EnablePreviewSubtitleLabel()
	sd.dialog.Show()
}

// FontSizeOptionLabel returns the display name of a font size option
func (sd *SettingsDialog) FontSizeOptionLabel(key string) string {
	if key == "" {
		return sd.localization.GetText(KeyFontSizeDefault)
	}
	return fmt.Sprintf(FontSizeLabelFormat, key)
}

// fontSizeOptions returns the options the overlay can display right now
func (sd *SettingsDialog) fontSizeOptions() []string {
	keys := sd.overlay.FilterFontSizeOptions(sd.settings.GetFontSizeOptions())

	sd.fontSizeKeys = make(map[string]string, len(keys))
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := sd.FontSizeOptionLabel(key)
		sd.fontSizeKeys[label] = key
		labels = append(labels, label)
	}
	return labels
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.timelineDirEntry = widget.NewEntry()
	sd.timelineDirEntry.SetPlaceHolder("Timeline directory path")
	browseDirBtn := widget.NewButton(IconFolder, sd.onBrowseDirectory)
	timelineDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.timelineDirEntry)

	sd.fontSizeSelect = widget.NewSelect(sd.fontSizeOptions(), sd.onFontSizeChanged)

	sd.forceIntoView = widget.NewCheck(l.GetText(KeyForceIntoView), sd.overlay.SetForceIntoView)

	sd.languageKeys = make(map[string]string)
	languageLabels := sd.settings.GetLanguageOptions()
	languageOptions := make([]string, 0, len(languageLabels))
	for code, name := range languageLabels {
		sd.languageKeys[name] = code
		languageOptions = append(languageOptions, name)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)
	sd.languageSelect.PlaceHolder = "Select language"

	form := container.NewVBox(
		widget.NewLabel(l.GetText(KeyFontSize)+":"),
		sd.fontSizeSelect,
		sd.forceIntoView,

		widget.NewSeparator(),

		widget.NewLabel(l.GetText(KeyTimelineDir)+":"),
		timelineDirRow,

		widget.NewLabel(l.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onClose,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.timelineDirEntry.SetText(sd.settings.GetTimelineDirectory())

	sd.fontSizeSelect.Options = sd.fontSizeOptions()
	sd.fontSizeSelect.SetSelected(sd.FontSizeOptionLabel(sd.settings.GetFontSize()))

	sd.forceIntoView.SetChecked(sd.settings.GetForceIntoView())

	for name, code := range sd.languageKeys {
		if code == sd.settings.GetLanguage() {
			sd.languageSelect.SetSelected(name)
		}
	}
}

// onFontSizeChanged previews the selected size on the overlay
func (sd *SettingsDialog) onFontSizeChanged(label string) {
	key, ok := sd.fontSizeKeys[label]
	if !ok {
		return
	}
	sd.overlay.SetFontSizePercent(key, key != "")
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.timelineDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onClose stores the settings on confirm and restores the stored ones on cancel
func (sd *SettingsDialog) onClose(confirmed bool) {
	sd.overlay.RemovePreviewSubtitleLabel()

	if !confirmed {
		size := sd.settings.GetFontSize()
		sd.overlay.SetFontSizePercent(size, size != "")
		sd.overlay.SetForceIntoView(sd.settings.GetForceIntoView())
		return
	}

	if dir := sd.timelineDirEntry.Text; dir != "" {
		sd.settings.SetTimelineDirectory(dir)
	}

	if key, ok := sd.fontSizeKeys[sd.fontSizeSelect.Selected]; ok {
		sd.settings.SetFontSize(key)
	}

	sd.settings.SetForceIntoView(sd.forceIntoView.Checked)

	if code, ok := sd.languageKeys[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
		sd.localization.SetLanguage(code)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}
