package ui

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/subtitle-overlay/internal/config"
	"github.com/ytget/subtitle-overlay/internal/model"
	"github.com/ytget/subtitle-overlay/internal/overlay"
	"github.com/ytget/subtitle-overlay/internal/platform"
	"github.com/ytget/subtitle-overlay/internal/playback"
)

// PlayerWindow is the main window: a video-sized area with the subtitle
// overlay on top, driven by a replayed timeline
type PlayerWindow struct {
	window       fyne.Window
	settings     *config.Settings
	localization *Localization

	overlay       *overlay.SubtitleOverlay
	overlayWidget *OverlayWidget
	video         *canvas.Rectangle
	controlBar    *fyne.Container

	playBtn        *widget.Button
	positionSlider *widget.Slider
	positionLabel  *widget.Label

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label

	timeline *platform.Timeline
	player   *playback.Player
	cancel   context.CancelFunc

	// revealFile opens the file manager at a file
	revealFile func(path string) error

	// UI update debouncing
	lastUIUpdate  time.Time
	uiUpdateMutex sync.Mutex
}

// NewPlayerWindow creates and initializes the main UI
func NewPlayerWindow(window fyne.Window, app fyne.App) *PlayerWindow {
	settings := config.NewSettings(app)

	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	if err := platform.CreateDirectoryIfNotExists(settings.GetTimelineDirectory()); err != nil {
		log.Printf("Warning: %v", err)
	}

	cfg := settings.OverlayConfig()
	cfg.PreviewText = localization.GetText(KeySubtitleExample)
	o, w := NewSubtitleOverlay(cfg)

	ui := &PlayerWindow{
		window:        window,
		settings:      settings,
		localization:  localization,
		overlay:       o,
		overlayWidget: w,
		revealFile:    platform.OpenFileInManager,
	}
	w.OnVideoResize = ui.onVideoResize

	size := settings.GetFontSize()
	o.SetFontSizePercent(size, size != "")

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	return ui
}

// Overlay returns the subtitle overlay shown by the window
func (ui *PlayerWindow) Overlay() *overlay.SubtitleOverlay {
	return ui.overlay
}

// setupUI creates and arranges all UI components
func (ui *PlayerWindow) setupUI() {
	ui.createMenu()

	ui.video = canvas.NewRectangle(subtitleColor(ColorNameVideoBackground))
	ui.video.SetMinSize(fyne.NewSize(DefaultVideoWidth, DefaultVideoHeight))

	barBackground := canvas.NewRectangle(subtitleColor(ColorNameControlBar))
	barBackground.SetMinSize(fyne.NewSize(0, ControlBarHeight))
	ui.playBtn = widget.NewButton(IconPlay, ui.onPlayPause)
	ui.playBtn.Importance = widget.LowImportance
	ui.positionLabel = widget.NewLabel(ui.localization.GetText(KeyNoTimeline))
	ui.positionSlider = widget.NewSlider(0, 1)
	ui.positionSlider.Step = SeekSliderStep
	ui.positionSlider.OnChangeEnded = ui.onSeek
	ui.controlBar = container.NewStack(
		barBackground,
		container.NewBorder(nil, nil, ui.playBtn, ui.positionLabel, ui.positionSlider),
	)
	ui.controlBar.Hide()

	videoArea := container.NewStack(
		ui.video,
		ui.overlayWidget,
		container.NewBorder(nil, ui.controlBar, nil, nil),
	)

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance
	openBtn := widget.NewButton(IconFolder+" "+ui.localization.GetText(KeyOpen), ui.onOpenTimeline)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationContainer = container.NewPadded(ui.notificationLabel)
	ui.notificationContainer.Hide()

	top := container.NewVBox(
		container.NewBorder(nil, nil, settingsBtn, openBtn),
		ui.notificationContainer,
	)

	ui.window.SetContent(container.NewBorder(top, nil, nil, nil, videoArea))
	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *PlayerWindow) createMenu() {
	openItem := fyne.NewMenuItem(ui.localization.GetText(KeyOpen), ui.onOpenTimeline)
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)
	showItem := fyne.NewMenuItem(ui.localization.GetText(KeyShowInFolder), ui.onShowInFolder)
	showItem.Disabled = ui.timeline == nil || ui.timeline.Path() == ""

	controlBarItem := fyne.NewMenuItem(ui.localization.GetText(KeyControlBar), nil)
	controlBarItem.Checked = ui.controlBar != nil && ui.controlBar.Visible()
	controlBarItem.Action = func() {
		ui.setControlBarVisible(!controlBarItem.Checked)
		ui.createMenu()
	}

	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))
	for code, name := range ui.localization.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), openItem, showItem, settingsItem),
		fyne.NewMenu(ui.localization.GetText(KeyView), controlBarItem),
		languageMenu,
	))
}

// onLanguageChange handles language selection from the menu
func (ui *PlayerWindow) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *PlayerWindow) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.overlay.SetPreviewText(ui.localization.GetText(KeySubtitleExample))
	if ui.timeline == nil {
		ui.positionLabel.SetText(ui.localization.GetText(KeyNoTimeline))
	}
}

// setControlBarVisible shows the control bar over the video and moves
// bottom-anchored subtitles above it
func (ui *PlayerWindow) setControlBarVisible(visible bool) {
	if visible {
		ui.controlBar.Show()
	} else {
		ui.controlBar.Hide()
	}
	ui.overlay.SetControlBarVisible(visible)
}

// onVideoResize follows the video size announced by the timeline
func (ui *PlayerWindow) onVideoResize(size fyne.Size) {
	ui.video.SetMinSize(size)
	ui.video.Refresh()
	if content := ui.window.Content(); content != nil {
		content.Refresh()
	}
}

// showNotification shows a message under the toolbar
func (ui *PlayerWindow) showNotification(message string) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil {
		return
	}
	ui.notificationLabel.SetText(message)
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// onShowSettings opens the subtitle settings with a live preview
func (ui *PlayerWindow) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, ui.overlay, func() {
		ui.refreshUITexts()
		ui.createMenu()
	})
}

// onOpenTimeline lets the user pick a timeline file
func (ui *PlayerWindow) onOpenTimeline() {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		ui.LoadTimeline(path)
	}, ui.window)

	open.SetFilter(storage.NewExtensionFileFilter(platform.TimelineExtensions))
	if lister, err := storage.ListerForURI(storage.NewFileURI(ui.settings.GetTimelineDirectory())); err == nil {
		open.SetLocation(lister)
	}
	open.Show()
}

// onShowInFolder reveals the loaded timeline file in the file manager
func (ui *PlayerWindow) onShowInFolder() {
	if err := ui.ShowTimelineInFolder(); err != nil {
		log.Printf("Error showing timeline in folder: %v", err)
		dialog.ShowError(errors.Wrap(err, ui.localization.GetText(KeyErrorShowFolder)), ui.window)
	}
}

// ShowTimelineInFolder opens the file manager at the loaded timeline file
func (ui *PlayerWindow) ShowTimelineInFolder() error {
	if ui.timeline == nil || ui.timeline.Path() == "" {
		return errors.New("no timeline file loaded")
	}
	return ui.revealFile(ui.timeline.Path())
}

// OpenLatestTimeline loads the newest timeline of the timeline directory when
// the user enabled it
func (ui *PlayerWindow) OpenLatestTimeline() {
	if !ui.settings.GetAutoOpenLatestTimeline() {
		return
	}
	path, err := platform.FindLatestTimeline(ui.settings.GetTimelineDirectory())
	if err != nil {
		log.Printf("No timeline to open: %v", err)
		return
	}
	ui.LoadTimeline(path)
}

// LoadTimeline stops the current playback and replays the timeline at path
func (ui *PlayerWindow) LoadTimeline(path string) {
	timeline, err := platform.LoadTimeline(path)
	if err != nil {
		log.Printf("Error loading timeline %s: %v", path, err)
		dialog.ShowError(errors.Wrap(err, ui.localization.GetText(KeyErrorLoading)), ui.window)
		return
	}
	ui.Play(timeline)
}

// Play replaces the current timeline and starts playback
func (ui *PlayerWindow) Play(timeline *platform.Timeline) {
	ui.stop()
	if ui.player != nil {
		ui.overlay.SourceUnloaded()
	}

	ui.timeline = timeline
	ui.player = playback.NewPlayer(timeline)
	ui.player.SetRate(ui.settings.GetPlaybackRate())
	ui.player.SetUpdateCallback(ui.onPositionUpdate)

	ui.positionSlider.Max = timeline.Duration
	ui.positionSlider.SetValue(0)
	ui.showNotification(fmt.Sprintf("%s: %s", ui.localization.GetText(KeyTimelineLoaded), timeline.Title))
	log.Printf("Timeline %q loaded: %d cues, %.2fs", timeline.Title, len(timeline.Cues), timeline.Duration)

	ui.createMenu()
	ui.start()
}

// start runs the player and pumps its events into the overlay on the UI
// goroutine
func (ui *PlayerWindow) start() {
	if ui.player == nil || ui.cancel != nil {
		return
	}
	if ui.player.Finished() {
		ui.applyEvents(ui.player.Seek(0))
	}

	ctx, cancel := context.WithCancel(context.Background())
	ui.cancel = cancel
	player := ui.player

	events := make(chan model.Event, 64)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(events)
		return player.Run(gctx, events)
	})
	g.Go(func() error {
		return playback.Pump(gctx, events, playback.HandlerFunc(func(ev model.Event) {
			fyne.Do(func() {
				ui.overlay.HandleEvent(ev)
			})
		}))
	})

	go func() {
		err := g.Wait()
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Playback error: %v", err)
		}
		if player.Finished() {
			fyne.Do(func() {
				ui.onPlaybackFinished(player)
			})
		}
	}()

	ui.playBtn.SetText(IconPause)
}

// stop cancels playback. The player keeps its position.
func (ui *PlayerWindow) stop() {
	if ui.cancel == nil {
		return
	}
	ui.cancel()
	ui.cancel = nil
	ui.playBtn.SetText(IconPlay)
}

// onPlayPause toggles playback
func (ui *PlayerWindow) onPlayPause() {
	if ui.cancel != nil {
		ui.stop()
		return
	}
	ui.start()
}

// onSeek jumps to the slider position
func (ui *PlayerWindow) onSeek(position float64) {
	if ui.player == nil {
		return
	}
	if ui.cancel != nil {
		ui.player.RequestSeek(position)
		return
	}
	ui.applyEvents(ui.player.Seek(position))
}

func (ui *PlayerWindow) applyEvents(events []model.Event) {
	for _, ev := range events {
		ui.overlay.HandleEvent(ev)
	}
}

// onPositionUpdate is called by the player goroutine after every step
func (ui *PlayerWindow) onPositionUpdate(position float64) {
	if !ui.debouncedUIUpdate() {
		return
	}
	fyne.Do(func() {
		ui.positionSlider.Value = position
		ui.positionSlider.Refresh()
		ui.positionLabel.SetText(fmt.Sprintf(PositionLabelFormat, FormatTimestamp(position), FormatTimestamp(ui.timeline.Duration)))
	})
}

// debouncedUIUpdate prevents excessive UI updates by limiting frequency
func (ui *PlayerWindow) debouncedUIUpdate() bool {
	ui.uiUpdateMutex.Lock()
	defer ui.uiUpdateMutex.Unlock()

	now := time.Now()
	if now.Sub(ui.lastUIUpdate) < UIUpdateDebounce {
		return false
	}
	ui.lastUIUpdate = now
	return true
}

func (ui *PlayerWindow) onPlaybackFinished(player *playback.Player) {
	if player != ui.player {
		return
	}
	ui.cancel = nil
	ui.playBtn.SetText(IconPlay)
	ui.positionSlider.SetValue(player.Position())

	title := ui.localization.GetText(KeyPlaybackFinished)
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   title,
		Content: ui.timeline.Title,
	})
	ui.showNotification(title)
}

// Close stops playback
func (ui *PlayerWindow) Close() {
	ui.stop()
}

// FormatTimestamp formats seconds as m:ss.t
func FormatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	tenths := int(seconds*10 + 0.5)
	return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}
