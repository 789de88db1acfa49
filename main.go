package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"

	"github.com/ytget/subtitle-overlay/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.subtitle-overlay"
	AppName = "Subtitle Overlay"

	WindowWidth  = 720
	WindowHeight = 520
)

func main() {
	var timelinePath string

	rootCmd := &cobra.Command{
		Use:     "subtitle-overlay-gui",
		Short:   "Replays a subtitle timeline over a video-sized area",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run(timelinePath)
			return nil
		},
	}
	rootCmd.Flags().StringVarP(&timelinePath, "timeline", "t", "", "timeline file to play on start")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(timelinePath string) {
	fmt.Printf("%s v%s starting...\n", AppName, version)

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewSubtitleTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	player := ui.NewPlayerWindow(myWindow, myApp)
	myWindow.SetOnClosed(player.Close)

	if timelinePath != "" {
		player.LoadTimeline(timelinePath)
	} else {
		player.OpenLatestTimeline()
	}

	myWindow.ShowAndRun()
}
